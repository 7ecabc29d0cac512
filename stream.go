/*
 * MinIO Cloud Storage, (C) 2020 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package simdjson

import (
	"bufio"
	"fmt"
	"io"
)

// A Stream is used to stream back results.
type Stream struct {
	Value *ParsedJson
	Error error
}

// ParseNDStream will parse a stream and return parsed JSON to the supplied result channel.
// Each element is contained within a root tag.
//   <root>Element 1</root><root>Element 2</root>...
// Each result will contain an unspecified number of full elements,
// so it can be assumed that each result starts and ends with a root tag.
// The parser will keep parsing until writes to the result stream blocks.
// A stream is finished when a non-nil Error is returned.
// If the stream was parsed until the end the Error value will be io.EOF.
// The channel will be closed after an error has been returned.
// An optional channel for returning consumed results can be provided.
// There is no guarantee that elements will be consumed, so always use
// non-blocking writes to the reuse channel.
func ParseNDStream(r io.Reader, res chan<- Stream, reuse <-chan *ParsedJson, opts ...ParserOption) {
	const tmpSize = 10 << 20
	buf := bufio.NewReaderSize(r, tmpSize)
	tmp := make([]byte, tmpSize+1024)
	go func() {
		defer close(res)
		var pj internalParsedJson
		pj.copyStrings = alwaysCopyStrings
		pj.maxDepth = defaultMaxDepth
		for _, o := range opts {
			if err := o(&pj); err != nil {
				res <- Stream{Error: err}
				return
			}
		}
		for {
			tmp = tmp[:tmpSize]
			n, err := buf.Read(tmp)
			if err != nil && err != io.EOF {
				res <- Stream{Error: wrapErr(ErrIO, 0, fmt.Errorf("reading input: %w", err))}
				return
			}
			tmp = tmp[:n]
			if err != io.EOF {
				b, rerr := buf.ReadBytes('\n')
				if rerr != nil && rerr != io.EOF {
					res <- Stream{Error: wrapErr(ErrIO, 0, fmt.Errorf("reading input: %w", rerr))}
					return
				}
				tmp = append(tmp, b...)
			}
			if len(tmp) > 0 {
				pj.ParsedJson = ParsedJson{}
				pjBuf, berr := NewBuffer(tmp)
				if berr != nil {
					res <- Stream{Error: berr}
					return
				}
				if parseErr := pj.parse(pjBuf, true); parseErr != nil {
					res <- Stream{Error: fmt.Errorf("parsing input: %w", parseErr)}
					return
				}
				out := pj.ParsedJson
				res <- Stream{Value: &out}
			}
			if err != nil {
				res <- Stream{Error: err}
				return
			}
		}
	}()
}

// ParseMany parses a stream of whitespace separated JSON documents without
// relying on newlines as a delimiter (unlike ParseNDStream): document
// boundaries are found by tracking string/escape state and bracket depth,
// so `{"a":1}{"b":2}` on a single line streams correctly. windowSize bounds
// how much unparsed input may be buffered while searching for the next
// boundary; a single document (or a run of documents with no boundary in
// between) that doesn't fit is reported as ErrCapacity on the result channel.
// A windowSize of 0 uses a library default.
func ParseMany(r io.Reader, windowSize int, res chan<- Stream, opts ...ParserOption) {
	if windowSize <= 0 {
		windowSize = 16 << 20
	}
	go func() {
		defer close(res)
		var pj internalParsedJson
		pj.copyStrings = alwaysCopyStrings
		pj.maxDepth = defaultMaxDepth
		for _, o := range opts {
			if err := o(&pj); err != nil {
				res <- Stream{Error: err}
				return
			}
		}

		br := bufio.NewReader(r)
		pending := make([]byte, 0, windowSize)
		eof := false

		for {
			if !eof && len(pending) < windowSize {
				chunk := make([]byte, windowSize-len(pending))
				n, err := br.Read(chunk)
				pending = append(pending, chunk[:n]...)
				if err != nil {
					if err != io.EOF {
						res <- Stream{Error: wrapErr(ErrIO, 0, err)}
						return
					}
					eof = true
				}
			}

			trimmed := trimLeadingSpace(pending)
			if len(trimmed) == 0 {
				if eof {
					res <- Stream{Error: io.EOF}
					return
				}
				pending = pending[:0]
				continue
			}

			boundary, complete := lastTopLevelBoundary(trimmed)
			if boundary == 0 {
				if !eof {
					if len(pending) >= windowSize {
						res <- Stream{Error: &ParseError{Kind: ErrCapacity, Offset: 0,
							Msg: fmt.Sprintf("no document boundary found within window of %d bytes", windowSize)}}
						return
					}
					continue
				}
				if !complete {
					res <- Stream{Error: newErr(ErrTapeError, 0, "truncated trailing document")}
					return
				}
				boundary = len(trimmed)
			}

			docBuf, err := NewBuffer(trimmed[:boundary])
			if err != nil {
				res <- Stream{Error: err}
				return
			}
			pj.ParsedJson = ParsedJson{}
			if parseErr := pj.parse(docBuf, true); parseErr != nil {
				res <- Stream{Error: fmt.Errorf("parsing input: %w", parseErr)}
				return
			}
			out := pj.ParsedJson
			res <- Stream{Value: &out}

			rest := trimmed[boundary:]
			pending = append(pending[:0], rest...)
			if eof && len(trimLeadingSpace(pending)) == 0 {
				res <- Stream{Error: io.EOF}
				return
			}
		}
	}()
}

func trimLeadingSpace(b []byte) []byte {
	i := 0
	for i < len(b) && whitespaceTable[b[i]] {
		i++
	}
	return b[i:]
}

// lastTopLevelBoundary scans buf and returns the offset right after the
// last complete top level value found (depth returned to zero outside any
// string). complete reports whether buf[0] itself starts a value whose end
// was actually located (as opposed to running out of input mid-value),
// which matters when the caller has seen EOF and boundary is 0.
func lastTopLevelBoundary(buf []byte) (boundary int, complete bool) {
	depth := 0
	inString := false
	escaped := false
	started := false
	last := 0

	for i := 0; i < len(buf); i++ {
		c := buf[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
				if depth == 0 {
					last = i + 1
					started = false
				}
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
			started = true
		case c == '{', c == '[':
			depth++
			started = true
		case c == '}', c == ']':
			depth--
			if depth == 0 {
				last = i + 1
				started = false
			}
		case whitespaceTable[c]:
			// no-op, does not end a bare scalar by itself until we see
			// the next token; scalars are closed by a following delimiter
			// below or by end of buffer (handled by the caller via EOF).
			if depth == 0 && started {
				last = i
				started = false
			}
		case !started && depth == 0:
			started = true
		}
	}
	return last, depth == 0 && !inString
}

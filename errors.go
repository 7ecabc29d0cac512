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

import "fmt"

// ErrorKind classifies why a parse or navigation operation failed.
// Every fallible operation in the structural indexer, tape builder and
// on-demand navigator returns one of these alongside its error, so callers
// can branch on failure class without string matching. The exception is a
// key missing from an on-demand object (ObjectIter.FindField and
// FindFieldUnordered): that returns the plain ErrPathNotFound value, for
// which Kind reports ErrNone.
type ErrorKind uint8

const (
	// ErrNone means no error occurred.
	ErrNone ErrorKind = iota
	// ErrCapacity means the input (or a stream window) exceeded the configured capacity.
	ErrCapacity
	// ErrMemAlloc means a buffer could not be grown to the required size.
	ErrMemAlloc
	// ErrDepth means nesting exceeded the configured maximum depth.
	ErrDepth
	// ErrString means a string literal was malformed (bad or truncated escape, unpaired surrogate).
	ErrString
	// ErrTAtom means a `true` literal was malformed.
	ErrTAtom
	// ErrFAtom means a `false` literal was malformed.
	ErrFAtom
	// ErrNAtom means a `null` literal was malformed.
	ErrNAtom
	// ErrNumber means a number literal was malformed or out of range.
	ErrNumber
	// ErrUTF8 means the input contained invalid UTF-8.
	ErrUTF8
	// ErrUnclosedString means a string was opened but never closed before the input ended.
	ErrUnclosedString
	// ErrUnescapedControl means a raw control character appeared inside a string.
	ErrUnescapedControl
	// ErrTapeError means the structural/grammar state machine rejected the input
	// (unbalanced containers, missing comma/colon, trailing content).
	ErrTapeError
	// ErrEmpty means the input held no value at all.
	ErrEmpty
	// ErrInsufficientPadding means the caller did not leave the required trailing
	// padding bytes available past the logical end of the buffer.
	ErrInsufficientPadding
	// ErrIncorrectType means a value was asked to yield a Go type it does not hold.
	ErrIncorrectType
	// ErrNoSuchField means a requested object key does not exist.
	ErrNoSuchField
	// ErrIndexOutOfBounds means a tape or string-buffer offset pointed outside its buffer.
	ErrIndexOutOfBounds
	// ErrOutOfOrderIteration means an on-demand value was used after the iterator moved past it.
	ErrOutOfOrderIteration
	// ErrIO wraps a failure from an underlying io.Reader/io.Writer or file operation.
	ErrIO
	// ErrClosed means an operation was attempted on a stream or serializer that already finished.
	ErrClosed
)

var errorKindStrings = [...]string{
	ErrNone:                 "no error",
	ErrCapacity:             "capacity exceeded",
	ErrMemAlloc:             "memory allocation failed",
	ErrDepth:                "maximum depth exceeded",
	ErrString:               "malformed string",
	ErrTAtom:                "malformed true atom",
	ErrFAtom:                "malformed false atom",
	ErrNAtom:                "malformed null atom",
	ErrNumber:               "malformed number",
	ErrUTF8:                 "invalid UTF-8",
	ErrUnclosedString:       "unclosed string",
	ErrUnescapedControl:     "unescaped control character in string",
	ErrTapeError:            "malformed JSON structure",
	ErrEmpty:                "no JSON found",
	ErrInsufficientPadding:  "insufficient padding on input buffer",
	ErrIncorrectType:        "incorrect value type requested",
	ErrNoSuchField:          "field not found",
	ErrIndexOutOfBounds:     "index out of bounds",
	ErrOutOfOrderIteration:  "out of order iteration",
	ErrIO:                   "i/o error",
	ErrClosed:               "stream closed",
}

// String returns a short, stable description of the error kind.
func (k ErrorKind) String() string {
	if int(k) < len(errorKindStrings) && errorKindStrings[k] != "" {
		return errorKindStrings[k]
	}
	return "unknown error"
}

// ParseError is returned by every operation that can fail because of
// malformed input, resource limits or programmer misuse of the API.
// It always carries an ErrorKind so callers can switch on failure class.
type ParseError struct {
	Kind ErrorKind
	// Offset is the byte offset in the original input the error relates to, or -1 if not applicable.
	Offset int
	Msg     string
	wrapped error
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		if e.Msg != "" {
			return fmt.Sprintf("simdjson: %s at offset %d: %s", e.Kind, e.Offset, e.Msg)
		}
		return fmt.Sprintf("simdjson: %s at offset %d", e.Kind, e.Offset)
	}
	if e.Msg != "" {
		return fmt.Sprintf("simdjson: %s: %s", e.Kind, e.Msg)
	}
	return "simdjson: " + e.Kind.String()
}

// Unwrap allows errors.Is/errors.As to reach a wrapped cause (e.g. an io.Error).
func (e *ParseError) Unwrap() error {
	return e.wrapped
}

// Is reports whether target is a *ParseError with the same Kind.
// This lets callers write `errors.Is(err, simdjson.ErrMalformedNumber)`-style
// checks against the sentinels below without comparing messages or offsets.
func (e *ParseError) Is(target error) bool {
	other, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return other.Kind == e.Kind && other.Msg == "" && other.Offset == 0
}

func newErr(kind ErrorKind, offset int, format string, args ...interface{}) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func wrapErr(kind ErrorKind, offset int, cause error) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Msg: cause.Error(), wrapped: cause}
}

// sentinel returns a bare *ParseError carrying only a Kind, suitable for use
// with errors.Is(err, simdjson.ErrXxxSentinel).
func sentinel(kind ErrorKind) *ParseError {
	return &ParseError{Kind: kind, Offset: 0}
}

// Sentinels for errors.Is comparisons against a Kind regardless of offset/message.
var (
	ErrCapacityExceeded      = sentinel(ErrCapacity)
	ErrDepthExceeded         = sentinel(ErrDepth)
	ErrMalformedNumber       = sentinel(ErrNumber)
	ErrMalformedString       = sentinel(ErrString)
	ErrInvalidUTF8           = sentinel(ErrUTF8)
	ErrBadStructure          = sentinel(ErrTapeError)
	ErrNoValue               = sentinel(ErrEmpty)
	ErrPadding               = sentinel(ErrInsufficientPadding)
	ErrWrongType             = sentinel(ErrIncorrectType)
	ErrFieldNotFound         = sentinel(ErrNoSuchField)
	ErrIterationOutOfOrder   = sentinel(ErrOutOfOrderIteration)
	ErrStreamClosed          = sentinel(ErrClosed)
)

// Kind extracts the ErrorKind from err if it is (or wraps) a *ParseError.
func Kind(err error) ErrorKind {
	var pe *ParseError
	for err != nil {
		if p, ok := err.(*ParseError); ok {
			pe = p
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if pe == nil {
		return ErrNone
	}
	return pe.Kind
}

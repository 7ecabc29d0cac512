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

import "os"

// minPadding is the minimum number of extra bytes that must follow the
// logical end of input so the block-wise stage 1 scanner can always read
// a full 64-byte block without a bounds check on the last block.
const minPadding = 64

// maxInputSize is the largest input Load/NewBuffer will accept. Container
// open words store a 32-bit offset to their matching close (see tape.go),
// so the tape - and therefore the input that produces it - is bounded.
const maxInputSize = 1<<32 - 1

// Buffer holds a JSON document together with the zero-filled padding stage 1
// depends on. Callers that already own a []byte with spare capacity can use
// WrapPadded to avoid a copy; everyone else should go through NewBuffer.
type Buffer struct {
	data []byte // len(data) == n + padding, trailing bytes are zero
	n    int    // logical length of the document
}

// NewBuffer copies b into a freshly allocated, padded buffer.
func NewBuffer(b []byte) (*Buffer, error) {
	if len(b) > maxInputSize {
		return nil, newErr(ErrCapacity, len(b), "input of %d bytes exceeds maximum of %d", len(b), maxInputSize)
	}
	data := make([]byte, len(b)+minPadding)
	copy(data, b)
	return &Buffer{data: data, n: len(b)}, nil
}

// WrapPadded wraps b without copying. b must have at least minPadding bytes
// of spare capacity past len(b); those bytes are zeroed in place.
func WrapPadded(b []byte) (*Buffer, error) {
	if cap(b)-len(b) < minPadding {
		return nil, &ParseError{Kind: ErrInsufficientPadding, Offset: len(b),
			Msg: "need at least 64 bytes of spare capacity past the logical input length"}
	}
	if len(b) > maxInputSize {
		return nil, newErr(ErrCapacity, len(b), "input of %d bytes exceeds maximum of %d", len(b), maxInputSize)
	}
	full := b[:len(b)+minPadding]
	for i := len(b); i < len(full); i++ {
		full[i] = 0
	}
	return &Buffer{data: full, n: len(b)}, nil
}

// Load reads a file from disk into a padded buffer.
func Load(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapErr(ErrIO, 0, err)
	}
	return NewBuffer(data)
}

// Bytes returns the logical document, excluding padding.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.n]
}

// padded returns the full backing array: the logical document followed by
// exactly minPadding zero bytes.
func (b *Buffer) padded() []byte {
	return b.data
}

// Len returns the logical length of the document.
func (b *Buffer) Len() int {
	return b.n
}

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

import "unicode/utf8"

// validateUTF8 checks that buf[:n] is well formed UTF-8. There is no
// vectorized UTF-8 validator anywhere in the example pack to ground a
// hand-rolled version on (see DESIGN.md), and unicode/utf8.Valid already
// implements the DFA from Bjoern Hoehrmann's algorithm that every from-scratch
// attempt would end up reproducing, so this stays on the standard library.
//
// If replace is true, invalid sequences are not reported as errors; instead
// the caller is expected to have arranged for them to be substituted with
// U+FFFD before this is called (see WithAllowReplacementOfInvalidUTF8).
func validateUTF8(buf []byte, n int, replace bool) error {
	if replace {
		return nil
	}
	if utf8.Valid(buf[:n]) {
		return nil
	}
	// Find the offending byte for a useful error message.
	for i := 0; i < n; {
		r, size := utf8.DecodeRune(buf[i:n])
		if r == utf8.RuneError && size <= 1 {
			return newErr(ErrUTF8, i, "invalid UTF-8 byte sequence")
		}
		i += size
	}
	return newErr(ErrUTF8, 0, "invalid UTF-8 byte sequence")
}

// replaceInvalidUTF8 returns a copy of buf with ill-formed UTF-8 sequences
// replaced by U+FFFD, for use with WithAllowReplacementOfInvalidUTF8.
func replaceInvalidUTF8(buf []byte) []byte {
	if utf8.Valid(buf) {
		return buf
	}
	dst := make([]byte, 0, len(buf)+len(buf)>>2)
	for i := 0; i < len(buf); {
		r, size := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError && size <= 1 {
			dst = append(dst, string(utf8.RuneError)...)
			i++
			continue
		}
		dst = append(dst, buf[i:i+size]...)
		i += size
	}
	return dst
}

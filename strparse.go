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

// parseString decodes the JSON string literal starting at buf[0] == '"',
// appending the unescaped UTF-8 bytes to dst. It returns the extended dst,
// the number of source bytes consumed (including both quotes) and an error
// if the escape sequences or surrogate pairs are malformed.
//
// simdjson-go's parse_string_simd is asm-only (parse_string_amd64.go just
// forwards to it), so this is written from scratch in the idiom of
// mcvoid-json's table-driven escape handling, generalized to full
// \uXXXX/surrogate-pair decoding per the JSON grammar.
func parseString(buf []byte, offset int, dst []byte) ([]byte, int, error) {
	if len(buf) == 0 || buf[0] != '"' {
		return dst, 0, newErr(ErrString, offset, "expected opening quote")
	}
	i := 1
	n := len(buf)
	for {
		if i >= n {
			return dst, 0, newErr(ErrUnclosedString, offset, "unterminated string")
		}
		c := buf[i]
		switch {
		case c == '"':
			return dst, i + 1, nil
		case c == '\\':
			i++
			if i >= n {
				return dst, 0, newErr(ErrString, offset+i, "dangling escape at end of input")
			}
			esc := buf[i]
			switch esc {
			case '"':
				dst = append(dst, '"')
			case '\\':
				dst = append(dst, '\\')
			case '/':
				dst = append(dst, '/')
			case 'b':
				dst = append(dst, '\b')
			case 'f':
				dst = append(dst, '\f')
			case 'n':
				dst = append(dst, '\n')
			case 'r':
				dst = append(dst, '\r')
			case 't':
				dst = append(dst, '\t')
			case 'u':
				r, consumed, err := decodeUnicodeEscape(buf, i+1, offset+i)
				if err != nil {
					return dst, 0, err
				}
				i += consumed
				var tmp [utf8.UTFMax]byte
				w := utf8.EncodeRune(tmp[:], r)
				dst = append(dst, tmp[:w]...)
			default:
				return dst, 0, newErr(ErrString, offset+i, "invalid escape character %q", esc)
			}
			i++
		case c < 0x20:
			return dst, 0, newErr(ErrUnescapedControl, offset+i, "unescaped control character 0x%02x in string", c)
		default:
			dst = append(dst, c)
			i++
		}
	}
}

// decodeUnicodeEscape decodes a \uXXXX escape (and, if it's a high
// surrogate, the \uXXXX low surrogate that must immediately follow it)
// starting at buf[pos]. It returns the decoded rune and the number of
// bytes consumed from the first hex digit of the *first* \u escape.
func decodeUnicodeEscape(buf []byte, pos, errOffset int) (rune, int, error) {
	hi, err := readHex4(buf, pos, errOffset)
	if err != nil {
		return 0, 0, err
	}
	if hi < 0xD800 || hi > 0xDFFF {
		return rune(hi), 4, nil
	}
	if hi > 0xDBFF {
		// Lone low surrogate: JSON permits emitting it, matching Go's
		// unicode/utf8 behavior of substituting the replacement character
		// would lose information other implementations preserve, so we reject it.
		return 0, 0, newErr(ErrString, errOffset, "unpaired low surrogate \\u%04x", hi)
	}
	// High surrogate: must be followed by \u and a low surrogate.
	if pos+4+2 > len(buf) || buf[pos+4] != '\\' || buf[pos+4+1] != 'u' {
		return 0, 0, newErr(ErrString, errOffset, "high surrogate \\u%04x not followed by low surrogate", hi)
	}
	lo, err := readHex4(buf, pos+6, errOffset)
	if err != nil {
		return 0, 0, err
	}
	if lo < 0xDC00 || lo > 0xDFFF {
		return 0, 0, newErr(ErrString, errOffset, "high surrogate \\u%04x not followed by low surrogate", hi)
	}
	r := 0x10000 + (rune(hi)-0xD800)<<10 + (rune(lo) - 0xDC00)
	return r, 4 + 6, nil
}

func readHex4(buf []byte, pos, errOffset int) (uint32, error) {
	if pos+4 > len(buf) {
		return 0, newErr(ErrString, errOffset, "truncated \\u escape")
	}
	var v uint32
	for k := 0; k < 4; k++ {
		c := buf[pos+k]
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= uint32(c - '0')
		case c >= 'a' && c <= 'f':
			v |= uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= uint32(c-'A') + 10
		default:
			return 0, newErr(ErrString, errOffset, "invalid hex digit %q in \\u escape", c)
		}
	}
	return v, nil
}

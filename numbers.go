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

import "strconv"

// parsedNumber is the result of walking a number literal.
type parsedNumber struct {
	isDouble bool
	isUint   bool // only meaningful when !isDouble: value didn't fit in int64
	i        int64
	u        uint64
	d        float64
}

// parseNumber validates and decodes the JSON number literal starting at
// buf[0] (which may begin with '-'). It does not use strconv for the
// grammar walk - strconv.Atoi/ParseFloat are more permissive than JSON
// (they accept leading zeros, a bare leading '+', ".5", "5."), so the JSON
// grammar is validated explicitly byte by byte first. Once confirmed valid,
// the matched substring is
// handed to strconv for the actual base-10-to-IEEE754/int64 conversion,
// since reimplementing correctly-rounded decimal-to-binary conversion by
// hand would just reintroduce bugs the standard library has already fixed.
//
// Returns the parsed value and the number of bytes consumed.
func parseNumber(buf []byte, offset int) (parsedNumber, int, error) {
	start := 0
	n := len(buf)
	i := 0

	if i < n && buf[i] == '-' {
		i++
	}
	if i >= n || buf[i] < '0' || buf[i] > '9' {
		return parsedNumber{}, 0, newErr(ErrNumber, offset, "missing integer part")
	}
	if buf[i] == '0' {
		i++
		if i < n && buf[i] >= '0' && buf[i] <= '9' {
			return parsedNumber{}, 0, newErr(ErrNumber, offset, "leading zero not allowed")
		}
	} else {
		for i < n && buf[i] >= '0' && buf[i] <= '9' {
			i++
		}
	}

	isDouble := false

	if i < n && buf[i] == '.' {
		isDouble = true
		i++
		digStart := i
		for i < n && buf[i] >= '0' && buf[i] <= '9' {
			i++
		}
		if i == digStart {
			return parsedNumber{}, 0, newErr(ErrNumber, offset, "missing digits after decimal point")
		}
	}

	if i < n && (buf[i] == 'e' || buf[i] == 'E') {
		isDouble = true
		i++
		if i < n && (buf[i] == '+' || buf[i] == '-') {
			i++
		}
		digStart := i
		for i < n && buf[i] >= '0' && buf[i] <= '9' {
			i++
		}
		if i == digStart {
			return parsedNumber{}, 0, newErr(ErrNumber, offset, "missing digits in exponent")
		}
	}

	lit := buf[start:i]
	var out parsedNumber
	out.isDouble = isDouble
	if isDouble {
		d, err := strconv.ParseFloat(string(lit), 64)
		if err != nil {
			return parsedNumber{}, 0, wrapErr(ErrNumber, offset, err)
		}
		out.d = d
		return out, i, nil
	}

	if lit[0] == '-' {
		v, err := strconv.ParseInt(string(lit), 10, 64)
		if err != nil {
			// Integer notation that under/overflows int64 is a number_error,
			// not a silent widening to float64 - this matches INVALID_NUMBER
			// in the reference stage 2 number parser for the same case.
			return parsedNumber{}, 0, wrapErr(ErrNumber, offset, err)
		}
		out.i = v
		return out, i, nil
	}

	v, err := strconv.ParseUint(string(lit), 10, 64)
	if err != nil {
		return parsedNumber{}, 0, wrapErr(ErrNumber, offset, err)
	}
	if v <= uint64(1<<63-1) {
		out.i = int64(v)
	} else {
		out.isUint = true
		out.u = v
	}
	return out, i, nil
}

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

import "testing"

func TestParseNumberValid(t *testing.T) {
	// Grounded on the validity grid in simdjson-go's TestNumberIsValid
	// (parse_number_test.go), restricted to JSON-strict literals (the
	// original strconv-backed fallback accepted a looser grammar).
	valid := []string{
		"0", "-0", "1", "-1", "0.1", "-0.1", "1234", "-1234",
		"12.34", "-12.34", "12E0", "12E1", "12e34", "12E-0", "12e+1",
		"12e-34", "-12E0", "-12e34", "1.2E0", "18446744073709551615",
		"-9223372036854775808",
	}
	for _, s := range valid {
		_, n, err := parseNumber([]byte(s), 0)
		if err != nil {
			t.Errorf("parseNumber(%q): unexpected error: %v", s, err)
			continue
		}
		if n != len(s) {
			t.Errorf("parseNumber(%q): consumed %d bytes, want %d", s, n, len(s))
		}
	}
}

func TestParseNumberInvalid(t *testing.T) {
	invalid := []string{
		"01", "-01", "+1", ".1", "1.", "1.e1", "1e", "-", "", "1e+", "--1",
	}
	for _, s := range invalid {
		_, _, err := parseNumber([]byte(s+" "), 0)
		if err == nil {
			t.Errorf("parseNumber(%q): expected error, got none", s)
		}
	}
}

func TestParseNumberTypes(t *testing.T) {
	n, _, err := parseNumber([]byte("42"), 0)
	if err != nil || n.isDouble || n.isUint || n.i != 42 {
		t.Errorf("42: got %+v, err=%v", n, err)
	}

	n, _, err = parseNumber([]byte("3.5"), 0)
	if err != nil || !n.isDouble || n.d != 3.5 {
		t.Errorf("3.5: got %+v, err=%v", n, err)
	}

	n, _, err = parseNumber([]byte("18446744073709551615"), 0) // math.MaxUint64
	if err != nil || n.isDouble || !n.isUint || n.u != 18446744073709551615 {
		t.Errorf("maxuint64: got %+v, err=%v", n, err)
	}

	// One past uint64 max: overflows both int64 and uint64, which is a
	// number_error, not a silent widening to float64.
	_, _, err = parseNumber([]byte("18446744073709551616"), 0)
	if Kind(err) != ErrNumber {
		t.Errorf("maxuint64+1: got err=%v, want ErrNumber", err)
	}

	_, _, err = parseNumber([]byte("-9223372036854775809"), 0) // math.MinInt64 - 1
	if Kind(err) != ErrNumber {
		t.Errorf("minint64-1: got err=%v, want ErrNumber", err)
	}
}

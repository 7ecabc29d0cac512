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

func TestHasByte(t *testing.T) {
	cases := []struct {
		word uint64
		b    byte
		want uint64
	}{
		{0x0000000000000000, 'x', 0},
		{0x7820202020202020, 'x', 0x8000000000000000},
		{0x7878787878787878, 'x', 0x8080808080808080},
		{0x0100000000000000, 0x01, 0x8000000000000000},
	}
	for i, c := range cases {
		got := hasByte(c.word, c.b)
		if got != c.want {
			t.Errorf("case %d: hasByte(%#x, %q) = %#x, want %#x", i, c.word, c.b, got, c.want)
		}
	}
}

func TestExtractMSBs(t *testing.T) {
	cases := []struct {
		in, want uint64
	}{
		{0, 0},
		{0xffffffffffffffff, 0xff},
		{0x8000000000000000, 0x80},
		{0x8080808080808080, 0xff},
		{0x0000000000000080, 0x01},
	}
	for i, c := range cases {
		got := extractMSBs(c.in)
		if got != c.want {
			t.Errorf("case %d: extractMSBs(%#x) = %#x, want %#x", i, c.in, got, c.want)
		}
	}
}

func TestPrefixXOR(t *testing.T) {
	cases := []struct {
		in, want uint64
	}{
		{0, 0},
		{0x1, 0xffffffffffffffff},
		{0b1001, 0b0111},
		{0b101, 0b011},
	}
	for i, c := range cases {
		got := prefixXOR(c.in)
		if got != c.want {
			t.Errorf("case %d: prefixXOR(%#b) = %#b, want %#b", i, c.in, got, c.want)
		}
	}
}

func TestAddOverflow(t *testing.T) {
	sum, over := addOverflow(1, 2)
	if sum != 3 || over {
		t.Errorf("1+2: got sum=%d over=%v", sum, over)
	}
	sum, over = addOverflow(^uint64(0), 1)
	if sum != 0 || !over {
		t.Errorf("max+1: got sum=%d over=%v, want 0 true", sum, over)
	}
}

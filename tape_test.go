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

func rootObject(t *testing.T, in string) *Object {
	t.Helper()
	pj, err := Parse([]byte(in), nil)
	if err != nil {
		t.Fatalf("Parse(%q): unexpected error: %v", in, err)
	}
	i := pj.Iter()
	i.AdvanceInto()
	_, root, err := i.Root(nil)
	if err != nil {
		t.Fatalf("Root(): unexpected error: %v", err)
	}
	obj, err := root.Object(nil)
	if err != nil {
		t.Fatalf("Object(): unexpected error: %v", err)
	}
	return obj
}

func TestBuildTapeObjectAndArray(t *testing.T) {
	obj := rootObject(t, `{"a":1,"b":[2,3,4],"c":{"d":true}}`)

	n, ok := obj.Size()
	if !ok || n != 3 {
		t.Fatalf("object Size() = %d, %v; want 3, true", n, ok)
	}

	var el Element
	if obj.FindKey("a", &el) == nil {
		t.Fatal("FindKey(a) = nil")
	}
	v, err := el.Iter.Int()
	if err != nil || v != 1 {
		t.Errorf("a: got %v, %v; want 1", v, err)
	}

	if obj.FindKey("b", &el) == nil {
		t.Fatal("FindKey(b) = nil")
	}
	arr, err := el.Iter.Array(nil)
	if err != nil {
		t.Fatalf("Array(): %v", err)
	}
	an, ok := arr.Size()
	if !ok || an != 3 {
		t.Fatalf("array Size() = %d, %v; want 3, true", an, ok)
	}

	if obj.FindKey("c", &el) == nil {
		t.Fatal("FindKey(c) = nil")
	}
	inner, err := el.Iter.Object(nil)
	if err != nil {
		t.Fatalf("Object(): %v", err)
	}
	in, ok := inner.Size()
	if !ok || in != 1 {
		t.Fatalf("inner object Size() = %d, %v; want 1, true", in, ok)
	}

	if obj.FindKey("nope", &el) != nil {
		t.Fatal("FindKey(nope) should be nil")
	}
}

func TestBuildTapeEmptyContainers(t *testing.T) {
	obj := rootObject(t, `{"e":[],"o":{}}`)

	var el Element
	if obj.FindKey("e", &el) == nil {
		t.Fatal("FindKey(e) = nil")
	}
	arr, err := el.Iter.Array(nil)
	if err != nil {
		t.Fatalf("Array(): %v", err)
	}
	n, ok := arr.Size()
	if !ok || n != 0 {
		t.Errorf("empty array Size() = %d, %v; want 0, true", n, ok)
	}

	if obj.FindKey("o", &el) == nil {
		t.Fatal("FindKey(o) = nil")
	}
	inner, err := el.Iter.Object(nil)
	if err != nil {
		t.Fatalf("Object(): %v", err)
	}
	n, ok = inner.Size()
	if !ok || n != 0 {
		t.Errorf("empty object Size() = %d, %v; want 0, true", n, ok)
	}
}

func TestBuildTapeMalformed(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want ErrorKind
	}{
		{"trailing comma array", `[1,2,]`, ErrTapeError},
		{"trailing comma object", `{"a":1,}`, ErrTapeError},
		{"mismatched close", `[1,2}`, ErrTapeError},
		{"missing colon", `{"a" 1}`, ErrTapeError},
		{"trailing content", `{"a":1} garbage`, ErrTapeError},
		{"empty input", ``, ErrEmpty},
	}
	for _, c := range cases {
		_, err := Parse([]byte(c.in), nil)
		if Kind(err) != c.want {
			t.Errorf("%s: Parse(%q) error kind = %v, want %v (err=%v)", c.name, c.in, Kind(err), c.want, err)
		}
	}
}

func TestBuildTapeMaxDepth(t *testing.T) {
	_, err := Parse([]byte(`[[[[1]]]]`), nil, WithMaxDepth(2))
	if Kind(err) != ErrDepth {
		t.Fatalf("deep nesting with WithMaxDepth(2): got %v, want ErrDepth", err)
	}

	pj, err := Parse([]byte(`[[[[1]]]]`), nil, WithMaxDepth(8))
	if err != nil {
		t.Fatalf("deep nesting with WithMaxDepth(8): unexpected error: %v", err)
	}
	if len(pj.Tape) == 0 {
		t.Fatal("expected a non-empty tape")
	}
}

func TestBuildTapeScalarRoot(t *testing.T) {
	pj, err := Parse([]byte(`42`), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i := pj.Iter()
	i.AdvanceInto()
	typ, root, err := i.Root(nil)
	if err != nil {
		t.Fatalf("Root(): %v", err)
	}
	if typ != TypeInt {
		t.Fatalf("got type %v, want TypeInt", typ)
	}
	v, err := root.Int()
	if err != nil || v != 42 {
		t.Errorf("got %v, %v; want 42", v, err)
	}
}

func TestBuildTapeIntegerOverflowError(t *testing.T) {
	_, err := Parse([]byte(`18446744073709551616`), nil) // math.MaxUint64 + 1
	if Kind(err) != ErrNumber {
		t.Fatalf("got err=%v, want ErrNumber", err)
	}

	_, err = Parse([]byte(`-9223372036854775809`), nil) // math.MinInt64 - 1
	if Kind(err) != ErrNumber {
		t.Fatalf("got err=%v, want ErrNumber", err)
	}
}

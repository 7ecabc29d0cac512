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
	"io"
	"strings"
	"testing"
)

// collectInts drains every root-wrapped integer scalar out of a stream of
// results, the same Advance()==TypeRoot pattern used to walk ND results.
func collectInts(t *testing.T, res <-chan Stream) []int64 {
	t.Helper()
	var got []int64
	for s := range res {
		if s.Error != nil {
			if s.Error == io.EOF {
				return got
			}
			t.Fatalf("unexpected stream error: %v", s.Error)
		}
		all := s.Value.Iter()
		var tmp Iter
		for all.Advance() == TypeRoot {
			typ, root, err := all.Root(&tmp)
			if err != nil {
				t.Fatalf("Root(): %v", err)
			}
			if typ != TypeInt {
				t.Fatalf("got root type %v, want TypeInt", typ)
			}
			v, err := root.Int()
			if err != nil {
				t.Fatalf("Int(): %v", err)
			}
			got = append(got, v)
		}
	}
	return got
}

func TestParseNDStream(t *testing.T) {
	in := "1\n2\n3\n"
	res := make(chan Stream)
	ParseNDStream(strings.NewReader(in), res, nil)
	got := collectInts(t, res)
	want := []int64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestParseManyNoDelimiter(t *testing.T) {
	in := `1 2 3`
	res := make(chan Stream)
	ParseMany(strings.NewReader(in), 0, res)
	got := collectInts(t, res)
	want := []int64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestParseManyConcatenatedObjects(t *testing.T) {
	in := `{"a":1}{"a":2}`
	res := make(chan Stream)
	ParseMany(strings.NewReader(in), 0, res)

	var seen int
	for s := range res {
		if s.Error != nil {
			if s.Error == io.EOF {
				break
			}
			t.Fatalf("unexpected stream error: %v", s.Error)
		}
		all := s.Value.Iter()
		var tmp Iter
		for all.Advance() == TypeRoot {
			typ, root, err := all.Root(&tmp)
			if err != nil {
				t.Fatalf("Root(): %v", err)
			}
			if typ != TypeObject {
				t.Fatalf("got root type %v, want TypeObject", typ)
			}
			obj, err := root.Object(nil)
			if err != nil {
				t.Fatalf("Object(): %v", err)
			}
			var el Element
			if obj.FindKey("a", &el) == nil {
				t.Fatal("FindKey(a) = nil")
			}
			seen++
		}
	}
	if seen != 2 {
		t.Fatalf("saw %d documents, want 2", seen)
	}
}

func TestParseManyCapacityError(t *testing.T) {
	in := `{"a":"` + strings.Repeat("x", 100) + `"}`
	res := make(chan Stream)
	ParseMany(strings.NewReader(in), 8, res)

	var err error
	for s := range res {
		if s.Error != nil {
			err = s.Error
			break
		}
	}
	if Kind(err) != ErrCapacity {
		t.Fatalf("got error %v, want ErrCapacity", err)
	}
}

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
	"reflect"
	"testing"
)

func TestIterInterface(t *testing.T) {
	pj, err := Parse([]byte(`{"a":1,"b":[true,false,null],"c":"x"}`), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	i := pj.Iter()
	i.AdvanceInto()
	_, root, err := i.Root(nil)
	if err != nil {
		t.Fatalf("Root(): %v", err)
	}
	got, err := root.Interface()
	if err != nil {
		t.Fatalf("Interface(): %v", err)
	}
	want := map[string]interface{}{
		"a": int64(1),
		"b": []interface{}{true, false, nil},
		"c": "x",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestObjectMap(t *testing.T) {
	pj, err := Parse([]byte(`{"x":1,"y":2.5}`), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	i := pj.Iter()
	i.AdvanceInto()
	_, root, err := i.Root(nil)
	if err != nil {
		t.Fatalf("Root(): %v", err)
	}
	obj, err := root.Object(nil)
	if err != nil {
		t.Fatalf("Object(): %v", err)
	}
	m, err := obj.Map(nil)
	if err != nil {
		t.Fatalf("Map(): %v", err)
	}
	if m["x"] != int64(1) || m["y"] != 2.5 {
		t.Fatalf("got %#v", m)
	}
}

func TestIterMarshalJSON(t *testing.T) {
	in := `{"a":1,"b":[1,2,3]}`
	pj, err := Parse([]byte(in), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	i := pj.Iter()
	i.AdvanceInto()
	_, root, err := i.Root(nil)
	if err != nil {
		t.Fatalf("Root(): %v", err)
	}
	out, err := root.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON(): %v", err)
	}
	// Re-parse the re-serialized JSON and compare the decoded value rather
	// than the byte-for-byte string, since key/whitespace formatting isn't
	// guaranteed to match the input verbatim.
	pj2, err := Parse(out, nil)
	if err != nil {
		t.Fatalf("Parse(MarshalJSON output): %v (output was %s)", err, out)
	}
	i2 := pj2.Iter()
	i2.AdvanceInto()
	_, root2, err := i2.Root(nil)
	if err != nil {
		t.Fatalf("Root(): %v", err)
	}
	got, err := root2.Interface()
	if err != nil {
		t.Fatalf("Interface(): %v", err)
	}
	want := map[string]interface{}{
		"a": int64(1),
		"b": []interface{}{int64(1), int64(2), int64(3)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestObjectForEach(t *testing.T) {
	pj, err := Parse([]byte(`{"a":1,"b":2,"c":3}`), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	i := pj.Iter()
	i.AdvanceInto()
	_, root, err := i.Root(nil)
	if err != nil {
		t.Fatalf("Root(): %v", err)
	}
	obj, err := root.Object(nil)
	if err != nil {
		t.Fatalf("Object(): %v", err)
	}
	seen := map[string]int64{}
	err = obj.ForEach(func(key []byte, it Iter) {
		v, verr := it.Int()
		if verr != nil {
			t.Fatalf("Int(): %v", verr)
		}
		seen[string(key)] = v
	}, nil)
	if err != nil {
		t.Fatalf("ForEach(): %v", err)
	}
	want := map[string]int64{"a": 1, "b": 2, "c": 3}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("got %#v, want %#v", seen, want)
	}
}

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

// This file implements on-demand (lazy) navigation directly over the stage 1
// structural index, without ever materializing a tape. simdjson-go only ever
// exposes the DOM (ParsedJson/Iter) API, so this is grounded on the upstream
// C++ project's ondemand design
// (original_source/include/simdjson/generic/ondemand/array-inl.h,
// .../logger-inl.h, and the ondemand test files under original_source/tests),
// reworked into idiomatic Go: explicit (value, error) returns instead of
// exceptions, and a generation counter standing in for the C++ iterator's
// depth/location assertions that detect use of a parent after its child
// moved on (out-of-order field access is a documented ondemand foot-gun in
// the original; see ErrOutOfOrderIteration).
//
// Forward-only, single-pass: a Value can be read exactly once, an array or
// object can be walked exactly once and only in document order. This keeps
// the implementation honest about what laziness buys you - no backtracking,
// no tape - which is the entire point of the design. An element that is
// never read (not even peeked) is simply skipped over when the next one is
// requested, the same way the original ondemand API lets callers ignore
// fields they don't care about. ObjectIter.FindFieldUnordered is the one
// deliberate exception: it may re-scan fields already passed over once, the
// same trade the original makes for unordered field lookup.

// OnDemandParser holds the padded input and the stage 1 structural index
// for a single document. Building one only runs stage 1; no tape is built
// until (and unless) values are actually read through an Iterator.
type OnDemandParser struct {
	buf         []byte
	n           int
	structurals []uint32
}

// ParseOnDemand runs stage 1 over buf and returns a parser ready to Iterate.
// Unlike Parse, this never invokes stage 2 - the cost of walking a value is
// only paid for values actually visited.
func ParseOnDemand(buf *Buffer, opts ...ParserOption) (*OnDemandParser, error) {
	var pj internalParsedJson
	pj.allowReplacementOfInvalidUTF8 = false
	for _, o := range opts {
		if err := o(&pj); err != nil {
			return nil, err
		}
	}

	full := buf.padded()
	n := buf.Len()
	input := full
	if pj.allowReplacementOfInvalidUTF8 {
		clean := replaceInvalidUTF8(full[:n])
		cb, err := NewBuffer(clean)
		if err != nil {
			return nil, err
		}
		input, n = cb.padded(), cb.Len()
	} else if err := validateUTF8(full, n, false); err != nil {
		return nil, err
	}

	structurals, err := findStructuralIndices(input, n, nil)
	if err != nil {
		return nil, err
	}
	return &OnDemandParser{buf: input, n: n, structurals: structurals}, nil
}

// Iterator walks a document (or a single value nested within one) lazily.
// The zero value is not usable; obtain one from OnDemandParser.Iterate or
// from Array/Object accessors below.
type Iterator struct {
	buf         []byte
	structurals []uint32
	idx         int // index into structurals of the next unread token
	depth       int
	maxDepth    int
	gen         uint64 // bumped whenever a child Value/iterator is handed out
	err         error  // sticky: once set, every method returns it
}

// Iterate returns an Iterator positioned before the document's single root value.
func (p *OnDemandParser) Iterate() *Iterator {
	return &Iterator{buf: p.buf[:p.n], structurals: p.structurals, maxDepth: defaultMaxDepth}
}

func (it *Iterator) fail(err error) error {
	if it.err == nil {
		it.err = err
	}
	return it.err
}

func (it *Iterator) peek() (byte, int, error) {
	if it.err != nil {
		return 0, 0, it.err
	}
	if it.idx >= len(it.structurals) {
		return 0, 0, it.fail(newErr(ErrTapeError, len(it.buf), "no more values"))
	}
	pos := int(it.structurals[it.idx])
	traceToken("ondemand.peek", pos, it.buf[pos], it.depth)
	return it.buf[pos], pos, nil
}

// PeekType reports the type of the next value without consuming it.
func (it *Iterator) PeekType() (Type, error) {
	c, _, err := it.peek()
	if err != nil {
		return TypeNone, err
	}
	switch {
	case c == '{':
		return TypeObject, nil
	case c == '[':
		return TypeArray, nil
	case c == '"':
		return TypeString, nil
	case c == 't', c == 'f':
		return TypeBool, nil
	case c == 'n':
		return TypeNull, nil
	case c == '-' || (c >= '0' && c <= '9'):
		return TypeInt, nil
	default:
		return TypeNone, it.fail(newErr(ErrTapeError, 0, "unexpected character %q", c))
	}
}

// checkGen verifies that a child created at childGen is still the most
// recently issued child of it; otherwise the parent was used again after a
// nested value was handed out and we raise ErrOutOfOrderIteration, matching
// the forward-only discipline documented in the original ondemand tests.
func (it *Iterator) checkGen(childGen uint64) error {
	if it.err != nil {
		return it.err
	}
	if childGen != it.gen {
		return it.fail(sentinel(ErrOutOfOrderIteration))
	}
	return nil
}

func (it *Iterator) spawnChild() uint64 {
	it.gen++
	return it.gen
}

// skipValue advances it.idx past exactly one JSON value starting at the
// current position, without decoding it: a scalar consumes one token, a
// string consumes its opening/closing quote pair, and an object or array
// is walked by bracket depth until its matching close.
func (it *Iterator) skipValue() error {
	c, pos, err := it.peek()
	if err != nil {
		return err
	}
	switch c {
	case '"':
		it.idx += 2
		return nil
	case '{', '[':
		depth := 1
		it.idx++
		for depth > 0 {
			if it.idx >= len(it.structurals) {
				return it.fail(newErr(ErrTapeError, len(it.buf), "unexpected end of input while skipping value"))
			}
			pos = int(it.structurals[it.idx])
			switch it.buf[pos] {
			case '{', '[':
				depth++
				it.idx++
			case '}', ']':
				depth--
				it.idx++
			case '"':
				it.idx += 2
			default:
				it.idx++
			}
		}
		return nil
	default:
		it.idx++
		return nil
	}
}

// skipPending resyncs the cursor after an element that was left unread by
// the caller. elemDepth is the depth at which the enclosing array/object's
// elements live; valueStart is the token index where the element began.
// If the element was entered as a container and not iterated to
// completion, this first unwinds the open nesting; if it was never even
// opened, it then skips it whole.
func (it *Iterator) skipPending(elemDepth, valueStart int) error {
	if it.err != nil {
		return it.err
	}
	for it.depth > elemDepth {
		if it.idx >= len(it.structurals) {
			return it.fail(newErr(ErrTapeError, len(it.buf), "unexpected end of input while skipping value"))
		}
		pos := int(it.structurals[it.idx])
		switch it.buf[pos] {
		case '{', '[':
			it.idx++
			it.depth++
		case '}', ']':
			it.idx++
			it.depth--
		case '"':
			it.idx += 2
		default:
			it.idx++
		}
	}
	if it.idx == valueStart {
		return it.skipValue()
	}
	return nil
}

// FindField enters the next value as an object and searches it for key.
// See ObjectIter.FindField.
func (it *Iterator) FindField(key string) (*Iterator, error) {
	obj, err := it.Object()
	if err != nil {
		return nil, err
	}
	return obj.FindField(key)
}

// FindFieldUnordered enters the next value as an object and searches it
// for key, wrapping around once if not found in order.
// See ObjectIter.FindFieldUnordered.
func (it *Iterator) FindFieldUnordered(key string) (*Iterator, error) {
	obj, err := it.Object()
	if err != nil {
		return nil, err
	}
	return obj.FindFieldUnordered(key)
}

// String consumes the next value as a string.
func (it *Iterator) String() (string, error) {
	c, pos, err := it.peek()
	if err != nil {
		return "", err
	}
	if c != '"' {
		return "", it.fail(newErr(ErrIncorrectType, pos, "value is not a string"))
	}
	var scratch []byte
	scratch, _, err = parseString(it.buf[pos:], pos, scratch[:0])
	if err != nil {
		return "", it.fail(err)
	}
	it.idx += 2
	return string(scratch), nil
}

// Bool consumes the next value as a boolean.
func (it *Iterator) Bool() (bool, error) {
	c, pos, err := it.peek()
	if err != nil {
		return false, err
	}
	switch c {
	case 't':
		if !matchAtom(it.buf, pos, "true") {
			return false, it.fail(newErr(ErrTAtom, pos, "invalid literal, expected true"))
		}
		it.idx++
		return true, nil
	case 'f':
		if !matchAtom(it.buf, pos, "false") {
			return false, it.fail(newErr(ErrFAtom, pos, "invalid literal, expected false"))
		}
		it.idx++
		return false, nil
	default:
		return false, it.fail(newErr(ErrIncorrectType, pos, "value is not a bool"))
	}
}

// Null consumes the next value, which must be a JSON null.
func (it *Iterator) Null() error {
	c, pos, err := it.peek()
	if err != nil {
		return err
	}
	if c != 'n' || !matchAtom(it.buf, pos, "null") {
		return it.fail(newErr(ErrIncorrectType, pos, "value is not null"))
	}
	it.idx++
	return nil
}

func (it *Iterator) number() (parsedNumber, error) {
	c, pos, err := it.peek()
	if err != nil {
		return parsedNumber{}, err
	}
	if c != '-' && (c < '0' || c > '9') {
		return parsedNumber{}, it.fail(newErr(ErrIncorrectType, pos, "value is not a number"))
	}
	num, consumed, err := parseNumber(it.buf[pos:], pos)
	if err != nil {
		return parsedNumber{}, it.fail(err)
	}
	if !validFollower(it.buf, pos+consumed) {
		return parsedNumber{}, it.fail(newErr(ErrNumber, pos, "number followed by invalid character"))
	}
	it.idx++
	return num, nil
}

// Int consumes the next value as an int64, converting floats when they fit.
func (it *Iterator) Int() (int64, error) {
	n, err := it.number()
	if err != nil {
		return 0, err
	}
	if n.isDouble {
		if n.d >= 1<<63 || n.d < -(1<<63) {
			return 0, it.fail(newErr(ErrIncorrectType, 0, "value overflows int64"))
		}
		return int64(n.d), nil
	}
	if n.isUint {
		return 0, it.fail(newErr(ErrIncorrectType, 0, "value overflows int64"))
	}
	return n.i, nil
}

// Float consumes the next value as a float64.
func (it *Iterator) Float() (float64, error) {
	n, err := it.number()
	if err != nil {
		return 0, err
	}
	if n.isDouble {
		return n.d, nil
	}
	if n.isUint {
		return float64(n.u), nil
	}
	return float64(n.i), nil
}

// ArrayIter walks the elements of a JSON array in order.
type ArrayIter struct {
	it         *Iterator
	gen        uint64
	elemDepth  int
	valueStart int
	started    bool
	done       bool
}

// Array begins iterating the next value as an array.
func (it *Iterator) Array() (*ArrayIter, error) {
	c, pos, err := it.peek()
	if err != nil {
		return nil, err
	}
	if c != '[' {
		return nil, it.fail(newErr(ErrIncorrectType, pos, "value is not an array"))
	}
	if it.depth+1 > it.maxDepth {
		return nil, it.fail(newErr(ErrDepth, pos, "maximum nesting depth exceeded"))
	}
	it.idx++
	it.depth++
	return &ArrayIter{it: it, gen: it.spawnChild(), elemDepth: it.depth}, nil
}

// Next advances to the next element, returning false when the array ends.
// A sticky error from a previous element (or from a sibling iterator used
// out of order) is surfaced on the call where it is first observed. An
// element that was never read is skipped automatically.
func (a *ArrayIter) Next() (bool, error) {
	if err := a.it.checkGen(a.gen); err != nil {
		return false, err
	}
	if a.done {
		return false, nil
	}
	if a.started {
		if err := a.it.skipPending(a.elemDepth, a.valueStart); err != nil {
			return false, err
		}
	}
	c, pos, err := a.it.peek()
	if err != nil {
		return false, err
	}
	if c == ']' {
		a.it.idx++
		a.it.depth--
		a.done = true
		return false, nil
	}
	if a.started {
		if c != ',' {
			return false, a.it.fail(newErr(ErrTapeError, pos, "expected ',' or ']'"))
		}
		a.it.idx++
		c, pos, err = a.it.peek()
		if err != nil {
			return false, err
		}
		if c == ']' {
			return false, a.it.fail(newErr(ErrTapeError, pos, "trailing comma before ']'"))
		}
	}
	a.started = true
	a.valueStart = a.it.idx
	a.gen = a.it.spawnChild()
	return true, nil
}

// Value returns an iterator positioned at the current element so it can be
// read or descended into. Must be called at most once per Next.
func (a *ArrayIter) Value() *Iterator {
	return a.it
}

// ObjectIter walks the key/value pairs of a JSON object in order.
type ObjectIter struct {
	it         *Iterator
	gen        uint64
	elemDepth  int
	startIdx   int
	valueStart int
	started    bool
	done       bool
}

// Object begins iterating the next value as an object.
func (it *Iterator) Object() (*ObjectIter, error) {
	c, pos, err := it.peek()
	if err != nil {
		return nil, err
	}
	if c != '{' {
		return nil, it.fail(newErr(ErrIncorrectType, pos, "value is not an object"))
	}
	if it.depth+1 > it.maxDepth {
		return nil, it.fail(newErr(ErrDepth, pos, "maximum nesting depth exceeded"))
	}
	it.idx++
	it.depth++
	return &ObjectIter{it: it, gen: it.spawnChild(), elemDepth: it.depth, startIdx: it.idx}, nil
}

// Next advances to the next field, returning its key, or ok=false at the
// end of the object. A value that was never read is skipped automatically.
func (o *ObjectIter) Next() (key string, ok bool, err error) {
	if err := o.it.checkGen(o.gen); err != nil {
		return "", false, err
	}
	if o.done {
		return "", false, nil
	}
	if o.started {
		if err := o.it.skipPending(o.elemDepth, o.valueStart); err != nil {
			return "", false, err
		}
	}
	c, pos, err := o.it.peek()
	if err != nil {
		return "", false, err
	}
	if c == '}' {
		o.it.idx++
		o.it.depth--
		o.done = true
		return "", false, nil
	}
	if o.started {
		if c != ',' {
			return "", false, o.it.fail(newErr(ErrTapeError, pos, "expected ',' or '}'"))
		}
		o.it.idx++
		c, pos, err = o.it.peek()
		if err != nil {
			return "", false, err
		}
		if c == '}' {
			return "", false, o.it.fail(newErr(ErrTapeError, pos, "trailing comma before '}'"))
		}
	}
	if c != '"' {
		return "", false, o.it.fail(newErr(ErrTapeError, pos, "expected string key in object"))
	}
	key, err = o.it.String()
	if err != nil {
		return "", false, err
	}
	if c2, p2, e2 := o.it.peek(); e2 != nil || c2 != ':' {
		if e2 != nil {
			return "", false, e2
		}
		return "", false, o.it.fail(newErr(ErrTapeError, p2, "expected ':' after object key"))
	}
	o.it.idx++
	o.started = true
	o.valueStart = o.it.idx
	o.gen = o.it.spawnChild()
	return key, true, nil
}

// Value returns an iterator positioned at the current field's value.
func (o *ObjectIter) Value() *Iterator {
	return o.it
}

// FindField searches forward from the iterator's current position for a
// field named key, in document order, skipping over fields along the way
// that don't match. It returns the value iterator positioned on a match,
// or ErrPathNotFound if the remainder of the object doesn't contain key.
func (o *ObjectIter) FindField(key string) (*Iterator, error) {
	for {
		k, ok, err := o.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrPathNotFound
		}
		if k == key {
			return o.Value(), nil
		}
	}
}

// FindFieldUnordered behaves like FindField, but if key isn't found
// scanning forward, wraps around and searches the fields already passed
// over once before giving up. This matches the unordered field lookup the
// original ondemand API offers for objects whose key order isn't known to
// match what the caller looks up in.
func (o *ObjectIter) FindFieldUnordered(key string) (*Iterator, error) {
	restart := o.startIdx
	v, err := o.FindField(key)
	if err == nil {
		return v, nil
	}
	if err != ErrPathNotFound {
		return nil, err
	}
	it := o.it
	it.idx = restart
	it.depth = o.elemDepth
	it.gen = it.spawnChild()
	o.gen = it.gen
	o.started = false
	o.done = false
	return o.FindField(key)
}

package simdjson

// Parse parses a single JSON document held in b and returns the resulting
// tape. An optional previously parsed result can be supplied in reuse to cut
// allocations.
func Parse(b []byte, reuse *ParsedJson, opts ...ParserOption) (*ParsedJson, error) {
	buf, err := NewBuffer(b)
	if err != nil {
		return nil, err
	}
	return parseBuffer(buf, false, reuse, opts...)
}

// ParseBuffer is identical to Parse but takes ownership of a caller supplied
// padded Buffer (see WrapPadded), avoiding a copy of the input.
func ParseBuffer(buf *Buffer, reuse *ParsedJson, opts ...ParserOption) (*ParsedJson, error) {
	return parseBuffer(buf, false, reuse, opts...)
}

// ParseND parses whitespace separated JSON documents (newline delimited
// JSON and friends) held in b and returns one tape holding every document,
// each wrapped in its own root span (see Iter.Root).
func ParseND(b []byte, reuse *ParsedJson, opts ...ParserOption) (*ParsedJson, error) {
	buf, err := NewBuffer(b)
	if err != nil {
		return nil, err
	}
	return parseBuffer(buf, true, reuse, opts...)
}

func parseBuffer(buf *Buffer, multiDoc bool, reuse *ParsedJson, opts ...ParserOption) (*ParsedJson, error) {
	var pj *internalParsedJson
	if reuse != nil && reuse.internal != nil {
		pj = reuse.internal
		pj.ParsedJson = *reuse
		pj.ParsedJson.internal = nil
	}
	if pj == nil {
		pj = &internalParsedJson{copyStrings: alwaysCopyStrings, maxDepth: defaultMaxDepth}
	}
	for _, o := range opts {
		if err := o(pj); err != nil {
			return nil, err
		}
	}
	if err := pj.parse(buf, multiDoc); err != nil {
		return nil, err
	}
	parsed := pj.ParsedJson
	parsed.internal = pj
	return &parsed, nil
}

// parse runs stage 1 and stage 2 over buf and populates pj.ParsedJson.
func (pj *internalParsedJson) parse(buf *Buffer, multiDoc bool) error {
	pj.initialize(buf.Len())

	full := buf.padded()
	n := buf.Len()

	input := full
	if pj.allowReplacementOfInvalidUTF8 {
		clean := replaceInvalidUTF8(full[:n])
		if len(clean) != n {
			cleanBuf, err := NewBuffer(clean)
			if err != nil {
				return err
			}
			input = cleanBuf.padded()
			n = cleanBuf.Len()
		}
	} else if err := validateUTF8(full, n, false); err != nil {
		return err
	}

	structurals, err := findStructuralIndices(input, n, pj.structurals[:0])
	if err != nil {
		pj.structurals = structurals
		return err
	}
	pj.structurals = structurals

	if err := pj.buildTape(input[:n], structurals, multiDoc); err != nil {
		return err
	}

	pj.Message = buf.Bytes()
	pj.isvalid = true
	return nil
}

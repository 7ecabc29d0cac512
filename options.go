package simdjson

// ParserOption is a parser option.
type ParserOption func(pj *internalParsedJson) error

// WithCopyStrings will copy strings so they no longer reference the input.
// For enhanced performance, simdjson-go can point back into the original JSON buffer for strings,
// however this can lead to issues in streaming use cases scenarios, or scenarios in which
// the underlying JSON buffer is reused. So the default behaviour is to create copies of all
// strings (not just those transformed anyway for unicode escape characters) into the separate
// Strings buffer (at the expense of using more memory and less performance).
// Default: true - strings are copied.
// The tape builder always copies strings into the Strings buffer, so
// WithCopyStrings(false) has no effect on the parse result.
func WithCopyStrings(b bool) ParserOption {
	return func(pj *internalParsedJson) error {
		pj.copyStrings = b
		return nil
	}
}

// WithMaxDepth sets the maximum container nesting depth a document may use.
// Parsing fails with ErrDepth as soon as an object or array would open past
// this depth. Default: 128.
func WithMaxDepth(depth int) ParserOption {
	return func(pj *internalParsedJson) error {
		if depth <= 0 {
			return newErr(ErrDepth, 0, "max depth must be positive")
		}
		pj.maxDepth = depth
		return nil
	}
}

// WithAllowReplacementOfInvalidUTF8 makes the parser substitute U+FFFD for
// ill-formed UTF-8 byte sequences instead of failing the parse with ErrUTF8.
// Default: false - invalid UTF-8 is a hard error.
func WithAllowReplacementOfInvalidUTF8(b bool) ParserOption {
	return func(pj *internalParsedJson) error {
		pj.allowReplacementOfInvalidUTF8 = b
		return nil
	}
}

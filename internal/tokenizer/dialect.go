package tokenizer

// Dialect is the immutable configuration that determines how a byte
// range is split into fields and rows. Constructed once and shared by
// every Tokenizer built from it.
type Dialect struct {
	Delim           byte
	Quote           byte
	EscapeBackslash bool
	EscapeDouble    bool
	NA              []string
	Comment         string
	TrimWS          bool
	SkipEmptyRows   bool
	QuotedNA        bool
	Skip            int
}

// DefaultDialect returns the comma-delimited, double-quote-escaped
// dialect most input follows: delim ',', quote '"', escape_double,
// NA marker "NA", no comment prefix, no whitespace trimming.
func DefaultDialect() Dialect {
	return Dialect{
		Delim:        ',',
		Quote:        '"',
		EscapeDouble: true,
		NA:           []string{"NA"},
	}
}

func (d Dialect) isNA(content []byte) bool {
	s := content
	if d.TrimWS {
		s = trimSpace(s)
	}
	for _, marker := range d.NA {
		if string(s) == marker {
			return true
		}
	}
	return false
}

func trimSpace(b []byte) []byte {
	start := 0
	for start < len(b) && isASCIISpace(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isASCIISpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

package numeric

// Cursor walks a byte buffer left to right, consuming a prefix at a time.
// Every Consume* method is all-or-nothing: on failure the cursor's
// position is left exactly where it started.
type Cursor struct {
	Data []byte
	Pos  int
}

// NewCursor returns a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{Data: data}
}

// Done reports whether the cursor has reached the end of its buffer.
func (c *Cursor) Done() bool {
	return c.Pos >= len(c.Data)
}

// Remaining returns the unconsumed tail of the buffer.
func (c *Cursor) Remaining() []byte {
	return c.Data[c.Pos:]
}

// Peek returns the next byte without consuming it.
func (c *Cursor) Peek() (byte, bool) {
	if c.Done() {
		return 0, false
	}
	return c.Data[c.Pos], true
}

// ConsumeByte consumes the next byte and returns it.
func (c *Cursor) ConsumeByte() (byte, bool) {
	b, ok := c.Peek()
	if !ok {
		return 0, false
	}
	c.Pos++
	return b, true
}

// ConsumeThisByte consumes the next byte only if it equals want.
func (c *Cursor) ConsumeThisByte(want byte) bool {
	b, ok := c.Peek()
	if !ok || b != want {
		return false
	}
	c.Pos++
	return true
}

// ConsumeWhitespace consumes zero or more ASCII whitespace bytes.
func (c *Cursor) ConsumeWhitespace() {
	for c.Pos < len(c.Data) && isSpace(c.Data[c.Pos]) {
		c.Pos++
	}
}

// ConsumeNonDigit consumes exactly one byte, which must not be a digit.
func (c *Cursor) ConsumeNonDigit() bool {
	b, ok := c.Peek()
	if !ok || isDigit(b) {
		return false
	}
	c.Pos++
	return true
}

// ConsumeNonDigits consumes a run of zero or more non-digit bytes.
func (c *Cursor) ConsumeNonDigits() {
	for c.Pos < len(c.Data) && !isDigit(c.Data[c.Pos]) {
		c.Pos++
	}
}

// ConsumeInteger consumes up to n digit bytes and parses them as an
// unsigned integer. A leading '+' or '-' is rejected outright. At least
// one digit is required.
func (c *Cursor) ConsumeInteger(n int) (int, bool) {
	if c.Done() {
		return 0, false
	}
	if b := c.Data[c.Pos]; b == '-' || b == '+' {
		return 0, false
	}

	end := c.Pos + n
	if end > len(c.Data) {
		end = len(c.Data)
	}

	v := 0
	i := c.Pos
	for i < end && isDigit(c.Data[i]) {
		v = v*10 + int(c.Data[i]-'0')
		i++
	}
	if i == c.Pos {
		return 0, false
	}
	c.Pos = i
	return v, true
}

// ConsumeInteger1 is ConsumeInteger with the result decremented by one,
// for fields such as month and day that are 1-indexed in the input but
// stored 0-indexed internally.
func (c *Cursor) ConsumeInteger1(n int) (int, bool) {
	v, ok := c.ConsumeInteger(n)
	if !ok {
		return 0, false
	}
	return v - 1, true
}

// ConsumeInteger1WithSpace behaves like ConsumeInteger1 but first allows a
// single leading space, which consumes one unit of the width budget n.
func (c *Cursor) ConsumeInteger1WithSpace(n int) (int, bool) {
	start := c.Pos
	if c.ConsumeThisByte(' ') {
		n--
	}
	v, ok := c.ConsumeInteger1(n)
	if !ok {
		c.Pos = start
	}
	return v, ok
}

// ConsumeDouble consumes a run of "digits [mark digits]" — no sign is
// permitted — and parses it as a float64. Used for the seconds component
// of a timestamp, which may carry a fractional part.
func (c *Cursor) ConsumeDouble(mark byte) (float64, bool) {
	if c.Done() {
		return 0, false
	}
	if b := c.Data[c.Pos]; b == '-' || b == '+' {
		return 0, false
	}

	start := c.Pos
	i := c.Pos
	intStart := i
	for i < len(c.Data) && isDigit(c.Data[i]) {
		i++
	}
	hasInt := i > intStart

	hasFrac := false
	if i < len(c.Data) && c.Data[i] == mark {
		i++
		fracStart := i
		for i < len(c.Data) && isDigit(c.Data[i]) {
			i++
		}
		hasFrac = i > fracStart
	}
	if !hasInt && !hasFrac {
		return 0, false
	}

	raw := make([]byte, i-start)
	copy(raw, c.Data[start:i])
	for j, b := range raw {
		if b == mark {
			raw[j] = '.'
		}
	}

	f, ok := parseUnsignedFloat(raw)
	if !ok {
		return 0, false
	}
	c.Pos = i
	return f, true
}

func parseUnsignedFloat(b []byte) (float64, bool) {
	return ParseDouble('.', b)
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

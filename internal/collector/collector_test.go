package collector

import (
	"testing"
	"time"

	"github.com/shapestone/shape-tabular/internal/locale"
	"github.com/shapestone/shape-tabular/internal/token"
	"github.com/shapestone/shape-tabular/internal/warnings"
)

func strTok(row, col int, s string) token.Token {
	return token.Token{Kind: token.KindString, Data: []byte(s), Row: row, Col: col}
}

func missingTok(row, col int) token.Token {
	return token.Token{Kind: token.KindMissing, Row: row, Col: col}
}

func emptyTok(row, col int) token.Token {
	return token.Token{Kind: token.KindEmpty, Row: row, Col: col}
}

func TestCharacter_SetValue(t *testing.T) {
	warn := &warnings.Buffer{}
	c := NewCharacter(warn)
	c.Resize(3)
	c.SetValue(0, strTok(0, 0, "hello"))
	c.SetValue(1, emptyTok(1, 0))
	c.SetValue(2, missingTok(2, 0))

	col := c.Finalize().(CharacterColumn)
	want := []struct {
		val   string
		valid bool
	}{
		{"hello", true},
		{"", true},
		{"", false},
	}
	for i, w := range want {
		if col.Values[i] != w.val || col.Valid[i] != w.valid {
			t.Errorf("row %d: got (%q, %v), want (%q, %v)", i, col.Values[i], col.Valid[i], w.val, w.valid)
		}
	}
}

func TestInteger_SetValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
		valid bool
	}{
		{"positive", "42", 42, true},
		{"negative", "-7", -7, true},
		{"not a number", "abc", 0, false},
		{"trailing junk", "42x", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warn := &warnings.Buffer{}
			c := NewInteger(warn)
			c.Resize(1)
			c.SetValue(0, strTok(0, 0, tt.input))
			col := c.Finalize().(IntegerColumn)
			if col.Values[0] != tt.want || col.Valid[0] != tt.valid {
				t.Errorf("got (%d, %v), want (%d, %v)", col.Values[0], col.Valid[0], tt.want, tt.valid)
			}
		})
	}
}

func TestDouble_SetValue(t *testing.T) {
	warn := &warnings.Buffer{}
	c := NewDouble(warn, '.')
	c.Resize(2)
	c.SetValue(0, strTok(0, 0, "3.14"))
	c.SetValue(1, strTok(1, 0, "-2.5e3"))
	col := c.Finalize().(DoubleColumn)

	if col.Values[0] != 3.14 || !col.Valid[0] {
		t.Errorf("row 0: got (%v, %v)", col.Values[0], col.Valid[0])
	}
	if col.Values[1] != -2500 || !col.Valid[1] {
		t.Errorf("row 1: got (%v, %v)", col.Values[1], col.Valid[1])
	}
}

func TestLogical_SetValue(t *testing.T) {
	tests := []struct {
		input string
		want  bool
		valid bool
	}{
		{"T", true, true},
		{"F", false, true},
		{"TRUE", true, true},
		{"false", false, true},
		{"1", true, true},
		{"0", false, true},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			warn := &warnings.Buffer{}
			c := NewLogical(warn)
			c.Resize(1)
			c.SetValue(0, strTok(0, 0, tt.input))
			col := c.Finalize().(LogicalColumn)
			if col.Values[0] != tt.want || col.Valid[0] != tt.valid {
				t.Errorf("got (%v, %v), want (%v, %v)", col.Values[0], col.Valid[0], tt.want, tt.valid)
			}
		})
	}
}

func TestDate_SetValue_ISO8601(t *testing.T) {
	warn := &warnings.Buffer{}
	c := NewDate(warn, locale.Default(), "")
	c.Resize(1)
	c.SetValue(0, strTok(0, 0, "2024-02-29"))
	col := c.Finalize().(DateColumn)
	if !col.Valid[0] {
		t.Fatalf("expected valid parse")
	}
	got := col.Values[0]
	if got.Year() != 2024 || got.Month() != time.February || got.Day() != 29 {
		t.Errorf("got %v", got)
	}
}

func TestDate_SetValue_RejectsInvalidCalendarDate(t *testing.T) {
	warn := &warnings.Buffer{}
	c := NewDate(warn, locale.Default(), "")
	c.Resize(1)
	c.SetValue(0, strTok(0, 0, "2023-02-29"))
	col := c.Finalize().(DateColumn)
	if col.Valid[0] {
		t.Fatalf("2023-02-29 is not a valid date (2023 is not a leap year), got %v", col.Values[0])
	}
	if warn.Count() == 0 {
		t.Errorf("expected a warning for an invalid calendar date")
	}
}

func TestDateTime_SetValue_RejectsInvalidCalendarDate(t *testing.T) {
	warn := &warnings.Buffer{}
	c := NewDateTime(warn, locale.Default(), "")
	c.Resize(1)
	c.SetValue(0, strTok(0, 0, "2023-02-29T10:00:00"))
	col := c.Finalize().(DateTimeColumn)
	if col.Valid[0] {
		t.Fatalf("2023-02-29 is not a valid date (2023 is not a leap year), got %v", col.Values[0])
	}
	if warn.Count() == 0 {
		t.Errorf("expected a warning for an invalid calendar date")
	}
}

func TestTime_SetValue_RejectsOutOfRangeHour(t *testing.T) {
	warn := &warnings.Buffer{}
	c := NewTime(warn, locale.Default(), "%H:%M:%S")
	c.Resize(1)
	c.SetValue(0, strTok(0, 0, "25:00:00"))
	col := c.Finalize().(TimeColumn)
	if col.Valid[0] {
		t.Fatalf("hour 25 is out of range, got %v", col.Values[0])
	}
	if warn.Count() == 0 {
		t.Errorf("expected a warning for an out-of-range hour")
	}
}

func TestDate_SetValue_Format(t *testing.T) {
	warn := &warnings.Buffer{}
	c := NewDate(warn, locale.Default(), "%d %b %Y")
	c.Resize(1)
	c.SetValue(0, strTok(0, 0, "3 Feb 2024"))
	col := c.Finalize().(DateColumn)
	if !col.Valid[0] {
		t.Fatalf("expected valid parse")
	}
	got := col.Values[0]
	if got.Year() != 2024 || got.Month() != time.February || got.Day() != 3 {
		t.Errorf("got %v", got)
	}
}

func TestDateTime_SetValue_ISO8601WithOffset(t *testing.T) {
	warn := &warnings.Buffer{}
	c := NewDateTime(warn, locale.Default(), "")
	c.Resize(1)
	c.SetValue(0, strTok(0, 0, "2024-02-29T10:00:00+02:00"))
	col := c.Finalize().(DateTimeColumn)
	if !col.Valid[0] {
		t.Fatalf("expected valid parse")
	}
	if col.Values[0].UTC().Hour() != 8 {
		t.Errorf("expected offset applied, got hour %d", col.Values[0].UTC().Hour())
	}
}

func TestTime_SetValue_AMPM(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"12:00:00 AM", 0},
		{"12:00:00 PM", 12 * time.Hour},
		{"01:30:00 PM", 13*time.Hour + 30*time.Minute},
		{"11:00:00 AM", 11 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			warn := &warnings.Buffer{}
			c := NewTime(warn, locale.Default(), "%H:%M:%S %p")
			c.Resize(1)
			c.SetValue(0, strTok(0, 0, tt.input))
			col := c.Finalize().(TimeColumn)
			if !col.Valid[0] {
				t.Fatalf("expected valid parse")
			}
			if col.Values[0] != tt.want {
				t.Errorf("got %v, want %v", col.Values[0], tt.want)
			}
		})
	}
}

func TestFactor_DiscoveredLevels(t *testing.T) {
	warn := &warnings.Buffer{}
	c := NewFactor(warn, nil)
	c.Resize(3)
	c.SetValue(0, strTok(0, 0, "low"))
	c.SetValue(1, strTok(1, 0, "high"))
	c.SetValue(2, strTok(2, 0, "low"))
	col := c.Finalize().(FactorColumn)

	if len(col.Levels) != 2 || col.Levels[0] != "low" || col.Levels[1] != "high" {
		t.Fatalf("got levels %v", col.Levels)
	}
	if col.Codes[0] != 0 || col.Codes[1] != 1 || col.Codes[2] != 0 {
		t.Errorf("got codes %v", col.Codes)
	}
}

func TestFactor_FixedLevelsRejectsUnknown(t *testing.T) {
	warn := &warnings.Buffer{}
	c := NewFactor(warn, []string{"low", "high"})
	c.Resize(1)
	c.SetValue(0, strTok(0, 0, "medium"))
	col := c.Finalize().(FactorColumn)

	if col.Valid[0] {
		t.Fatalf("expected unknown level to be invalid")
	}
	if warn.Count() != 1 {
		t.Errorf("expected one warning, got %d", warn.Count())
	}
}

func TestSkip_DiscardsEverything(t *testing.T) {
	c := NewSkip()
	if !c.Skip() {
		t.Fatalf("expected Skip() to report true")
	}
	c.Resize(10)
	c.SetValue(0, strTok(0, 0, "anything"))
	if c.Finalize() != nil {
		t.Errorf("expected Finalize to return nil")
	}
}

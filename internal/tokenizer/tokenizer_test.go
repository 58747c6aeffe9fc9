package tokenizer

import (
	"testing"

	"github.com/shapestone/shape-tabular/internal/source"
	"github.com/shapestone/shape-tabular/internal/token"
	"github.com/shapestone/shape-tabular/internal/warnings"
)

type wantTok struct {
	kind token.Kind
	data string
	row  int
	col  int
}

func collect(t *testing.T, tz *Tokenizer) []wantTok {
	t.Helper()
	var got []wantTok
	for {
		tok := tz.Next()
		got = append(got, wantTok{tok.Kind, string(tok.Bytes()), tok.Row, tok.Col})
		if tok.Kind == token.KindEOF {
			break
		}
	}
	return got
}

func newTokenizer(t *testing.T, input string, dialect Dialect) *Tokenizer {
	t.Helper()
	tz, err := New(source.NewString(input), dialect, warnings.New())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tz
}

func TestNext_BasicScenario(t *testing.T) {
	input := "a,b,c\n1,2,3\n\"x,y\",z,\n"
	tz := newTokenizer(t, input, DefaultDialect())
	got := collect(t, tz)

	want := []wantTok{
		{token.KindString, "a", 0, 0},
		{token.KindString, "b", 0, 1},
		{token.KindString, "c", 0, 2},
		{token.KindString, "1", 1, 0},
		{token.KindString, "2", 1, 1},
		{token.KindString, "3", 1, 2},
		{token.KindString, "x,y", 2, 0},
		{token.KindString, "z", 2, 1},
		{token.KindEmpty, "", 2, 2},
		{token.KindEOF, "", 3, 0},
	}
	assertTokens(t, got, want)
}

func TestNext_EscapedDoubleQuote(t *testing.T) {
	input := `"he said ""hi"""`
	tz := newTokenizer(t, input, DefaultDialect())
	got := collect(t, tz)

	want := []wantTok{
		{token.KindString, `he said "hi"`, 0, 0},
		{token.KindEOF, "", 0, 0},
	}
	assertTokens(t, got, want)
}

func TestNext_BackslashEscape(t *testing.T) {
	d := DefaultDialect()
	d.EscapeBackslash = true
	d.EscapeDouble = false
	input := `"a\nb\\c\td"`
	tz := newTokenizer(t, input, d)
	got := collect(t, tz)

	if got[0].data != "a\nb\\c\td" {
		t.Errorf("got %q", got[0].data)
	}
}

func TestNext_MissingMarker(t *testing.T) {
	d := DefaultDialect()
	tz := newTokenizer(t, "a,NA,c\n", d)
	got := collect(t, tz)

	want := []wantTok{
		{token.KindString, "a", 0, 0},
		{token.KindMissing, "", 0, 1},
		{token.KindString, "c", 0, 2},
		{token.KindEOF, "", 1, 0},
	}
	assertTokens(t, got, want)
}

func TestNext_EmptyUnquotedField(t *testing.T) {
	tz := newTokenizer(t, "a,,c\n", DefaultDialect())
	got := collect(t, tz)

	if got[1].kind != token.KindEmpty {
		t.Errorf("got kind %v, want Empty", got[1].kind)
	}
}

func TestNext_CommentLine(t *testing.T) {
	d := DefaultDialect()
	d.Comment = "#"
	tz := newTokenizer(t, "# a comment\na,b\n", d)
	got := collect(t, tz)

	want := []wantTok{
		{token.KindString, "a", 0, 0},
		{token.KindString, "b", 0, 1},
		{token.KindEOF, "", 1, 0},
	}
	assertTokens(t, got, want)
}

func TestNext_SkipEmptyRows(t *testing.T) {
	d := DefaultDialect()
	d.SkipEmptyRows = true
	tz := newTokenizer(t, "a,b\n\na,b\n", d)
	got := collect(t, tz)

	var rows []int
	for _, g := range got {
		if g.kind != token.KindEOF {
			rows = append(rows, g.row)
		}
	}
	for _, r := range rows {
		if r == 1 {
			t.Errorf("expected blank row 1 to be skipped, rows = %v", rows)
		}
	}
}

func TestNext_CRLF(t *testing.T) {
	tz := newTokenizer(t, "a,b\r\nc,d\r\n", DefaultDialect())
	got := collect(t, tz)

	want := []wantTok{
		{token.KindString, "a", 0, 0},
		{token.KindString, "b", 0, 1},
		{token.KindString, "c", 1, 0},
		{token.KindString, "d", 1, 1},
		{token.KindEOF, "", 2, 0},
	}
	assertTokens(t, got, want)
}

func TestNext_QuotedEmbeddedNewlineDoesNotAdvanceRow(t *testing.T) {
	tz := newTokenizer(t, "\"line1\nline2\",b\n", DefaultDialect())
	got := collect(t, tz)

	if got[0].row != 0 || got[1].row != 0 {
		t.Errorf("got rows %d, %d, want 0, 0", got[0].row, got[1].row)
	}
	if got[0].data != "line1\nline2" {
		t.Errorf("got %q", got[0].data)
	}
}

func TestNext_UnterminatedQuoteAtEOF(t *testing.T) {
	warn := warnings.New()
	tz, err := New(source.NewString(`"unterminated`), DefaultDialect(), warn)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	tok := tz.Next()
	if tok.Kind != token.KindString || string(tok.Bytes()) != "unterminated" {
		t.Errorf("got %v %q", tok.Kind, tok.Bytes())
	}
	if warn.Count() != 1 {
		t.Errorf("expected one warning, got %d", warn.Count())
	}
}

func TestNext_CustomDelimiter(t *testing.T) {
	d := DefaultDialect()
	d.Delim = '\t'
	tz := newTokenizer(t, "a\tb\tc\n", d)
	got := collect(t, tz)

	want := []wantTok{
		{token.KindString, "a", 0, 0},
		{token.KindString, "b", 0, 1},
		{token.KindString, "c", 0, 2},
		{token.KindEOF, "", 1, 0},
	}
	assertTokens(t, got, want)
}

func TestNext_SkipHeaderLines(t *testing.T) {
	d := DefaultDialect()
	d.Skip = 2
	tz := newTokenizer(t, "meta line 1\nmeta line 2\na,b\n", d)
	got := collect(t, tz)

	want := []wantTok{
		{token.KindString, "a", 0, 0},
		{token.KindString, "b", 0, 1},
		{token.KindEOF, "", 1, 0},
	}
	assertTokens(t, got, want)
}

func assertTokens(t *testing.T, got, want []wantTok) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d\ngot:  %+v\nwant: %+v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

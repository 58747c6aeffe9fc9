package tokenizer

import (
	"testing"

	"github.com/shapestone/shape-tabular/internal/source"
	"github.com/shapestone/shape-tabular/internal/token"
)

func TestLineTokenizer_Next(t *testing.T) {
	tz := NewLine(source.NewString("one\ntwo\r\nthree"))

	var lines []string
	for {
		tok := tz.Next()
		if tok.Kind == token.KindEOF {
			break
		}
		lines = append(lines, string(tok.Bytes()))
	}

	want := []string{"one", "two", "three"}
	if len(lines) != len(want) {
		t.Fatalf("got %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestLineTokenizer_EmptyInput(t *testing.T) {
	tz := NewLine(source.NewString(""))
	tok := tz.Next()
	if tok.Kind != token.KindEOF {
		t.Errorf("got %v, want EOF", tok.Kind)
	}
}

package source

import "testing"

func TestStripBOM(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"with bom", []byte("\xEF\xBB\xBFhello"), "hello"},
		{"without bom", []byte("hello"), "hello"},
		{"empty", []byte{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.input)
			s.StripBOM()
			if string(s.Data) != tt.want {
				t.Errorf("got %q, want %q", s.Data, tt.want)
			}
		})
	}
}

func TestStripBOM_Idempotent(t *testing.T) {
	s := New([]byte("\xEF\xBB\xBFhello"))
	s.StripBOM()
	s.StripBOM()
	if string(s.Data) != "hello" {
		t.Errorf("got %q", s.Data)
	}
}

func TestSkipLines(t *testing.T) {
	s := NewString("skip1\nskip2\na,b,c\n")
	if err := s.SkipLines('"', "", 2, false, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(s.Data) != "a,b,c\n" {
		t.Errorf("got %q", s.Data)
	}
}

func TestSkipLines_QuotedNewlineNotALineBoundary(t *testing.T) {
	s := NewString("\"line\nstill one line\"\nrest\n")
	if err := s.SkipLines('"', "", 1, false, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(s.Data) != "rest\n" {
		t.Errorf("got %q", s.Data)
	}
}

func TestSkipLines_BlankAndComment(t *testing.T) {
	s := NewString("\n# comment\ndata\n")
	if err := s.SkipLines('"', "#", 0, true, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(s.Data) != "data\n" {
		t.Errorf("got %q", s.Data)
	}
}

func TestSkipLines_UnterminatedQuote(t *testing.T) {
	s := NewString("\"unterminated")
	if err := s.SkipLines('"', "", 1, false, false); err == nil {
		t.Fatalf("expected error")
	}
}

package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.csv")

	content := []byte("a,b,c\nd,e,f\ng,h,i")
	if err := os.WriteFile(testFile, content, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	src, closeFn, err := OpenFile(testFile)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer closeFn()

	if string(src.Data) != string(content) {
		t.Errorf("OpenFile() data = %q, want %q", src.Data, content)
	}
}

func TestOpenFile_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "empty.csv")

	if err := os.WriteFile(testFile, []byte{}, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	src, closeFn, err := OpenFile(testFile)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer closeFn()

	if len(src.Data) != 0 {
		t.Errorf("OpenFile() returned %d bytes for empty file, want 0", len(src.Data))
	}
}

func TestOpenFile_NonexistentFile(t *testing.T) {
	_, _, err := OpenFile("/nonexistent/file.csv")
	if err == nil {
		t.Error("OpenFile() should return error for nonexistent file")
	}
}

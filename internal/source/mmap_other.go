//go:build !unix

package source

import "os"

// mmapFile falls back to a full read on platforms without mmap support.
// The returned closer is a no-op, kept for API symmetry with mmap_unix.go.
func mmapFile(filename string) ([]byte, func() error, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}

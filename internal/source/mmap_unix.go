//go:build unix

package source

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mmapFile memory-maps a file for reading. The returned closer must be
// called exactly once, after which the returned slice is invalid.
func mmapFile(filename string) ([]byte, func() error, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("stat: %w", err)
	}

	size := stat.Size()
	if size == 0 {
		return []byte{}, f.Close, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("mmap: %w", err)
	}

	closed := false
	closer := func() error {
		if closed {
			return nil
		}
		closed = true
		if err := unix.Munmap(data); err != nil {
			f.Close()
			return fmt.Errorf("munmap: %w", err)
		}
		return f.Close()
	}
	return data, closer, nil
}

package resourceprobe

import (
	"io/fs"
	"os"
)

// File is the subset of *os.File the prober needs.
type File interface {
	Stat() (fs.FileInfo, error)
	Close() error
}

// Opener abstracts read-only file opening for testability.
type Opener interface {
	Open(name string) (File, error)
}

// RealOpener implements Opener using the actual file system.
type RealOpener struct{}

// Open opens the named file for reading.
func (r *RealOpener) Open(name string) (File, error) {
	f, err := os.Open(name) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, err
	}
	return f, nil
}

package loader

import (
	"io"
	"os"
	"path/filepath"
)

// A Dir loads signature files relative to a base directory.
type Dir struct {
	base string
}

// NewDir returns a Dir loader rooted at base.
func NewDir(base string) Dir {
	return Dir{base: base}
}

// LoadFile opens fileName under the base directory.
func (d Dir) LoadFile(fileName string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(d.base, fileName))
}

package loader_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packetsight/helloprint/loader"
)

func TestDirLoadFile(t *testing.T) {
	base := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(base, "ssl.sigs"), []byte("# empty\n"), 0644))

	d := loader.NewDir(base)
	file, err := d.LoadFile("ssl.sigs")
	assert.NoError(t, err)
	defer file.Close()

	data, err := io.ReadAll(file)
	assert.NoError(t, err)
	assert.Equal(t, "# empty\n", string(data))
}

func TestDirLoadFileMissing(t *testing.T) {
	d := loader.NewDir(t.TempDir())
	_, err := d.LoadFile("nope.sigs")
	assert.Error(t, err)
}

package fsutil

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	for _, name := range []string{"b.hcl", "a.hcl", "notes.txt", filepath.Join("sub", "c.hcl")} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("#"), 0o644))
	}

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "sub", "c.hcl"),
	}, files)
}

func TestFindFilesInFS(t *testing.T) {
	fsys := fstest.MapFS{
		"nodesets/standard.hcl": {Data: []byte("#")},
		"nodesets/extra.yaml":   {Data: []byte("#")},
		"other/skip.hcl":        {Data: []byte("#")},
	}

	files, err := FindFilesInFS(fsys, "nodesets", ".hcl", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"nodesets/standard.hcl"}, files)
}

func TestFindFilesByExtension_PanicsOnEmptyExtension(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir(), "") })
}

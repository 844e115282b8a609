package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/specialistvlad/originals/internal/fsutil"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, name := range []string{"b/web.hcl", "a.hcl", "notes.txt", "b/c/deep.hcl"} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("# x"), 0644))
	}

	files, err := fsutil.FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "b/c/deep.hcl"),
		filepath.Join(root, "b/web.hcl"),
	}, files)

	single, err := fsutil.FindFilesByExtension(filepath.Join(root, "a.hcl"), ".hcl")
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "a.hcl")}, single)

	_, err = fsutil.FindFilesByExtension(filepath.Join(root, "missing"), ".hcl")
	require.Error(t, err)

	require.Panics(t, func() { _, _ = fsutil.FindFilesByExtension(root, "") })
}

func TestFindFilesByExtensionFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"intrinsics/ecmascript.hcl": {Data: []byte("")},
		"intrinsics/README.md":      {Data: []byte("")},
		"web.hcl":                   {Data: []byte("")},
	}

	files, err := fsutil.FindFilesByExtensionFS(fsys, ".", ".hcl")
	require.NoError(t, err)
	require.Equal(t, []string{"intrinsics/ecmascript.hcl", "web.hcl"}, files)
}

package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestListFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "aaa")
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "bb")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0755))

	files, err := ListFiles(root)
	require.NoError(t, err)
	require.Len(t, files, 2)

	sizes := make(map[string]int64)
	for _, file := range files {
		rel, err := filepath.Rel(root, file.Path)
		require.NoError(t, err)
		sizes[filepath.ToSlash(rel)] = file.Size
	}
	assert.Equal(t, map[string]int64{"a.txt": 3, "sub/b.txt": 2}, sizes)
}

func TestListFilesMissingRoot(t *testing.T) {
	_, err := ListFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("content"), 0640))

	dst := filepath.Join(dir, "deep", "nested", "dst.txt")
	require.NoError(t, CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
}

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	writeFile(t, filepath.Join(src, "a.txt"), "aaa")
	writeFile(t, filepath.Join(src, "sub", "b.txt"), "bb")
	writeFile(t, filepath.Join(src, "cback.collect"), "")

	count, err := CopyTree(src, dst, func(name string) bool { return name == "cback.collect" })
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.FileExists(t, filepath.Join(dst, "a.txt"))
	assert.FileExists(t, filepath.Join(dst, "sub", "b.txt"))
	assert.NoFileExists(t, filepath.Join(dst, "cback.collect"))
}

func TestCopyTreeNilSkip(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	writeFile(t, filepath.Join(src, "a.txt"), "aaa")

	count, err := CopyTree(src, dst, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNormalizedName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"", ""},
		{"/", "_"},
		{"/home/user/photos", "home-user-photos"},
		{"home/user/photos", "home-user-photos"},
		{".hidden", "_hidden"},
		{"/data/my photos", "data-my_photos"},
		{"/data/a:b", "data-a_b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizedName(tt.path), tt.path)
	}
}

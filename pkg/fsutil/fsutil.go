// Package fsutil holds the small filesystem helpers shared by the
// backup actions: file enumeration and copying.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileInfo is a (path, size) pair for one regular file.
type FileInfo struct {
	Path string
	Size int64
}

// ListFiles walks root and returns every regular file with its size.
// Directories and irregular files (links, sockets) are skipped.
func ListFiles(root string) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			files = append(files, FileInfo{Path: path, Size: info.Size()})
		}
		return nil
	})
	return files, err
}

// CopyFile copies a single file, creating the target directory as
// needed and preserving the source's permission bits.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return out.Close()
}

// CopyTree copies all regular files under src into dst, keeping the
// relative layout. Files whose base name matches skip are left out.
func CopyTree(src, dst string, skip func(name string) bool) (int, error) {
	files, err := ListFiles(src)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, file := range files {
		if skip != nil && skip(filepath.Base(file.Path)) {
			continue
		}
		rel, err := filepath.Rel(src, file.Path)
		if err != nil {
			return count, err
		}
		if err := CopyFile(file.Path, filepath.Join(dst, rel)); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Package archive builds the tar.gz files the collect action drops
// into the collect directory.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// TarGz writes the given files into a gzipped tarball at dst. Entry
// names are relative to root so the archive unpacks into the same
// layout the collect directory had.
func TarGz(dst, root string, files []string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	gzw := gzip.NewWriter(out)
	tw := tar.NewWriter(gzw)

	for _, path := range files {
		if err := addFile(tw, root, path); err != nil {
			tw.Close()
			gzw.Close()
			out.Close()
			os.Remove(dst)
			return err
		}
	}

	if err := tw.Close(); err != nil {
		gzw.Close()
		out.Close()
		return err
	}
	if err := gzw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func addFile(tw *tar.Writer, root, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return nil
	}
	name, err := filepath.Rel(root, path)
	if err != nil {
		name = filepath.Base(path)
	}
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = filepath.ToSlash(name)
	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("archiving %s: %w", path, err)
	}
	return nil
}

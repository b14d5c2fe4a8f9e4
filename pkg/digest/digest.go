// Package digest computes content fingerprints for incremental change
// detection. Change detection is by content hash, not mtime or size:
// a file only counts as changed when its bytes changed.
package digest

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// readSize is the read chunk used while hashing. Around 4 kB gives the
// best throughput for hashing large files from disk.
const readSize = 4096

// File returns the hex-encoded SHA-1 digest of the file's content.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := sha1.New()
	buffer := make([]byte, readSize)
	for {
		n, err := f.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Relative normalizes path into the record key used by the incremental
// store: the slash-separated path relative to root, or the path itself
// when it does not live under root.
func Relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

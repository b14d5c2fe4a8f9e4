package fsutil

import "regexp"

var (
	leadingSlash = regexp.MustCompile(`^[\\/]`)
	leadingDot   = regexp.MustCompile(`^\.`)
	separators   = regexp.MustCompile(`[\\/]`)
	unsafe       = regexp.MustCompile(`[\s:]`)
)

// NormalizedName turns a path into a string usable as a file name:
// the leading separator is dropped, a leading dot becomes '_' so the
// result is not hidden, remaining separators become '-' and whitespace
// or colons become '_'. The transformation is one-way.
func NormalizedName(path string) string {
	if path == "" {
		return path
	}
	if path == "/" || path == `\` {
		return "_"
	}
	name := leadingSlash.ReplaceAllString(path, "")
	name = leadingDot.ReplaceAllString(name, "_")
	name = separators.ReplaceAllString(name, "-")
	return unsafe.ReplaceAllString(name, "_")
}

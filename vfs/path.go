package vfs

import (
	"fmt"
	"path"
	"strings"
)

// Clean normalizes a resource path to its canonical form: forward
// slashes, no leading slash, no ".", no empty segments. Relative
// segments collapse lexically; a path that would climb above the
// namespace root is rejected with ErrInvalidPath. The empty string and
// "/" normalize to "", the namespace root.
//
// Two resource paths address the same file exactly when their cleaned
// forms are equal. Normalization is purely lexical and never touches a
// mount, so untrusted paths can be validated before any I/O.
func Clean(name string) (string, error) {
	if strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: %q contains NUL", ErrInvalidPath, name)
	}
	// Accept Windows-style separators from config files and user input.
	p := strings.ReplaceAll(name, `\`, "/")
	// A leading slash addresses the namespace root, not the host root.
	p = strings.TrimLeft(p, "/")
	p = path.Clean(p)
	// Cleaning a relative path keeps the ".." segments that climb above
	// its origin, which is exactly the escape we must refuse.
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("%w: %q escapes the resource root", ErrInvalidPath, name)
	}
	if p == "." {
		p = ""
	}
	return p, nil
}

// cleanFile is Clean plus a rejection of the bare root, for operations
// that need a file name rather than a directory.
func cleanFile(name string) (string, error) {
	p, err := Clean(name)
	if err != nil {
		return "", err
	}
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	return p, nil
}

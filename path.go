package fsops

import (
	"path/filepath"
	"strings"
)

// ResolvePath validates and normalizes a raw path into the root-relative
// form the drivers operate on. Resolution is purely syntactic: no existence
// check is performed here.
//
// It fails with ErrInvalidPath when raw is empty, contains a NUL byte, or
// escapes the backend root after cleaning ("../" traversal). Every driver
// runs its arguments through ResolvePath before touching the backend, so a
// malformed path never reaches the OS layer.
func ResolvePath(raw string) (string, error) {
	if raw == "" {
		return "", &PathError{Op: "resolve", Path: raw, Err: ErrInvalidPath}
	}
	if strings.ContainsRune(raw, '\x00') {
		return "", &PathError{Op: "resolve", Path: raw, Err: ErrInvalidPath}
	}

	p := normalizePath(raw)
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", &PathError{Op: "resolve", Path: raw, Err: ErrInvalidPath}
	}

	return p, nil
}

// normalizePath converts a path to the canonical root-relative form:
// forward slashes, no leading slash, "" for the root itself.
func normalizePath(path string) string {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "/")
	if path == "" || path == "." {
		return ""
	}
	return filepath.ToSlash(filepath.Clean(path))
}

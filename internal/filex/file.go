// Package filex contains filesystem helpers for the local image root.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned when a relative path escapes its root.
var ErrOutsideRoot = errors.New("path escapes root directory")

// EnsureDir creates root/sub (and parents) if missing and returns its
// absolute path.
func EnsureDir(root, sub string) (string, error) {
	dir, err := SafeJoin(root, sub)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// SafeJoin joins a slash-separated relative path onto root, refusing
// absolute paths and any result outside root.
func SafeJoin(root, rel string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", root, err)
	}

	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") {
		return "", ErrOutsideRoot
	}

	joined := filepath.Join(absRoot, filepath.FromSlash(rel))
	if joined != absRoot && !strings.HasPrefix(joined, absRoot+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}

	return joined, nil
}

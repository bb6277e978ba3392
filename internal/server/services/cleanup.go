package services

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"strings"
)

// ObjectRemover deletes a stored image by its relative path.
type ObjectRemover interface {
	Delete(ctx context.Context, key string) error
}

// CleanupResult reports the best-effort removal of an image that belonged
// to a deleted record. A failed cleanup never fails the delete. An image
// that was already gone is neither Removed nor an Err.
type CleanupResult struct {
	Path    string
	Removed bool
	Err     error
}

// Attempted reports whether a removal was tried.
func (r CleanupResult) Attempted() bool { return r.Removed || r.Err != nil }

// removeUnder deletes p only when it lies inside the category directory.
func removeUnder(ctx context.Context, store ObjectRemover, category, p string) CleanupResult {
	res := CleanupResult{Path: p}
	if store == nil || p == "" {
		return res
	}

	key := path.Clean(strings.TrimPrefix(p, "/"))
	if !strings.HasPrefix(key, category+"/") {
		return res
	}

	err := store.Delete(ctx, key)
	switch {
	case err == nil:
		res.Removed = true
	case errors.Is(err, fs.ErrNotExist):
	default:
		res.Err = err
	}
	return res
}

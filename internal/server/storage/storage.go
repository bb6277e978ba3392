// Package storage keeps processed images under slash-separated keys such
// as "gallery/bear-1712345678.jpg", either on local disk or in an S3
// bucket.
package storage

import (
	"context"
	"io"
)

type ObjectStore interface {
	// Put writes r under key, replacing any existing object.
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	// Delete removes key. When the backend can tell the key was absent the
	// error matches fs.ErrNotExist; S3 deletes are idempotent and cannot.
	Delete(ctx context.Context, key string) error
}

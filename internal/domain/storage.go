package domain

import (
	"context"
	"io"
)

// StoredFile is the opaque reference returned by FileStorage.
type StoredFile struct {
	Key  string
	Size int64
}

// FileStorage keeps uploaded files. Keys are generated by the store and
// keep the original base name as a suffix.
type FileStorage interface {
	Save(ctx context.Context, r io.Reader, originalName string) (StoredFile, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

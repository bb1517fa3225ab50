package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"
)

// LocalStorage keeps files in a single directory on disk.
type LocalStorage struct {
	dir     string
	maxSize int64
}

// NewLocalStorage creates dir if needed. maxSize <= 0 disables the size cap.
func NewLocalStorage(dir string, maxSize int64) (*LocalStorage, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &LocalStorage{dir: abs, maxSize: maxSize}, nil
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save streams r into a temp file and renames it into place, so readers
// never observe a partial upload. The temp file is removed on any failure.
func (s *LocalStorage) Save(ctx context.Context, r io.Reader, originalName string) (domain.StoredFile, error) {
	key := NewKey(originalName)

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return domain.StoredFile{}, fmt.Errorf("storage: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	src := r
	if s.maxSize > 0 {
		src = io.LimitReader(r, s.maxSize+1)
	}
	n, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: src})
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return domain.StoredFile{}, fmt.Errorf("storage: write file: %w", err)
	}
	if s.maxSize > 0 && n > s.maxSize {
		return domain.StoredFile{}, domain.ErrFileTooLarge
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, key)); err != nil {
		return domain.StoredFile{}, fmt.Errorf("storage: commit file: %w", err)
	}
	committed = true
	return domain.StoredFile{Key: key, Size: n}, nil
}

func (s *LocalStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.dir, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.dir, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ctxReader stops a copy once the request context is cancelled.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

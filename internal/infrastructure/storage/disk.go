package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/eventflow/internal/domain"
)

// DiskStorage writes uploaded images under a local directory that the HTTP
// layer serves back at /uploads. It is the default image backend.
type DiskStorage struct {
	dir string
}

func NewDiskStorage(dir string) (*DiskStorage, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStorage{dir: dir}, nil
}

func (d *DiskStorage) Dir() string { return d.dir }

// Save stores the stream under a fresh random name (the client-supplied name
// only contributes its extension) and returns the stored file name.
func (d *DiskStorage) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stored := uuid.NewString() + safeExt(name)
	path := filepath.Join(d.dir, stored)

	f, err := os.Create(path)
	if err != nil {
		return "", domain.ErrStorageFailed(fmt.Errorf("create %s: %w", path, err))
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", domain.ErrStorageFailed(fmt.Errorf("write %s: %w", path, err))
	}
	return stored, nil
}

// safeExt keeps a short, lowercase extension and drops anything suspicious.
func safeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if ext == "" || len(ext) > 8 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}

package infra

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
	"tabi/pkg/utils"
)

// DiskStore keeps one file per key under a base directory.
type DiskStore struct {
	d *diskv.Diskv
}

func flatTransform(string) []string { return []string{} }

func NewDiskStore(basePath string) (*DiskStore, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty store path", utils.ErrUnsupportedConfig)
	}
	tmp := filepath.Join(basePath, ".tmp")
	if err := os.MkdirAll(tmp, 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	return &DiskStore{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    flatTransform,
		TempDir:      tmp, // write-then-rename
		CacheSizeMax: 0,   // serve and the one-shot commands share the directory
	})}, nil
}

func (s *DiskStore) Get(_ context.Context, key string) ([]byte, error) {
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, utils.ErrKeyNotFound
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrStoreFailure, err)
	}
	return val, nil
}

func (s *DiskStore) Set(_ context.Context, key string, value []byte) error {
	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStoreFailure, err)
	}
	return nil
}

func (s *DiskStore) Delete(_ context.Context, key string) error {
	if err := s.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", utils.ErrStoreFailure, err)
	}
	return nil
}

func (s *DiskStore) Close() error { return nil }

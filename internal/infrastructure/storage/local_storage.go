package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/config"
)

var ErrInvalidKey = errors.New("invalid storage key")

// LocalStorage keeps images on the local filesystem, one directory per acquisition.
type LocalStorage struct {
	root      string
	publicURL string
}

func NewLocalStorage(cfg config.StorageConfig) (*LocalStorage, error) {
	root, err := filepath.Abs(cfg.LocalDir)
	if err != nil {
		return nil, fmt.Errorf("resolving storage dir: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}

	return &LocalStorage{
		root:      root,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

func (s *LocalStorage) Root() string {
	return s.root
}

func (s *LocalStorage) path(key string) (string, error) {
	if !filepath.IsLocal(filepath.FromSlash(key)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

func (s *LocalStorage) Upload(_ context.Context, key string, reader io.Reader, _ string, _ int64) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return fmt.Errorf("writing file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("moving file into place: %w", err)
	}
	return nil
}

func (s *LocalStorage) Download(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

func (s *LocalStorage) GetURL(key string) string {
	return s.publicURL + "/" + key
}

// GetSignedURL returns the public URL; files served from disk are not signed.
func (s *LocalStorage) GetSignedURL(key string, _ time.Duration) (string, error) {
	return s.GetURL(key), nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting file: %w", err)
	}

	// drop the acquisition directory once it is empty
	dir := filepath.Dir(p)
	if dir != s.root {
		if entries, err := os.ReadDir(dir); err == nil && len(entries) == 0 {
			_ = os.Remove(dir)
		}
	}
	return nil
}

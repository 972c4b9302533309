package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type LocalStore struct {
	dir       string
	publicDir string
}

// NewLocalStore writes into dir; files are served under publicPath
// (for example "/public/img/guides/").
func NewLocalStore(dir, publicPath string) *LocalStore {
	return &LocalStore{
		dir:       dir,
		publicDir: "/" + strings.Trim(publicPath, "/") + "/",
	}
}

func (s *LocalStore) Save(_ context.Context, img Image) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := filepath.Base(img.Name)
	if err := os.WriteFile(filepath.Join(s.dir, name), img.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return strings.TrimSuffix(img.BaseURL, "/") + s.publicDir + name, nil
}

func (s *LocalStore) Delete(_ context.Context, url string) error {
	i := strings.Index(url, s.publicDir)
	if i < 0 {
		return nil
	}

	name := path.Base(url[i+len(s.publicDir):])
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

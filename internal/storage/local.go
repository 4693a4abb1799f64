// Package storage persists uploaded files on local disk and hands back
// public URLs. The upload directory is served statically by the server.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Save writes the content under a random name, keeping the original
// extension, and returns the public URL.
func (s *LocalStorage) Save(filename string, r io.Reader) (string, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.baseURL + "/" + name, nil
}

// Dir returns the on-disk directory, for static serving.
func (s *LocalStorage) Dir() string { return s.dir }

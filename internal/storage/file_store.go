package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore persists uploaded PDF attachments on disk. Stored names are
// UUID-prefixed so uploads never collide or overwrite each other.
type FileStore struct {
	dir string
}

// NewFileStore creates the upload directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// SavePDF writes the upload to disk and returns the stored file name.
// Only the base of the client-supplied name is kept.
func (s *FileStore) SavePDF(src io.Reader, originalName string) (string, error) {
	name := filepath.Base(originalName)
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return "", fmt.Errorf("only PDF files are accepted")
	}

	stored := uuid.New().String() + "_" + name
	dst, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write file: %w", err)
	}
	return stored, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *FileStore) Remove(stored string) error {
	if stored == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(stored)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

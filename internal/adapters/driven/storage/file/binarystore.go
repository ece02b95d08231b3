package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
)

// Ensure BinaryStore implements the interface.
var _ driven.BinaryStore = (*BinaryStore)(nil)

// BinaryStore keeps binaries as files in a directory.
type BinaryStore struct {
	fs  afero.Fs
	dir string
}

// NewBinaryStore creates a store rooted at dir on the OS filesystem.
func NewBinaryStore(dir string) (*BinaryStore, error) {
	return NewBinaryStoreFs(afero.NewOsFs(), dir)
}

// NewBinaryStoreFs creates a store rooted at dir on fs.
func NewBinaryStoreFs(fs afero.Fs, dir string) (*BinaryStore, error) {
	if err := fs.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create binary directory: %w", err)
	}
	return &BinaryStore{fs: fs, dir: dir}, nil
}

// Dir returns the store directory.
func (s *BinaryStore) Dir() string {
	return s.dir
}

// Path returns the file path of a stored binary, or "" for an invalid ID.
func (s *BinaryStore) Path(id string) string {
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return filepath.Join(s.dir, id)
}

// Get returns the bytes of a stored binary.
func (s *BinaryStore) Get(_ context.Context, id string) ([]byte, error) {
	path := s.Path(id)
	if path == "" {
		return nil, domain.ErrNotFound
	}

	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read binary %s: %w", id, err)
	}
	return data, nil
}

// Prepare writes data under a new ID.
func (s *BinaryStore) Prepare(_ context.Context, data []byte, fileName string) (domain.BinaryData, error) {
	id := uuid.New().String()
	if err := afero.WriteFile(s.fs, filepath.Join(s.dir, id), data, 0600); err != nil {
		return domain.BinaryData{}, fmt.Errorf("write binary: %w", err)
	}

	return domain.BinaryData{
		ID:       id,
		FileName: fileName,
		MimeType: domain.DetectMimeType(data, fileName),
		FileSize: int64(len(data)),
	}, nil
}

// Remove deletes a stored binary. Unknown IDs are ignored.
func (s *BinaryStore) Remove(_ context.Context, id string) error {
	path := s.Path(id)
	if path == "" {
		return nil
	}
	if err := s.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove binary %s: %w", id, err)
	}
	return nil
}

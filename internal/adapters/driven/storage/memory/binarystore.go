package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
)

// Ensure BinaryStore implements the interface.
var _ driven.BinaryStore = (*BinaryStore)(nil)

// BinaryStore is an in-memory implementation of driven.BinaryStore.
// Used by the MCP server, where binaries only live for one call.
type BinaryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewBinaryStore creates a new in-memory binary store.
func NewBinaryStore() *BinaryStore {
	return &BinaryStore{
		data: make(map[string][]byte),
	}
}

// Get returns the bytes of a stored binary.
func (s *BinaryStore) Get(_ context.Context, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

// Prepare stores a copy of data under a new ID.
func (s *BinaryStore) Prepare(_ context.Context, data []byte, fileName string) (domain.BinaryData, error) {
	id := uuid.New().String()

	s.mu.Lock()
	s.data[id] = append([]byte(nil), data...)
	s.mu.Unlock()

	return domain.BinaryData{
		ID:       id,
		FileName: fileName,
		MimeType: domain.DetectMimeType(data, fileName),
		FileSize: int64(len(data)),
	}, nil
}

// Put stores data under a caller-chosen ID, replacing any previous value.
func (s *BinaryStore) Put(id string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = append([]byte(nil), data...)
}

// Delete removes a stored binary.
func (s *BinaryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}

// Len returns the number of stored binaries.
func (s *BinaryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
)

// mockRequester serves canned bodies keyed by URL and records every call.
type mockRequester struct {
	mu        sync.Mutex
	responses map[string][]byte
	errs      map[string]error
	calls     []domain.RequestSpec
}

var _ driven.Requester = (*mockRequester)(nil)

func newMockRequester() *mockRequester {
	return &mockRequester{
		responses: make(map[string][]byte),
		errs:      make(map[string]error),
	}
}

func (m *mockRequester) on(url string, body any) *mockRequester {
	switch b := body.(type) {
	case string:
		m.responses[url] = []byte(b)
	case []byte:
		m.responses[url] = b
	default:
		data, err := json.Marshal(b)
		if err != nil {
			panic(err)
		}
		m.responses[url] = data
	}
	return m
}

func (m *mockRequester) fail(url string, err error) *mockRequester {
	m.errs[url] = err
	return m
}

func (m *mockRequester) Request(_ context.Context, spec domain.RequestSpec) (*domain.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, spec)
	if err, ok := m.errs[spec.URL]; ok {
		return nil, err
	}
	body, ok := m.responses[spec.URL]
	if !ok {
		return nil, fmt.Errorf("unexpected request %s %s", spec.Method, spec.URL)
	}
	return &domain.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: body}, nil
}

func (m *mockRequester) RequestPaginated(ctx context.Context, spec domain.RequestSpec, opts domain.PaginationOptions) ([]*domain.Response, error) {
	var pages []*domain.Response
	current := spec
	for {
		resp, err := m.Request(ctx, current)
		if err != nil {
			return nil, err
		}
		pages = append(pages, resp)

		next, err := opts.Next(resp)
		if err != nil {
			return nil, err
		}
		if next == "" {
			return pages, nil
		}
		current = domain.RequestSpec{Method: spec.Method, URL: next, Headers: spec.Headers, Mode: spec.Mode}
	}
}

func (m *mockRequester) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockRequester) lastCall() domain.RequestSpec {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[len(m.calls)-1]
}

// mockBinaryStore keeps binaries in memory.
type mockBinaryStore struct {
	mu    sync.Mutex
	items map[string][]byte
	next  int
}

var _ driven.BinaryStore = (*mockBinaryStore)(nil)

func newMockBinaryStore() *mockBinaryStore {
	return &mockBinaryStore{items: make(map[string][]byte)}
}

func (m *mockBinaryStore) Get(_ context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func (m *mockBinaryStore) Prepare(_ context.Context, data []byte, fileName string) (domain.BinaryData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	id := fmt.Sprintf("bin-%d", m.next)
	m.items[id] = data
	return domain.BinaryData{
		ID:       id,
		FileName: fileName,
		MimeType: "application/pdf",
		FileSize: int64(len(data)),
	}, nil
}

// page builds a collection page body.
func page(next *string, results ...map[string]any) map[string]any {
	if results == nil {
		results = []map[string]any{}
	}
	return map[string]any{
		"count":    len(results),
		"next":     next,
		"previous": nil,
		"results":  results,
	}
}

func strPtr(s string) *string { return &s }

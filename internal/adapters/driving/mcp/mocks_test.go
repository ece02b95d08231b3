package mcp

import (
	"context"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// mockActionRunner is a mock implementation of driving.ActionRunner.
type mockActionRunner struct {
	result *domain.RunResult
	err    error
	execs  []domain.Execution
}

func (m *mockActionRunner) Run(_ context.Context, exec domain.Execution) (*domain.RunResult, error) {
	m.execs = append(m.execs, exec)
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &domain.RunResult{}, nil
	}
	return m.result, nil
}

// mockOptionsLoader is a mock implementation of driving.OptionsLoader.
type mockOptionsLoader struct {
	tags, correspondents, documentTypes []domain.Option
	err                                 error
}

func (m *mockOptionsLoader) Tags(_ context.Context) ([]domain.Option, error) {
	return m.tags, m.err
}

func (m *mockOptionsLoader) Correspondents(_ context.Context) ([]domain.Option, error) {
	return m.correspondents, m.err
}

func (m *mockOptionsLoader) DocumentTypes(_ context.Context) ([]domain.Option, error) {
	return m.documentTypes, m.err
}

// mockBinaryStore is a mock implementation of BinaryStore.
type mockBinaryStore struct {
	data    map[string][]byte
	deleted []string
}

func (m *mockBinaryStore) Get(_ context.Context, id string) ([]byte, error) {
	data, ok := m.data[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func (m *mockBinaryStore) Prepare(_ context.Context, data []byte, fileName string) (domain.BinaryData, error) {
	m.data["prepared"] = data
	return domain.BinaryData{ID: "prepared", FileName: fileName}, nil
}

func (m *mockBinaryStore) Delete(id string) {
	m.deleted = append(m.deleted, id)
	delete(m.data, id)
}

func recordsResult(records ...domain.OutputRecord) *domain.RunResult {
	return &domain.RunResult{Outcomes: []domain.ItemOutcome{{Index: 0, Records: records}}}
}

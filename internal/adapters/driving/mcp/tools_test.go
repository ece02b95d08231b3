package mcp

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports, "test")
	require.NoError(t, err)
	return server
}

func TestToolDescriptions_CoverEveryAction(t *testing.T) {
	for _, action := range domain.ValidActions() {
		assert.NotEmpty(t, toolDescriptions[action.String()], action.String())
	}
}

func TestServer_runAction(t *testing.T) {
	ctx := context.Background()
	list := domain.Action{Resource: domain.ResourceDocument, Operation: domain.OperationList}

	t.Run("merges params with the tool action", func(t *testing.T) {
		runner := &mockActionRunner{result: recordsResult(
			domain.OutputRecord{JSON: map[string]any{"id": 1}},
			domain.OutputRecord{JSON: map[string]any{"id": 2}},
		)}
		server := newTestServer(t, &Ports{Actions: runner})

		res, output, err := server.runAction(ctx, list, ActionInput{Params: map[string]any{
			"limit":     5,
			"resource":  "tag",
			"operation": "create",
		}})

		require.NoError(t, err)
		assert.Nil(t, res)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, 1, output.Records[0].JSON["id"])

		require.Len(t, runner.execs, 1)
		params := runner.execs[0].Parameters
		assert.Equal(t, "document", params[domain.ParamResource])
		assert.Equal(t, "list", params[domain.ParamOperation])
		assert.Equal(t, 5, params["limit"])
		assert.Len(t, runner.execs[0].Items, 1)
	})

	t.Run("uploads decoded file", func(t *testing.T) {
		runner := &mockActionRunner{result: recordsResult(
			domain.OutputRecord{JSON: map[string]any{"task_id": "abc"}},
		)}
		server := newTestServer(t, &Ports{Actions: runner})
		create := domain.Action{Resource: domain.ResourceDocument, Operation: domain.OperationCreate}

		_, output, err := server.runAction(ctx, create, ActionInput{
			File: &FileInput{
				FileName: "scan.pdf",
				Data:     base64.StdEncoding.EncodeToString([]byte("%PDF-1.7")),
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "abc", output.Records[0].JSON["task_id"])

		exec := runner.execs[0]
		assert.Equal(t, domain.DefaultBinaryPropertyName, exec.Parameters["file"])
		bin := exec.Items[0].Binary[domain.DefaultBinaryPropertyName]
		assert.Equal(t, []byte("%PDF-1.7"), bin.Data)
		assert.Equal(t, "application/pdf", bin.MimeType)
		assert.Equal(t, int64(8), bin.FileSize)
	})

	t.Run("rejects invalid base64", func(t *testing.T) {
		runner := &mockActionRunner{}
		server := newTestServer(t, &Ports{Actions: runner})

		_, _, err := server.runAction(ctx, list, ActionInput{
			File: &FileInput{FileName: "a.pdf", Data: "***"},
		})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, runner.execs)
	})

	t.Run("returns downloads as embedded resources", func(t *testing.T) {
		store := &mockBinaryStore{data: map[string][]byte{"bin-1": []byte("%PDF-1.4")}}
		runner := &mockActionRunner{result: recordsResult(domain.OutputRecord{
			JSON: map[string]any{},
			Binary: map[string]domain.BinaryData{
				"data": {ID: "bin-1", FileName: "document_7.pdf", MimeType: "application/pdf"},
			},
		})}
		server := newTestServer(t, &Ports{Actions: runner, Binaries: store})
		download := domain.Action{Resource: domain.ResourceDocument, Operation: domain.OperationDownload}

		res, output, err := server.runAction(ctx, download, ActionInput{Params: map[string]any{"id": 7}})

		require.NoError(t, err)
		require.NotNil(t, res)
		require.Len(t, res.Content, 2)
		embedded, ok := res.Content[1].(*mcp.EmbeddedResource)
		require.True(t, ok)
		assert.Equal(t, []byte("%PDF-1.4"), embedded.Resource.Blob)
		assert.Equal(t, "application/pdf", embedded.Resource.MIMEType)

		bin := output.Records[0].Binary["data"]
		assert.Equal(t, "document_7.pdf", bin.FileName)
		assert.Equal(t, int64(8), bin.FileSize)
		assert.Equal(t, "paperless://binary/document_7.pdf", bin.URI)
		assert.Equal(t, []string{"bin-1"}, store.deleted)
	})

	t.Run("propagates run errors", func(t *testing.T) {
		runner := &mockActionRunner{err: &domain.ItemError{Index: 0, Err: errors.New("boom")}}
		server := newTestServer(t, &Ports{Actions: runner})

		_, _, err := server.runAction(ctx, list, ActionInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestServer_handleListOptions(t *testing.T) {
	ctx := context.Background()
	loader := &mockOptionsLoader{
		tags:           []domain.Option{{Name: "Invoices", Value: 1}},
		correspondents: []domain.Option{{Name: "ACME", Value: 4}, {Name: "Bank", Value: 5}},
	}
	server := newTestServer(t, &Ports{Actions: &mockActionRunner{}, Options: loader})

	tests := []struct {
		entity string
		want   int
	}{
		{"tags", 1},
		{"Correspondents", 2},
		{"document-types", 0},
		{"document_types", 0},
	}
	for _, tt := range tests {
		t.Run(tt.entity, func(t *testing.T) {
			_, output, err := server.handleListOptions(ctx, nil, OptionsInput{Entity: tt.entity})
			require.NoError(t, err)
			assert.Equal(t, tt.want, output.Count)
			assert.NotNil(t, output.Options)
		})
	}

	t.Run("unknown entity", func(t *testing.T) {
		_, _, err := server.handleListOptions(ctx, nil, OptionsInput{Entity: "storage_paths"})
		assert.ErrorIs(t, err, ErrUnknownOptionList)
	})

	t.Run("loader error", func(t *testing.T) {
		failing := newTestServer(t, &Ports{
			Actions: &mockActionRunner{},
			Options: &mockOptionsLoader{err: domain.ErrUnexpectedResponse},
		})
		_, _, err := failing.handleListOptions(ctx, nil, OptionsInput{Entity: "tags"})
		assert.ErrorIs(t, err, domain.ErrUnexpectedResponse)
	})
}

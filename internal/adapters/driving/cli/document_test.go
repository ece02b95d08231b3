package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperless-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

func TestDocumentCmd_Use(t *testing.T) {
	assert.Equal(t, "document", documentCmd.Use)
}

func TestDocumentCmd_HasSubcommands(t *testing.T) {
	commands := documentCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "read")
	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "update")
	assert.Contains(t, commandNames, "download")
	assert.Contains(t, commandNames, "watch")
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "12", want: 12},
		{input: "1", want: 1},
		{input: "0", wantErr: true},
		{input: "-3", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, err := parseID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestDocumentCreate(t *testing.T) {
	t.Run("uploads file with changed fields only", func(t *testing.T) {
		ts := setupTestServices(t)
		ts.actions.result = recordsResult(domain.OutputRecord{JSON: map[string]any{"task_id": "b7e4"}})
		path := filepath.Join(t.TempDir(), "invoice.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7 test"), 0600))

		out, err := executeCommand(t, "", "document", "create", path,
			"--title", "Invoice", "--correspondent", "3", "--tags", "1,2")

		require.NoError(t, err)
		assert.Contains(t, out, `"task_id":"b7e4"`)

		exec := ts.actions.last()
		require.Len(t, exec.Items, 1)
		assert.Equal(t, "document", exec.Parameters[domain.ParamResource])
		assert.Equal(t, "create", exec.Parameters[domain.ParamOperation])
		assert.Equal(t, domain.DefaultBinaryPropertyName, exec.Parameters["file"])
		assert.Equal(t, map[string]any{
			"title":         "Invoice",
			"correspondent": 3,
			"tags":          "1,2",
		}, exec.Parameters["additional_fields"])

		bin := exec.Items[0].Binary[domain.DefaultBinaryPropertyName]
		assert.Equal(t, "invoice.pdf", bin.FileName)
		assert.Equal(t, "application/pdf", bin.MimeType)
		assert.Equal(t, int64(13), bin.FileSize)
	})

	t.Run("missing file", func(t *testing.T) {
		ts := setupTestServices(t)

		_, err := executeCommand(t, "", "document", "create", filepath.Join(t.TempDir(), "missing.pdf"))

		require.Error(t, err)
		assert.Empty(t, ts.actions.executions)
	})

	t.Run("action error is wrapped", func(t *testing.T) {
		ts := setupTestServices(t)
		ts.actions.err = &domain.ItemError{Index: 0, Err: errors.New("file too large")}
		path := filepath.Join(t.TempDir(), "big.pdf")
		require.NoError(t, os.WriteFile(path, []byte("data"), 0600))

		_, err := executeCommand(t, "", "document", "create", path)

		assert.EqualError(t, err, "document create: file too large")
	})
}

func TestDocumentRead(t *testing.T) {
	ts := setupTestServices(t)
	ts.actions.result = recordsResult(
		domain.OutputRecord{JSON: map[string]any{"id": 1}},
		domain.OutputRecord{JSON: map[string]any{"id": 2}},
	)

	out, err := executeCommand(t, "", "document", "read", "--search", "tax")

	require.NoError(t, err)
	assert.Equal(t, "{\"id\":1}\n{\"id\":2}\n", out)
	assert.Equal(t, map[string]any{"search": "tax"}, ts.actions.last().Parameters["additional_fields"])
}

func TestDocumentList(t *testing.T) {
	t.Run("builds filters", func(t *testing.T) {
		ts := setupTestServices(t)

		_, err := executeCommand(t, "", "document", "list",
			"--query", "invoice",
			"--tags", "1,2",
			"--created-after", "2024-01-01",
			"--filter", "is_in_inbox=true",
			"--limit", "5",
			"--ordering", "title")

		require.NoError(t, err)
		params := ts.actions.last().Parameters
		assert.Equal(t, "list", params[domain.ParamOperation])
		assert.Equal(t, 5, params["limit"])
		assert.Equal(t, "title", params["ordering"])
		assert.Equal(t, map[string]any{"query": "invoice", "more_like_id": ""}, params["search_options"])

		filters, ok := params["filters"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "1,2", filters["tags__id__in"])
		assert.Equal(t, "", filters["correspondent__id__in"])
		assert.Equal(t, "2024-01-01", filters[domain.FilterCreatedAfter])
		assert.Equal(t, "true", filters["is_in_inbox"])
	})

	t.Run("defaults", func(t *testing.T) {
		ts := setupTestServices(t)

		_, err := executeCommand(t, "", "document", "list")

		require.NoError(t, err)
		params := ts.actions.last().Parameters
		assert.Equal(t, domain.DefaultListLimit, params["limit"])
		assert.Equal(t, domain.OrderingCreatedDesc, params["ordering"])
	})

	t.Run("invalid filter", func(t *testing.T) {
		ts := setupTestServices(t)

		_, err := executeCommand(t, "", "document", "list", "--filter", "is_in_inbox")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected key=value")
		assert.Empty(t, ts.actions.executions)
	})
}

func TestDocumentUpdate(t *testing.T) {
	t.Run("sends changed fields", func(t *testing.T) {
		ts := setupTestServices(t)

		_, err := executeCommand(t, "", "document", "update", "12", "--title", "Reviewed", "--tags", "")

		require.NoError(t, err)
		params := ts.actions.last().Parameters
		assert.Equal(t, 12, params["id"])
		assert.Equal(t, map[string]any{"title": "Reviewed", "tags": ""}, params["update_fields"])
	})

	t.Run("requires a field", func(t *testing.T) {
		ts := setupTestServices(t)

		_, err := executeCommand(t, "", "document", "update", "12")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "nothing to update")
		assert.Empty(t, ts.actions.executions)
	})

	t.Run("invalid id", func(t *testing.T) {
		setupTestServices(t)

		_, err := executeCommand(t, "", "document", "update", "twelve", "--title", "x")

		assert.EqualError(t, err, `invalid document ID "twelve"`)
	})
}

func TestDocumentDownload(t *testing.T) {
	t.Run("writes stored binary to output directory", func(t *testing.T) {
		ts := setupTestServices(t)
		bin, err := ts.binaries.Prepare(context.Background(), []byte("scan bytes"), "scan.png")
		require.NoError(t, err)
		ts.actions.result = recordsResult(domain.OutputRecord{
			JSON:   map[string]any{},
			Binary: map[string]domain.BinaryData{domain.DefaultBinaryPropertyName: bin},
		})
		dir := t.TempDir()

		out, err := executeCommand(t, "", "document", "download", "7", "--output", dir)

		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "scan.png"))
		require.NoError(t, err)
		assert.Equal(t, "scan bytes", string(data))
		assert.Contains(t, out, "Saved "+filepath.Join(dir, "scan.png"))
		assert.Equal(t, 7, ts.actions.last().Parameters["id"])
	})

	t.Run("file store keeps the binary in place", func(t *testing.T) {
		ts := setupTestServices(t)
		store, err := file.NewBinaryStore(t.TempDir())
		require.NoError(t, err)
		binaryStore = store
		bin, err := store.Prepare(context.Background(), []byte("hello"), "note.txt")
		require.NoError(t, err)
		ts.actions.result = recordsResult(domain.OutputRecord{
			JSON:   map[string]any{},
			Binary: map[string]domain.BinaryData{domain.DefaultBinaryPropertyName: bin},
		})

		out, err := executeCommand(t, "", "document", "download", "3")

		require.NoError(t, err)
		assert.Contains(t, out, "Saved "+store.Path(bin.ID))
		assert.FileExists(t, store.Path(bin.ID))
	})

	t.Run("no records", func(t *testing.T) {
		ts := setupTestServices(t)
		ts.actions.result = &domain.RunResult{Outcomes: []domain.ItemOutcome{{Index: 0}}}

		_, err := executeCommand(t, "", "document", "download", "3")

		assert.EqualError(t, err, "download returned no data")
	})
}

func TestWriteDownload(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.pdf")

		got, err := writeDownload(path, "ignored.pdf", []byte("x"))

		require.NoError(t, err)
		assert.Equal(t, path, got)
		assert.FileExists(t, path)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := writeDownload(filepath.Join(t.TempDir(), "nope", "out.pdf"), "a.pdf", []byte("x"))
		assert.Error(t, err)
	})
}

func TestDescribeContent(t *testing.T) {
	assert.Equal(t, "5B", describeContent("text/plain", []byte("hello")))
	// Not a parsable PDF: falls back to the size alone.
	assert.Equal(t, "9B", describeContent("application/pdf", []byte("%PDF-junk")))
}

func TestChangedFields(t *testing.T) {
	cmd := documentUpdateCmd
	t.Cleanup(func() { resetFlags(cmd) })
	require.NoError(t, cmd.Flags().Set("document-type", "4"))
	require.NoError(t, cmd.Flags().Set("asn", "0042"))

	fields, err := changedFields(cmd, updateFieldFlags)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"document_type":         4,
		"archive_serial_number": "0042",
	}, fields)
}

func TestRunAction_NotWired(t *testing.T) {
	setupTestServices(t)
	actionRunner = nil

	_, err := executeCommand(t, "", "document", "read")

	assert.ErrorIs(t, err, errNotWired)
}

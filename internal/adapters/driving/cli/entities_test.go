package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

func TestEntityCommands(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		resource   string
		operation  string
		wantParams map[string]any
	}{
		{
			name:       "correspondent create",
			args:       []string{"correspondent", "create", "ACME Corp", "--matching-regex", "acme"},
			resource:   "correspondent",
			operation:  "create",
			wantParams: map[string]any{"name": "ACME Corp", "matching_regex": "acme"},
		},
		{
			name:      "correspondents alias",
			args:      []string{"correspondents", "read"},
			resource:  "correspondent",
			operation: "read",
		},
		{
			name:      "document type read",
			args:      []string{"document-type", "read"},
			resource:  "documentType",
			operation: "read",
		},
		{
			name:       "tag create default color",
			args:       []string{"tag", "create", "Taxes"},
			resource:   "tag",
			operation:  "create",
			wantParams: map[string]any{"name": "Taxes", "color": domain.DefaultTagColor, "matching_regex": ""},
		},
		{
			name:       "tag create custom color",
			args:       []string{"tags", "create", "Urgent", "--color", "#ff0000"},
			resource:   "tag",
			operation:  "create",
			wantParams: map[string]any{"name": "Urgent", "color": "#ff0000"},
		},
		{
			name:      "tag read",
			args:      []string{"tag", "read"},
			resource:  "tag",
			operation: "read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupTestServices(t)

			_, err := executeCommand(t, "", tt.args...)

			require.NoError(t, err)
			require.Len(t, ts.actions.executions, 1)
			params := ts.actions.last().Parameters
			assert.Equal(t, tt.resource, params[domain.ParamResource])
			assert.Equal(t, tt.operation, params[domain.ParamOperation])
			for k, v := range tt.wantParams {
				assert.Equal(t, v, params[k], k)
			}
		})
	}
}

func TestEntityCreate_RequiresName(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "tag", "create")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

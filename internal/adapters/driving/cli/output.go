package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// printRecords writes one JSON document per record. With full set, the
// complete record (json, binary, error, paired_item) is written instead of
// the JSON payload alone.
func printRecords(cmd *cobra.Command, records []domain.OutputRecord, full bool) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	if pretty, _ := cmd.Flags().GetBool("pretty"); pretty { //nolint:errcheck // persistent flag
		enc.SetIndent("", "  ")
	}

	for i := range records {
		var v any = records[i].JSON
		if full {
			v = records[i]
		}
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	return nil
}

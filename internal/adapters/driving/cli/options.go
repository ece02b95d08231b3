package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

var optionsCmd = &cobra.Command{
	Use:       "options [tags|correspondents|document-types]",
	Short:     "List selectable IDs",
	Long:      `List the names and IDs usable in --tags, --correspondent and --document-type.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"tags", "correspondents", "document-types"},
	RunE:      runOptions,
}

func init() {
	optionsCmd.Flags().Bool("json", false, "Print options as JSON lines")
	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, args []string) error {
	if optionsLoader == nil {
		return errors.New("options loader not configured")
	}

	load, err := optionsFunc(args[0])
	if err != nil {
		return err
	}
	options, err := load(commandContext(cmd))
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json") //nolint:errcheck // flag is registered
	if asJSON {
		records := make([]domain.OutputRecord, len(options))
		for i, o := range options {
			records[i] = domain.OutputRecord{JSON: map[string]any{"name": o.Name, "value": o.Value}}
		}
		return printRecords(cmd, records, false)
	}

	if len(options) == 0 {
		cmd.Printf("No %s found\n", args[0])
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, o := range options {
		fmt.Fprintf(w, "%d\t%s\n", o.Value, o.Name)
	}
	return w.Flush()
}

func optionsFunc(entity string) (func(context.Context) ([]domain.Option, error), error) {
	switch entity {
	case "tags", "tag":
		return optionsLoader.Tags, nil
	case "correspondents", "correspondent":
		return optionsLoader.Correspondents, nil
	case "document-types", "document-type", "document_types", "documentTypes":
		return optionsLoader.DocumentTypes, nil
	default:
		return nil, fmt.Errorf("unknown option list %q: use tags, correspondents or document-types", entity)
	}
}

package cli

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// runAction executes action over a single item and returns its records.
func runAction(
	cmd *cobra.Command,
	action domain.Action,
	params map[string]any,
	item domain.Item,
) ([]domain.OutputRecord, error) {
	if actionRunner == nil {
		return nil, errNotWired
	}

	p := action.Params()
	maps.Copy(p, params)

	result, err := actionRunner.Run(commandContext(cmd), domain.Execution{
		Items:      []domain.Item{item},
		Parameters: p,
	})
	if err != nil {
		var itemErr *domain.ItemError
		if errors.As(err, &itemErr) {
			err = itemErr.Err
		}
		return nil, fmt.Errorf("%s %s: %w", action.Resource, action.Operation, err)
	}
	return result.Records(), nil
}

// runAndPrint executes action over a single item and prints the records.
func runAndPrint(cmd *cobra.Command, action domain.Action, params map[string]any, item domain.Item) error {
	records, err := runAction(cmd, action, params, item)
	if err != nil {
		return err
	}
	return printRecords(cmd, records, false)
}

// mustAction returns a valid action known at compile time.
func mustAction(resource domain.ResourceKind, op domain.OperationKind) domain.Action {
	action, err := domain.ParseAction(string(resource), string(op))
	if err != nil {
		panic(err)
	}
	return action
}

// loadFile reads a file into an inline binary attachment.
func loadFile(path string) (domain.BinaryData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.BinaryData{}, fmt.Errorf("read %s: %w", path, err)
	}
	name := filepath.Base(path)
	return domain.BinaryData{
		FileName: name,
		MimeType: domain.DetectMimeType(data, name),
		FileSize: int64(len(data)),
		Data:     data,
	}, nil
}

// parseID parses a positional document ID.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid document ID %q", arg)
	}
	return id, nil
}

// changedFields collects the flags set on the command line into a
// parameter map. Keys are the parameter names, values the flag names.
func changedFields(cmd *cobra.Command, mapping map[string]string) (map[string]any, error) {
	fields := make(map[string]any)
	for key, flagName := range mapping {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil || !flag.Changed {
			continue
		}
		switch flag.Value.Type() {
		case "int":
			n, err := cmd.Flags().GetInt(flagName)
			if err != nil {
				return nil, err
			}
			fields[key] = n
		default:
			fields[key] = flag.Value.String()
		}
	}
	return fields, nil
}

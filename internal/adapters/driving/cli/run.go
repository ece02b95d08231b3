package cli

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/paperless-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an action over a batch of items",
	Long: `Run one resource/operation action over every item of a YAML or JSON file.

Each item may carry its own json payload, parameters and binary attachments
loaded from disk or referenced by stored binary ID. An item parameter
replaces the file-wide parameter of the same name as a whole; nested maps
such as update_fields are not merged. Output is one JSON record per line;
with --continue-on-fail failed items are reported as records with an "error".

Example items file:
  resource: document
  operation: update
  parameters:
    update_fields: {title: Reviewed}
  items:
    - params: {id: 12}
    - params: {id: 13, update_fields: {title: Reviewed, tags: "1,4"}}`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

// itemsFile is the on-disk batch description.
type itemsFile struct {
	Resource       string         `yaml:"resource"`
	Operation      string         `yaml:"operation"`
	ContinueOnFail bool           `yaml:"continue_on_fail"`
	Parameters     map[string]any `yaml:"parameters"`
	Items          []itemSpec     `yaml:"items"`
}

type itemSpec struct {
	JSON   map[string]any        `yaml:"json"`
	Params map[string]any        `yaml:"params"`
	Binary map[string]binarySpec `yaml:"binary"`
}

// binarySpec references binary content by file path or stored ID.
type binarySpec struct {
	Path     string `yaml:"path"`
	ID       string `yaml:"id"`
	FileName string `yaml:"file_name"`
	MimeType string `yaml:"mime_type"`
}

func init() {
	runCmd.Flags().StringP("items", "i", "", "Items file (YAML or JSON, - for stdin)")
	runCmd.Flags().String("resource", "", "Resource (overrides the file)")
	runCmd.Flags().String("operation", "", "Operation (overrides the file)")
	runCmd.Flags().Bool("continue-on-fail", false, "Report failed items as records instead of aborting")
	_ = runCmd.MarkFlagRequired("items")
	rootCmd.AddCommand(runCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	if actionRunner == nil {
		return errNotWired
	}

	path, _ := cmd.Flags().GetString("items") //nolint:errcheck // flag is registered
	file, err := readItemsFile(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("resource"); v != "" { //nolint:errcheck // flag is registered
		file.Resource = v
	}
	if v, _ := cmd.Flags().GetString("operation"); v != "" { //nolint:errcheck // flag is registered
		file.Operation = v
	}
	if cmd.Flags().Changed("continue-on-fail") {
		file.ContinueOnFail, _ = cmd.Flags().GetBool("continue-on-fail") //nolint:errcheck // flag is registered
	}

	action, err := domain.ParseAction(file.Resource, file.Operation)
	if err != nil {
		return err
	}

	exec, err := buildExecution(file, action, baseDir(path))
	if err != nil {
		return err
	}

	result, err := actionRunner.Run(commandContext(cmd), exec)
	if err != nil {
		return err
	}
	if err := printRecords(cmd, result.Records(), true); err != nil {
		return err
	}

	if failed := len(result.Failures()); failed > 0 {
		cmd.PrintErrf("%d of %d items failed\n", failed, len(exec.Items))
	}
	return nil
}

func readItemsFile(stdin io.Reader, path string) (*itemsFile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}

	var file itemsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	return &file, nil
}

func baseDir(path string) string {
	if path == "-" {
		return "."
	}
	return filepath.Dir(path)
}

// buildExecution converts the items file into an execution. A file without
// items runs the action once over an empty item.
func buildExecution(file *itemsFile, action domain.Action, dir string) (domain.Execution, error) {
	params := action.Params()
	maps.Copy(params, file.Parameters)
	params[domain.ParamResource] = string(action.Resource)
	params[domain.ParamOperation] = string(action.Operation)

	specs := file.Items
	if len(specs) == 0 {
		specs = []itemSpec{{}}
	}

	items := make([]domain.Item, len(specs))
	for i, spec := range specs {
		item := domain.Item{JSON: spec.JSON, Params: spec.Params}
		if item.JSON == nil {
			item.JSON = map[string]any{}
		}
		if len(spec.Binary) > 0 {
			item.Binary = make(map[string]domain.BinaryData, len(spec.Binary))
			for name, b := range spec.Binary {
				bin, err := b.load(dir)
				if err != nil {
					return domain.Execution{}, &domain.ItemError{Index: i, Err: fmt.Errorf("binary %s: %w", name, err)}
				}
				item.Binary[name] = bin
			}
		}
		items[i] = item
	}

	return domain.Execution{
		Items:          items,
		Parameters:     params,
		ContinueOnFail: file.ContinueOnFail,
	}, nil
}

func (b binarySpec) load(dir string) (domain.BinaryData, error) {
	switch {
	case b.ID != "":
		return domain.BinaryData{ID: b.ID, FileName: b.FileName, MimeType: b.MimeType}, nil
	case b.Path != "":
		path := filesystem.LocalPath(b.Path)
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		bin, err := loadFile(path)
		if err != nil {
			return domain.BinaryData{}, err
		}
		if b.FileName != "" {
			bin.FileName = b.FileName
		}
		if b.MimeType != "" {
			bin.MimeType = b.MimeType
		}
		return bin, nil
	default:
		return domain.BinaryData{}, errors.New("either path or id is required")
	}
}

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/paperless-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/logger"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage documents",
	Long:  `Upload, read, list, update and download Paperless-ngx documents.`,
}

var documentCreateCmd = &cobra.Command{
	Use:   "create [file]",
	Short: "Upload a document",
	Long: `Upload a file to Paperless-ngx. The document is processed asynchronously;
the command prints the consumption task ID.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentCreate,
}

var documentReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Read all documents",
	Long:  `Fetch every document, following pagination, optionally narrowed by --search.`,
	Args:  cobra.NoArgs,
	RunE:  runDocumentRead,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents with filters",
	Long: `List one page of documents matching a full-text query and filters.

Examples:
  paperless document list --query invoice --tags 1,2 --limit 10
  paperless document list --created-after 2024-01-01 --ordering title
  paperless document list --filter is_in_inbox=true`,
	Args: cobra.NoArgs,
	RunE: runDocumentList,
}

var documentUpdateCmd = &cobra.Command{
	Use:   "update [doc-id]",
	Short: "Update document metadata",
	Long: `Change selected metadata of a document. Only the flags given are sent;
--tags "" removes every tag.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentUpdate,
}

var documentDownloadCmd = &cobra.Command{
	Use:   "download [doc-id]",
	Short: "Download a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDownload,
}

var documentWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Upload files dropped into a folder",
	Long: `Watch a folder and upload every file created in it, like a
Paperless-ngx consume folder. Hidden files and directories are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentWatch,
}

// Flag name to parameter name mappings.
var (
	createFieldFlags = map[string]string{
		"title":                 "title",
		"created":               "created",
		"correspondent":         "correspondent",
		"document_type":         "document-type",
		"storage_path":          "storage-path",
		"archive_serial_number": "asn",
		"tags":                  "tags",
		"custom_fields":         "custom-fields",
	}
	updateFieldFlags = createFieldFlags
)

func init() {
	addMetadataFlags(documentCreateCmd, "Comma-separated custom field IDs")
	addMetadataFlags(documentUpdateCmd, "Custom fields as JSON")
	addMetadataFlags(documentWatchCmd, "Comma-separated custom field IDs")
	documentWatchCmd.Flags().Bool("remove", false, "Delete files after a successful upload")

	documentReadCmd.Flags().String("search", "", "Full-text search applied while reading")

	documentListCmd.Flags().String("query", "", "Full-text query")
	documentListCmd.Flags().String("more-like", "", "Only documents similar to this document ID")
	documentListCmd.Flags().String("tags", "", "Comma-separated tag IDs")
	documentListCmd.Flags().String("correspondent", "", "Comma-separated correspondent IDs")
	documentListCmd.Flags().String("document-type", "", "Comma-separated document type IDs")
	documentListCmd.Flags().String("created-after", "", "Only documents created after this date")
	documentListCmd.Flags().String("created-before", "", "Only documents created before this date")
	documentListCmd.Flags().StringArray("filter", nil, "Extra filter as key=value (repeatable)")
	documentListCmd.Flags().Int("limit", domain.DefaultListLimit, "Maximum number of results")
	documentListCmd.Flags().String("ordering", domain.OrderingCreatedDesc,
		"Sort order: "+strings.Join(domain.Orderings(), ", "))

	documentDownloadCmd.Flags().StringP("output", "o", "", "Write the file to this path or directory")

	documentCmd.AddCommand(documentCreateCmd)
	documentCmd.AddCommand(documentReadCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentUpdateCmd)
	documentCmd.AddCommand(documentDownloadCmd)
	documentCmd.AddCommand(documentWatchCmd)
	rootCmd.AddCommand(documentCmd)
}

func addMetadataFlags(cmd *cobra.Command, customFieldsUsage string) {
	cmd.Flags().String("title", "", "Document title")
	cmd.Flags().String("created", "", "Creation date (any common date format)")
	cmd.Flags().Int("correspondent", 0, "Correspondent ID")
	cmd.Flags().Int("document-type", 0, "Document type ID")
	cmd.Flags().Int("storage-path", 0, "Storage path ID")
	cmd.Flags().String("asn", "", "Archive serial number")
	cmd.Flags().String("tags", "", "Comma-separated tag IDs")
	cmd.Flags().String("custom-fields", "", customFieldsUsage)
}

func runDocumentCreate(cmd *cobra.Command, args []string) error {
	return uploadFile(cmd, args[0])
}

// uploadFile uploads path with the metadata flags of cmd and prints the
// task record.
func uploadFile(cmd *cobra.Command, path string) error {
	bin, err := loadFile(path)
	if err != nil {
		return err
	}

	fields, err := changedFields(cmd, createFieldFlags)
	if err != nil {
		return err
	}

	item := domain.Item{
		JSON:   map[string]any{"file": path},
		Binary: map[string]domain.BinaryData{domain.DefaultBinaryPropertyName: bin},
	}
	records, err := runAction(cmd, mustAction(domain.ResourceDocument, domain.OperationCreate), map[string]any{
		"file":              domain.DefaultBinaryPropertyName,
		"additional_fields": fields,
	}, item)
	if err != nil {
		return err
	}
	return printRecords(cmd, records, false)
}

func runDocumentRead(cmd *cobra.Command, _ []string) error {
	search, _ := cmd.Flags().GetString("search") //nolint:errcheck // flag is registered
	return runAndPrint(cmd, mustAction(domain.ResourceDocument, domain.OperationRead), map[string]any{
		"additional_fields": map[string]any{"search": search},
	}, domain.Item{})
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	params, err := listParams(cmd)
	if err != nil {
		return err
	}
	return runAndPrint(cmd, mustAction(domain.ResourceDocument, domain.OperationList), params, domain.Item{})
}

// listParams converts the list flags into action parameters.
func listParams(cmd *cobra.Command) (map[string]any, error) {
	flags := cmd.Flags()
	str := func(name string) string {
		v, _ := flags.GetString(name) //nolint:errcheck // flags are registered in init
		return v
	}
	limit, err := flags.GetInt("limit")
	if err != nil {
		return nil, err
	}
	extra, err := flags.GetStringArray("filter")
	if err != nil {
		return nil, err
	}

	filters := map[string]any{
		"tags" + domain.IDSetSuffix:          str("tags"),
		"correspondent" + domain.IDSetSuffix: str("correspondent"),
		"document_type" + domain.IDSetSuffix: str("document-type"),
		domain.FilterCreatedAfter:            str("created-after"),
		domain.FilterCreatedBefore:           str("created-before"),
	}
	for _, kv := range extra {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --filter %q: expected key=value", kv)
		}
		filters[strings.TrimSpace(key)] = value
	}

	return map[string]any{
		"search_options": map[string]any{
			"query":        str("query"),
			"more_like_id": str("more-like"),
		},
		"filters":  filters,
		"limit":    limit,
		"ordering": str("ordering"),
	}, nil
}

func runDocumentUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	fields, err := changedFields(cmd, updateFieldFlags)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return errors.New("nothing to update: set at least one field flag")
	}

	return runAndPrint(cmd, mustAction(domain.ResourceDocument, domain.OperationUpdate), map[string]any{
		"id":            id,
		"update_fields": fields,
	}, domain.Item{})
}

func runDocumentDownload(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output") //nolint:errcheck // flag is registered

	records, err := runAction(cmd, mustAction(domain.ResourceDocument, domain.OperationDownload), map[string]any{
		"id":                   id,
		"binary_property_name": domain.DefaultBinaryPropertyName,
	}, domain.Item{})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.New("download returned no data")
	}

	bin := records[0].Binary[domain.DefaultBinaryPropertyName]
	data, err := binaryContent(commandContext(cmd), bin)
	if err != nil {
		return err
	}

	path := storedPath(bin)
	if output != "" || path == "" {
		path, err = writeDownload(output, bin.FileName, data)
		if err != nil {
			return err
		}
		releaseBinary(commandContext(cmd), bin)
	}

	cmd.Printf("Saved %s (%s)\n", path, describeContent(bin.MimeType, data))
	return nil
}

// binaryContent returns the bytes of a binary, inline or stored.
func binaryContent(ctx context.Context, bin domain.BinaryData) ([]byte, error) {
	if bin.ID == "" {
		return bin.Data, nil
	}
	if binaryStore == nil {
		return nil, errors.New("binary store not configured")
	}
	data, err := binaryStore.Get(ctx, bin.ID)
	if err != nil {
		return nil, fmt.Errorf("load binary %s: %w", bin.ID, err)
	}
	return data, nil
}

// storedPath returns the file backing a stored binary, if the store is
// file based.
func storedPath(bin domain.BinaryData) string {
	locator, ok := binaryStore.(interface{ Path(id string) string })
	if !ok || bin.ID == "" {
		return ""
	}
	return locator.Path(bin.ID)
}

// releaseBinary drops a stored binary once it has been copied elsewhere.
func releaseBinary(ctx context.Context, bin domain.BinaryData) {
	remover, ok := binaryStore.(interface {
		Remove(ctx context.Context, id string) error
	})
	if !ok || bin.ID == "" {
		return
	}
	if err := remover.Remove(ctx, bin.ID); err != nil {
		logger.Warn("could not remove stored binary %s: %v", bin.ID, err)
	}
}

// writeDownload writes data to output. An empty output or a directory
// receives the suggested file name.
func writeDownload(output, fileName string, data []byte) (string, error) {
	path := output
	if path == "" {
		path = fileName
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, fileName)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// describeContent summarises a downloaded file: its size and, for PDFs,
// its page count.
func describeContent(mimeType string, data []byte) string {
	size := units.HumanSize(float64(len(data)))
	if mimeType != "application/pdf" && !bytes.HasPrefix(data, []byte("%PDF-")) {
		return size
	}
	pages, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		logger.Debug("page count failed: %v", err)
		return size
	}
	if pages == 1 {
		return size + ", 1 page"
	}
	return fmt.Sprintf("%s, %d pages", size, pages)
}

func runDocumentWatch(cmd *cobra.Command, args []string) error {
	if actionRunner == nil {
		return errNotWired
	}
	remove, _ := cmd.Flags().GetBool("remove") //nolint:errcheck // flag is registered

	watcher := filesystem.NewWatcher(args[0], filesystem.WatchOptions{
		Logger: logger.Named("watch"),
	})

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", args[0])
	return watcher.Watch(commandContext(cmd), func(_ context.Context, path string) error {
		if err := uploadFile(cmd, path); err != nil {
			cmd.PrintErrf("upload %s: %v\n", path, err)
			return nil
		}
		if remove {
			if err := os.Remove(path); err != nil {
				logger.Warn("could not remove %s: %v", path, err)
			}
		}
		return nil
	})
}

package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// uriScheme prefixes the URIs of returned binaries.
const uriScheme = "paperless://"

// ActionInput is the input schema shared by every action tool.
type ActionInput struct {
	Params map[string]any `json:"params,omitempty" jsonschema:"action parameters in snake_case or camelCase"`
	File   *FileInput     `json:"file,omitempty" jsonschema:"file to upload, used by document_create"`
}

// FileInput is an uploaded file.
type FileInput struct {
	FileName string `json:"file_name" jsonschema:"file name including extension"`
	MimeType string `json:"mime_type,omitempty" jsonschema:"content type, detected when omitted"`
	Data     string `json:"data" jsonschema:"base64-encoded file content"`
}

// ActionOutput is the output schema shared by every action tool.
type ActionOutput struct {
	Records []RecordOutput `json:"records"`
	Count   int            `json:"count"`
}

// RecordOutput is one output record. Binary content is returned as an
// embedded resource, not inline.
type RecordOutput struct {
	JSON       map[string]any          `json:"json"`
	Binary     map[string]BinaryOutput `json:"binary,omitempty"`
	Error      string                  `json:"error,omitempty"`
	PairedItem int                     `json:"paired_item"`
}

// BinaryOutput describes a returned file.
type BinaryOutput struct {
	URI      string `json:"uri"`
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	FileSize int64  `json:"file_size"`
}

// OptionsInput is the input schema for the list_options tool.
type OptionsInput struct {
	Entity string `json:"entity" jsonschema:"one of tags, correspondents, document_types"`
}

// OptionsOutput is the output schema for the list_options tool.
type OptionsOutput struct {
	Options []domain.Option `json:"options"`
	Count   int             `json:"count"`
}

var toolDescriptions = map[string]string{
	"correspondent:create": "Create a correspondent. Params: name (required), matching_regex.",
	"correspondent:read":   "Read all correspondents.",
	"documentType:read":    "Read all document types.",
	"document:create": "Upload a document (pass file). Params: additional_fields with title, created, " +
		"correspondent, document_type, storage_path, archive_serial_number, tags, custom_fields. " +
		"Returns the consumption task_id.",
	"document:read": "Read all documents. Params: additional_fields.search for full-text search.",
	"document:list": "List one page of documents. Params: search_options (query, more_like_id), " +
		"filters (tags__id__in, correspondent__id__in, document_type__id__in, " +
		"created__date__gt, created__date__lt, any other API filter), limit (default 25), " +
		"ordering (-created, created, title, -title).",
	"document:update": "Update document metadata. Params: id (required), update_fields with title, " +
		"created, correspondent, document_type, storage_path, archive_serial_number, tags, custom_fields.",
	"document:download": "Download the original file of a document. Params: id (required), binary_property_name (default \"data\").",
	"tag:create":        "Create a tag. Params: name (required), color (#rrggbb), matching_regex.",
	"tag:read":          "Read all tags.",
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	for _, action := range domain.ValidActions() {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        action.Name(),
			Description: toolDescriptions[action.String()],
		}, s.actionHandler(action))
	}

	if s.ports.Options != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_options",
			Description: "List the names and IDs of tags, correspondents or document types",
		}, s.handleListOptions)
	}
}

// actionHandler returns the tool handler running action.
func (s *Server) actionHandler(action domain.Action) mcp.ToolHandlerFor[ActionInput, ActionOutput] {
	return func(
		ctx context.Context,
		_ *mcp.CallToolRequest,
		input ActionInput,
	) (*mcp.CallToolResult, ActionOutput, error) {
		return s.runAction(ctx, action, input)
	}
}

func (s *Server) runAction(
	ctx context.Context,
	action domain.Action,
	input ActionInput,
) (*mcp.CallToolResult, ActionOutput, error) {
	params := action.Params()
	for key, value := range input.Params {
		if key == domain.ParamResource || key == domain.ParamOperation {
			continue
		}
		params[key] = value
	}

	item := domain.Item{JSON: map[string]any{}}
	if input.File != nil {
		bin, err := input.File.binary()
		if err != nil {
			return nil, ActionOutput{}, err
		}
		item.Binary = map[string]domain.BinaryData{domain.DefaultBinaryPropertyName: bin}
		if _, ok := params["file"]; !ok {
			params["file"] = domain.DefaultBinaryPropertyName
		}
	}

	result, err := s.ports.Actions.Run(ctx, domain.Execution{
		Items:      []domain.Item{item},
		Parameters: params,
	})
	if err != nil {
		return nil, ActionOutput{}, err
	}

	records := result.Records()
	output := ActionOutput{
		Records: make([]RecordOutput, len(records)),
		Count:   len(records),
	}
	var resources []mcp.Content

	for i := range records {
		rec := RecordOutput{
			JSON:       records[i].JSON,
			Error:      records[i].Error,
			PairedItem: records[i].PairedItem,
		}
		for name, bin := range records[i].Binary {
			data, err := s.takeBinary(ctx, bin)
			if err != nil {
				return nil, ActionOutput{}, err
			}
			if rec.Binary == nil {
				rec.Binary = make(map[string]BinaryOutput)
			}
			uri := uriScheme + "binary/" + bin.FileName
			rec.Binary[name] = BinaryOutput{
				URI:      uri,
				FileName: bin.FileName,
				MimeType: bin.MimeType,
				FileSize: int64(len(data)),
			}
			resources = append(resources, &mcp.EmbeddedResource{
				Resource: &mcp.ResourceContents{URI: uri, MIMEType: bin.MimeType, Blob: data},
			})
		}
		output.Records[i] = rec
	}

	if len(resources) == 0 {
		return nil, output, nil
	}

	summary, err := json.Marshal(output)
	if err != nil {
		return nil, ActionOutput{}, fmt.Errorf("encode output: %w", err)
	}
	content := append([]mcp.Content{&mcp.TextContent{Text: string(summary)}}, resources...)
	return &mcp.CallToolResult{Content: content}, output, nil
}

// takeBinary returns the content of a binary and releases stored copies.
func (s *Server) takeBinary(ctx context.Context, bin domain.BinaryData) ([]byte, error) {
	if bin.ID == "" || s.ports.Binaries == nil {
		return bin.Data, nil
	}
	data, err := s.ports.Binaries.Get(ctx, bin.ID)
	if err != nil {
		return nil, fmt.Errorf("load binary %s: %w", bin.ID, err)
	}
	s.ports.Binaries.Delete(bin.ID)
	return data, nil
}

func (f *FileInput) binary() (domain.BinaryData, error) {
	if strings.TrimSpace(f.FileName) == "" {
		return domain.BinaryData{}, domain.NewValidationError("file_name", fmt.Errorf("is required"))
	}
	data, err := base64.StdEncoding.DecodeString(f.Data)
	if err != nil {
		return domain.BinaryData{}, domain.NewValidationError("data", fmt.Errorf("not valid base64: %w", err))
	}

	mimeType := f.MimeType
	if mimeType == "" {
		mimeType = domain.DetectMimeType(data, f.FileName)
	}
	return domain.BinaryData{
		FileName: f.FileName,
		MimeType: mimeType,
		FileSize: int64(len(data)),
		Data:     data,
	}, nil
}

// handleListOptions handles the list_options tool invocation.
func (s *Server) handleListOptions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OptionsInput,
) (*mcp.CallToolResult, OptionsOutput, error) {
	var load func(context.Context) ([]domain.Option, error)
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(input.Entity)), "-", "_") {
	case "tags", "tag":
		load = s.ports.Options.Tags
	case "correspondents", "correspondent":
		load = s.ports.Options.Correspondents
	case "document_types", "document_type", "documenttypes":
		load = s.ports.Options.DocumentTypes
	default:
		return nil, OptionsOutput{}, fmt.Errorf("%w: %q", ErrUnknownOptionList, input.Entity)
	}

	options, err := load(ctx)
	if err != nil {
		return nil, OptionsOutput{}, err
	}
	if options == nil {
		options = []domain.Option{}
	}
	return nil, OptionsOutput{Options: options, Count: len(options)}, nil
}

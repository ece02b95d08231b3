package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.Options != nil {
		lists := []struct {
			name        string
			description string
			load        func(context.Context) ([]domain.Option, error)
		}{
			{"tags", "Names and IDs of all tags", s.ports.Options.Tags},
			{"correspondents", "Names and IDs of all correspondents", s.ports.Options.Correspondents},
			{"document-types", "Names and IDs of all document types", s.ports.Options.DocumentTypes},
		}
		for _, l := range lists {
			s.server.AddResource(&mcp.Resource{
				URI:         uriScheme + l.name,
				Name:        l.name,
				Description: l.description,
				MIMEType:    "application/json",
			}, s.optionsResourceHandler(l.load))
		}
	}

	// Template for the original file of a document.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-file",
		Description: "Original file of a document",
	}, s.handleDocumentResource)
}

// optionsResourceHandler returns a handler serving one option list as JSON.
func (s *Server) optionsResourceHandler(load func(context.Context) ([]domain.Option, error)) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		options, err := load(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading options: %w", err)
		}
		if options == nil {
			options = []domain.Option{}
		}

		data, err := json.MarshalIndent(options, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshalling options: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			}},
		}, nil
	}
}

// handleDocumentResource downloads a document and returns its bytes.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractDocumentID(req.Params.URI)
	if id == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	download := domain.Action{Resource: domain.ResourceDocument, Operation: domain.OperationDownload}
	params := download.Params()
	params["id"] = id

	result, err := s.ports.Actions.Run(ctx, domain.Execution{
		Items:      []domain.Item{{JSON: map[string]any{}}},
		Parameters: params,
	})
	if err != nil {
		return nil, fmt.Errorf("downloading document %d: %w", id, err)
	}

	for _, rec := range result.Records() {
		bin, ok := rec.Binary[domain.DefaultBinaryPropertyName]
		if !ok {
			continue
		}
		data, err := s.takeBinary(ctx, bin)
		if err != nil {
			return nil, err
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: bin.MimeType,
				Blob:     data,
			}},
		}, nil
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

// extractDocumentID extracts the document ID from a URI like
// paperless://documents/{documentId}. Returns 0 if the URI does not match.
func extractDocumentID(uri string) int {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return 0
	}
	id, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil || id < 1 {
		return 0
	}
	return id
}

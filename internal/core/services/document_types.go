package services

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
)

// DocumentTypeHandler implements read of document types. Document types
// cannot be created through this adapter.
type DocumentTypeHandler struct {
	requester driven.Requester
	log       hclog.Logger
}

// NewDocumentTypeHandler creates a document type handler.
func NewDocumentTypeHandler(requester driven.Requester, log hclog.Logger) *DocumentTypeHandler {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &DocumentTypeHandler{requester: requester, log: log}
}

// Handle dispatches a document type operation.
func (h *DocumentTypeHandler) Handle(ctx context.Context, op domain.OperationKind, _ domain.Item, _ map[string]any) ([]domain.OutputRecord, error) {
	if op != domain.OperationRead {
		return nil, fmt.Errorf("%w: document type does not support %q", domain.ErrUnsupportedAction, op)
	}
	return readCollection(ctx, h.requester, h.log, domain.PathDocumentTypes, nil, noResults{entity: "document types"})
}

package services

import (
	"context"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
)

// CorrespondentHandler implements create and read of correspondents.
type CorrespondentHandler struct {
	requester driven.Requester
	log       hclog.Logger
}

// NewCorrespondentHandler creates a correspondent handler.
func NewCorrespondentHandler(requester driven.Requester, log hclog.Logger) *CorrespondentHandler {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &CorrespondentHandler{requester: requester, log: log}
}

// Handle dispatches a correspondent operation.
func (h *CorrespondentHandler) Handle(ctx context.Context, op domain.OperationKind, _ domain.Item, params map[string]any) ([]domain.OutputRecord, error) {
	switch op {
	case domain.OperationCreate:
		return h.Create(ctx, params)
	case domain.OperationRead:
		return readCollection(ctx, h.requester, h.log, domain.PathCorrespondents, nil, noResults{entity: "correspondents"})
	default:
		return nil, fmt.Errorf("%w: correspondent does not support %q", domain.ErrUnsupportedAction, op)
	}
}

// Create adds a correspondent.
func (h *CorrespondentHandler) Create(ctx context.Context, params map[string]any) ([]domain.OutputRecord, error) {
	var p domain.CorrespondentCreateParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
	); err != nil {
		return nil, toValidationError(err)
	}

	return createEntity(ctx, h.requester, domain.PathCorrespondents, "correspondent", domain.CorrespondentCreate{
		Name:          p.Name,
		MatchingRegex: p.MatchingRegex,
	})
}

// createEntity POSTs a JSON body and wraps the response as one record.
func createEntity(ctx context.Context, requester driven.Requester, path, entity string, body any) ([]domain.OutputRecord, error) {
	resp, err := requester.Request(ctx, domain.RequestSpec{
		Method: http.MethodPost,
		URL:    path,
		Body:   body,
		Mode:   domain.ResponseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", entity, err)
	}

	rec, err := recordFromBody(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", entity, err)
	}
	return []domain.OutputRecord{rec}, nil
}

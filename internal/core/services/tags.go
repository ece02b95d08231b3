package services

import (
	"context"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// TagHandler implements create and read of tags.
type TagHandler struct {
	requester driven.Requester
	log       hclog.Logger
}

// NewTagHandler creates a tag handler.
func NewTagHandler(requester driven.Requester, log hclog.Logger) *TagHandler {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &TagHandler{requester: requester, log: log}
}

// Handle dispatches a tag operation.
func (h *TagHandler) Handle(ctx context.Context, op domain.OperationKind, _ domain.Item, params map[string]any) ([]domain.OutputRecord, error) {
	switch op {
	case domain.OperationCreate:
		return h.Create(ctx, params)
	case domain.OperationRead:
		return readCollection(ctx, h.requester, h.log, domain.PathTags, nil, noResults{entity: "tags"})
	default:
		return nil, fmt.Errorf("%w: tag does not support %q", domain.ErrUnsupportedAction, op)
	}
}

// Create adds a tag. The color defaults to #a6cee3.
func (h *TagHandler) Create(ctx context.Context, params map[string]any) ([]domain.OutputRecord, error) {
	p := domain.TagCreateParams{Color: domain.DefaultTagColor}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.Color == "" {
		p.Color = domain.DefaultTagColor
	}
	if err := validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Color, validation.Match(colorPattern)),
	); err != nil {
		return nil, toValidationError(err)
	}

	return createEntity(ctx, h.requester, domain.PathTags, "tag", domain.TagCreate{
		Name:          p.Name,
		Color:         p.Color,
		MatchingRegex: p.MatchingRegex,
	})
}

package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driving"
)

// Ensure OptionsService implements the interface.
var _ driving.OptionsLoader = (*OptionsService)(nil)

// OptionsService loads picker values for tag, correspondent and document
// type parameters.
type OptionsService struct {
	requester driven.Requester
}

// NewOptionsService creates a new options service.
func NewOptionsService(requester driven.Requester) *OptionsService {
	return &OptionsService{requester: requester}
}

// Tags lists tags as options.
func (s *OptionsService) Tags(ctx context.Context) ([]domain.Option, error) {
	return s.load(ctx, domain.PathTags, "tags")
}

// Correspondents lists correspondents as options.
func (s *OptionsService) Correspondents(ctx context.Context) ([]domain.Option, error) {
	return s.load(ctx, domain.PathCorrespondents, "correspondents")
}

// DocumentTypes lists document types as options.
func (s *OptionsService) DocumentTypes(ctx context.Context) ([]domain.Option, error) {
	return s.load(ctx, domain.PathDocumentTypes, "document types")
}

// load drains the collection. Any page without a results array fails the
// whole lookup.
func (s *OptionsService) load(ctx context.Context, path, entity string) ([]domain.Option, error) {
	pages, err := s.requester.RequestPaginated(ctx, domain.RequestSpec{
		Method: http.MethodGet,
		URL:    path,
		Mode:   domain.ResponseJSON,
	}, domain.PaginationOptions{Next: nextPage})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", entity, err)
	}

	var options []domain.Option
	for _, page := range pages {
		opts, err := decodeOptions(page.Body, entity)
		if err != nil {
			return nil, err
		}
		options = append(options, opts...)
	}
	return options, nil
}

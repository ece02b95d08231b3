package driving

import (
	"context"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// OptionsLoader lists the selectable values for ID parameters.
// A malformed response is a hard error naming the entity list.
type OptionsLoader interface {
	// Tags lists tags as name/ID options.
	Tags(ctx context.Context) ([]domain.Option, error)

	// Correspondents lists correspondents as name/ID options.
	Correspondents(ctx context.Context) ([]domain.Option, error)

	// DocumentTypes lists document types as name/ID options.
	DocumentTypes(ctx context.Context) ([]domain.Option, error)
}

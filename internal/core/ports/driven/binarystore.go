package driven

import (
	"context"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// BinaryStore keeps binary attachments outside of item payloads.
type BinaryStore interface {
	// Get returns the bytes referenced by a stored binary ID.
	// Returns domain.ErrNotFound if the ID is unknown.
	Get(ctx context.Context, id string) ([]byte, error)

	// Prepare stores data under a new ID and returns its descriptor with the
	// MIME type derived from the file name and content.
	Prepare(ctx context.Context, data []byte, fileName string) (domain.BinaryData, error)
}

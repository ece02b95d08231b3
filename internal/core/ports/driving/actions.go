package driving

import (
	"context"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// ActionRunner executes a resource/operation action over a batch of items.
type ActionRunner interface {
	// Run resolves the action from the first item's parameters and applies
	// it to every item in order.
	//
	// With exec.ContinueOnFail the result holds exactly one outcome per item.
	// Otherwise the first failure aborts the run with a *domain.ItemError.
	Run(ctx context.Context, exec domain.Execution) (*domain.RunResult, error)
}

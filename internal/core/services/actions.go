package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driving"
)

// Ensure ActionService implements the interface.
var _ driving.ActionRunner = (*ActionService)(nil)

// Parameter keys selecting the action.
const (
	ParamResource  = domain.ParamResource
	ParamOperation = domain.ParamOperation
)

// ActionConfig holds handler options.
type ActionConfig struct {
	// MaxUploadSize limits document uploads in bytes. 0 disables the limit.
	MaxUploadSize int64

	// Logger receives run and request logs. Defaults to a null logger.
	Logger hclog.Logger
}

// ActionService dispatches actions to the resource handlers and runs them
// once per input item, sequentially.
type ActionService struct {
	handlers map[domain.ResourceKind]ResourceHandler
	log      hclog.Logger
}

// NewActionService creates an action service with the standard handlers.
func NewActionService(requester driven.Requester, binaries driven.BinaryStore, cfg ActionConfig) *ActionService {
	log := cfg.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &ActionService{
		handlers: map[domain.ResourceKind]ResourceHandler{
			domain.ResourceDocument:      NewDocumentHandler(requester, binaries, cfg.MaxUploadSize, log.Named("document")),
			domain.ResourceCorrespondent: NewCorrespondentHandler(requester, log.Named("correspondent")),
			domain.ResourceDocumentType:  NewDocumentTypeHandler(requester, log.Named("document_type")),
			domain.ResourceTag:           NewTagHandler(requester, log.Named("tag")),
		},
		log: log,
	}
}

// Run resolves the action from the first item's parameters and applies it
// to every item in order.
func (s *ActionService) Run(ctx context.Context, exec domain.Execution) (*domain.RunResult, error) {
	result := &domain.RunResult{ExecutionID: uuid.NewString()}
	if len(exec.Items) == 0 {
		return result, nil
	}

	action, err := ResolveAction(exec.ParamsFor(0, normaliseKeys))
	if err != nil {
		return nil, &domain.ItemError{Index: 0, Err: err}
	}
	result.Action = action

	handler, ok := s.handlers[action.Resource]
	if !ok {
		return nil, &domain.ItemError{Index: 0, Err: fmt.Errorf("%w: no handler for %s", domain.ErrUnsupportedAction, action.Resource)}
	}

	log := s.log.With("execution", result.ExecutionID, "action", action.String())
	log.Debug("starting run", "items", len(exec.Items), "continue_on_fail", exec.ContinueOnFail)

	result.Outcomes = make([]domain.ItemOutcome, 0, len(exec.Items))
	for i, item := range exec.Items {
		if err := ctx.Err(); err != nil {
			return nil, &domain.ItemError{Index: i, Err: err}
		}

		records, err := handler.Handle(ctx, action.Operation, item, exec.ParamsFor(i, normaliseKeys))
		if err != nil {
			itemErr := &domain.ItemError{Index: i, Err: err}
			if !exec.ContinueOnFail {
				log.Debug("aborting run", "item", i, "error", err)
				return nil, itemErr
			}

			log.Warn("item failed", "item", i, "error", err)
			result.Outcomes = append(result.Outcomes, domain.ItemOutcome{
				Index:   i,
				Records: []domain.OutputRecord{errorRecord(item, i, err)},
				Err:     itemErr,
			})
			continue
		}

		for j := range records {
			records[j].PairedItem = i
		}
		result.Outcomes = append(result.Outcomes, domain.ItemOutcome{Index: i, Records: records})
	}

	log.Debug("run finished", "records", len(result.Records()), "failed", len(result.Failures()))
	return result, nil
}

// errorRecord captures a failed item with its unmodified input data.
func errorRecord(item domain.Item, index int, err error) domain.OutputRecord {
	data := item.JSON
	if data == nil {
		data = map[string]any{}
	}
	return domain.OutputRecord{
		JSON:       data,
		Binary:     item.Binary,
		Error:      err.Error(),
		PairedItem: index,
	}
}

// ResolveAction reads the resource and operation parameters.
func ResolveAction(params map[string]any) (domain.Action, error) {
	resource := stringParam(params, ParamResource)
	operation := stringParam(params, ParamOperation)
	if resource == "" || operation == "" {
		return domain.Action{}, fmt.Errorf("%w: resource and operation are required", domain.ErrUnsupportedAction)
	}
	return domain.ParseAction(resource, operation)
}

// RunErrors aggregates the captured item errors of a run, or returns nil
// when every item succeeded.
func RunErrors(result *domain.RunResult) error {
	if result == nil {
		return nil
	}
	var merr *multierror.Error
	for _, o := range result.Failures() {
		merr = multierror.Append(merr, o.Err)
	}
	return merr.ErrorOrNil()
}

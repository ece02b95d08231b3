package domain

import (
	"fmt"
	"strings"
)

// ResourceKind identifies a Paperless-ngx resource an action operates on.
type ResourceKind string

// Available resources.
const (
	// ResourceCorrespondent is a sender or recipient of documents.
	ResourceCorrespondent ResourceKind = "correspondent"

	// ResourceDocumentType is a document category (invoice, letter, ...).
	ResourceDocumentType ResourceKind = "documentType"

	// ResourceDocument is a stored document.
	ResourceDocument ResourceKind = "document"

	// ResourceTag is a label attached to documents.
	ResourceTag ResourceKind = "tag"
)

// AllResources returns every resource kind in display order.
func AllResources() []ResourceKind {
	return []ResourceKind{ResourceCorrespondent, ResourceDocumentType, ResourceDocument, ResourceTag}
}

// IsValid returns true if the resource is recognised.
func (r ResourceKind) IsValid() bool {
	switch r {
	case ResourceCorrespondent, ResourceDocumentType, ResourceDocument, ResourceTag:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r ResourceKind) String() string {
	return string(r)
}

// Description returns a human-readable name of the resource.
func (r ResourceKind) Description() string {
	switch r {
	case ResourceCorrespondent:
		return "Correspondent"
	case ResourceDocumentType:
		return "Document Type"
	case ResourceDocument:
		return "Document"
	case ResourceTag:
		return "Tag"
	default:
		return "Unknown"
	}
}

// OperationKind identifies what an action does to a resource.
type OperationKind string

// Available operations. Not every operation is valid for every resource;
// see ValidActions.
const (
	OperationCreate   OperationKind = "create"
	OperationRead     OperationKind = "read"
	OperationUpdate   OperationKind = "update"
	OperationDelete   OperationKind = "delete"
	OperationList     OperationKind = "list"
	OperationDownload OperationKind = "download"
)

// String returns the string representation.
func (o OperationKind) String() string {
	return string(o)
}

// Action is a valid resource/operation pair. Values are only obtained
// through ParseAction or ValidActions, so every Action is dispatchable.
type Action struct {
	Resource  ResourceKind
	Operation OperationKind
}

// Parameter keys selecting the action of an execution.
const (
	ParamResource  = "resource"
	ParamOperation = "operation"
)

// Params returns the parameters selecting this action.
func (a Action) Params() map[string]any {
	return map[string]any{
		ParamResource:  string(a.Resource),
		ParamOperation: string(a.Operation),
	}
}

// validActions is the resource/operation validity matrix.
var validActions = map[ResourceKind][]OperationKind{
	ResourceCorrespondent: {OperationCreate, OperationRead},
	ResourceDocumentType:  {OperationRead},
	ResourceDocument:      {OperationCreate, OperationRead, OperationList, OperationUpdate, OperationDownload},
	ResourceTag:           {OperationCreate, OperationRead},
}

// ValidActions returns every dispatchable action in display order.
func ValidActions() []Action {
	var actions []Action
	for _, r := range AllResources() {
		for _, op := range validActions[r] {
			actions = append(actions, Action{Resource: r, Operation: op})
		}
	}
	return actions
}

// OperationsFor returns the operations supported by a resource.
func OperationsFor(r ResourceKind) []OperationKind {
	return append([]OperationKind(nil), validActions[r]...)
}

// ParseResource resolves a resource name. Matching ignores case, dashes and
// underscores so "documentType", "document_type" and "document-type" are equal.
func ParseResource(s string) (ResourceKind, error) {
	key := foldName(s)
	for _, r := range AllResources() {
		if foldName(string(r)) == key {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: unknown resource %q", ErrUnsupportedAction, s)
}

// ParseAction resolves a resource and operation name into a valid Action.
func ParseAction(resource, operation string) (Action, error) {
	r, err := ParseResource(resource)
	if err != nil {
		return Action{}, err
	}

	op := OperationKind(strings.ToLower(strings.TrimSpace(operation)))
	for _, valid := range validActions[r] {
		if valid == op {
			return Action{Resource: r, Operation: op}, nil
		}
	}
	return Action{}, fmt.Errorf("%w: %s does not support %q", ErrUnsupportedAction, r.Description(), operation)
}

// String returns "resource:operation".
func (a Action) String() string {
	return string(a.Resource) + ":" + string(a.Operation)
}

// Name returns a snake_case identifier such as "document_type_read".
func (a Action) Name() string {
	resource := string(a.Resource)
	if a.Resource == ResourceDocumentType {
		resource = "document_type"
	}
	return resource + "_" + string(a.Operation)
}

func foldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

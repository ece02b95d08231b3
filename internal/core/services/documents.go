package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/docker/go-units"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
)

// ResourceHandler runs the operations of one resource for a single item.
type ResourceHandler interface {
	Handle(ctx context.Context, op domain.OperationKind, item domain.Item, params map[string]any) ([]domain.OutputRecord, error)
}

// Ensure handlers implement the interface.
var (
	_ ResourceHandler = (*DocumentHandler)(nil)
	_ ResourceHandler = (*CorrespondentHandler)(nil)
	_ ResourceHandler = (*DocumentTypeHandler)(nil)
	_ ResourceHandler = (*TagHandler)(nil)
)

var orderingRule = validation.In(toAny(domain.Orderings())...)

var binaryNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// DocumentHandler implements create, read, list, update and download
// of documents.
type DocumentHandler struct {
	requester     driven.Requester
	binaries      driven.BinaryStore
	maxUploadSize int64
	log           hclog.Logger
}

// NewDocumentHandler creates a document handler. A maxUploadSize of 0
// disables the upload limit.
func NewDocumentHandler(requester driven.Requester, binaries driven.BinaryStore, maxUploadSize int64, log hclog.Logger) *DocumentHandler {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &DocumentHandler{
		requester:     requester,
		binaries:      binaries,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

// Handle dispatches a document operation.
func (h *DocumentHandler) Handle(ctx context.Context, op domain.OperationKind, item domain.Item, params map[string]any) ([]domain.OutputRecord, error) {
	switch op {
	case domain.OperationCreate:
		return h.Create(ctx, item, params)
	case domain.OperationRead:
		return h.Read(ctx, params)
	case domain.OperationList:
		return h.List(ctx, params)
	case domain.OperationUpdate:
		return h.Update(ctx, params)
	case domain.OperationDownload:
		return h.Download(ctx, params)
	default:
		return nil, fmt.Errorf("%w: document does not support %q", domain.ErrUnsupportedAction, op)
	}
}

// Create uploads the item's binary as a new document. The response is the
// ingestion task ID; ingestion itself is asynchronous.
func (h *DocumentHandler) Create(ctx context.Context, item domain.Item, params map[string]any) ([]domain.OutputRecord, error) {
	p := domain.DocumentCreateParams{File: domain.DefaultBinaryPropertyName}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(&p,
		validation.Field(&p.File, validation.Required, validation.Match(binaryNamePattern)),
	); err != nil {
		return nil, toValidationError(err)
	}

	bin, ok := item.Binary[p.File]
	if !ok {
		return nil, domain.NewValidationError("file", fmt.Errorf("%w: item has no binary property %q", domain.ErrMissingBinary, p.File))
	}
	data, err := h.binaryBytes(ctx, bin)
	if err != nil {
		return nil, err
	}
	if h.maxUploadSize > 0 && int64(len(data)) > h.maxUploadSize {
		return nil, domain.NewValidationError("file", fmt.Errorf("%w: %s exceeds %s",
			domain.ErrUploadTooLarge, units.HumanSize(float64(len(data))), units.HumanSize(float64(h.maxUploadSize))))
	}

	fields := p.AdditionalFields
	created, err := normaliseTimestamp(fields.Created)
	if err != nil {
		return nil, domain.NewValidationError("created", err)
	}

	upload := domain.DocumentUpload{
		Title:               fields.Title,
		Created:             created,
		Correspondent:       fields.Correspondent,
		DocumentType:        fields.DocumentType,
		StoragePath:         fields.StoragePath,
		ArchiveSerialNumber: fields.ArchiveSerialNumber,
		Tags:                fields.Tags,
		CustomFields:        fields.CustomFields,
	}

	fileName := bin.FileName
	if fileName == "" {
		fileName = p.File
	}

	h.log.Debug("uploading document", "file", fileName, "size", len(data))
	resp, err := h.requester.Request(ctx, domain.RequestSpec{
		Method: http.MethodPost,
		URL:    domain.PathPostDocument,
		Form: &domain.MultipartForm{
			Fields: upload.Fields(),
			Files: []domain.FormFile{{
				Field:       "document",
				FileName:    fileName,
				ContentType: bin.MimeType,
				Data:        data,
			}},
		},
		Mode: domain.ResponseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("upload document: %w", err)
	}

	var taskID any
	if err := decodeJSON(resp.Body, &taskID); err != nil {
		taskID = string(resp.Body)
	}
	return []domain.OutputRecord{{JSON: map[string]any{"task_id": taskID}}}, nil
}

func (h *DocumentHandler) binaryBytes(ctx context.Context, bin domain.BinaryData) ([]byte, error) {
	if bin.ID == "" {
		return bin.Data, nil
	}
	if h.binaries == nil {
		return nil, fmt.Errorf("%w: no binary store configured for %q", domain.ErrMissingBinary, bin.ID)
	}
	data, err := h.binaries.Get(ctx, bin.ID)
	if err != nil {
		return nil, fmt.Errorf("load binary %s: %w", bin.ID, err)
	}
	return data, nil
}

// Read runs a keyword search and drains every result page.
func (h *DocumentHandler) Read(ctx context.Context, params map[string]any) ([]domain.OutputRecord, error) {
	var p domain.DocumentReadParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	query := url.Values{}
	applied := map[string]any{}
	var described []string
	if search := p.AdditionalFields.Search; search != "" {
		query.Set(paramSearch, search)
		applied[paramSearch] = search
		described = append(described, fmt.Sprintf("search %q", search))
	}

	return readCollection(ctx, h.requester, h.log, domain.PathDocuments, query, noResults{
		entity:   "documents",
		filters:  described,
		applied:  applied,
		original: query,
	})
}

// List runs a filtered, sorted search limited to one page of limit results.
func (h *DocumentHandler) List(ctx context.Context, params map[string]any) ([]domain.OutputRecord, error) {
	p := domain.DocumentListParams{
		Limit:    domain.DefaultListLimit,
		Ordering: domain.OrderingCreatedDesc,
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(&p,
		validation.Field(&p.Limit, validation.Required, validation.Min(1)),
		validation.Field(&p.Ordering, orderingRule),
	); err != nil {
		return nil, toValidationError(err)
	}

	filters, err := buildFilterSet(p.RawFilters)
	if err != nil {
		return nil, err
	}
	p.Filters = filters

	query := EncodeListQuery(p)
	h.log.Debug("listing documents", "query", query.Encode())

	resp, err := h.requester.Request(ctx, domain.RequestSpec{
		Method: http.MethodGet,
		URL:    domain.PathDocuments,
		Query:  query,
		Mode:   domain.ResponseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return normaliseList(resp, noResults{
		entity:   "documents",
		filters:  describeFilters(p),
		applied:  appliedFilters(p),
		original: query,
	})
}

// Update sends a partial update of a document.
func (h *DocumentHandler) Update(ctx context.Context, params map[string]any) ([]domain.OutputRecord, error) {
	var p domain.DocumentUpdateParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required, validation.Min(1)),
	); err != nil {
		return nil, toValidationError(err)
	}

	patch, err := buildPatch(p.UpdateFields)
	if err != nil {
		return nil, fmt.Errorf("update document %d: %w", p.ID, err)
	}

	resp, err := h.requester.Request(ctx, domain.RequestSpec{
		Method:  http.MethodPatch,
		URL:     domain.DocumentPath(p.ID),
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    patch,
		Mode:    domain.ResponseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("update document %d: %w", p.ID, err)
	}

	rec, err := recordFromBody(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("update document %d: %w", p.ID, err)
	}
	return []domain.OutputRecord{rec}, nil
}

// buildPatch copies every present, non-null field. Fields without a typed
// counterpart are passed through unchanged. Custom fields given as text
// must be valid JSON.
func buildPatch(f domain.DocumentUpdateFields) (domain.DocumentPatch, error) {
	patch := domain.DocumentPatch{
		Title:               f.Title,
		Created:             f.Created,
		Correspondent:       f.Correspondent,
		DocumentType:        f.DocumentType,
		StoragePath:         f.StoragePath,
		ArchiveSerialNumber: f.ArchiveSerialNumber,
	}
	for k, v := range f.Rest {
		if v == nil {
			continue
		}
		if patch.Extra == nil {
			patch.Extra = make(map[string]any, len(f.Rest))
		}
		patch.Extra[k] = v
	}
	if f.Tags != nil {
		tags := *f.Tags
		if tags == nil {
			tags = domain.IDList{}
		}
		patch.Tags = &tags
	}

	switch cf := f.CustomFields.(type) {
	case nil:
	case string:
		var decoded any
		if err := json.Unmarshal([]byte(cf), &decoded); err != nil {
			return patch, domain.NewValidationError("custom_fields", fmt.Errorf("must be valid JSON: %w", err))
		}
		patch.CustomFields = decoded
	default:
		patch.CustomFields = cf
	}
	return patch, nil
}

// Download fetches the original file of a document as a binary attachment.
func (h *DocumentHandler) Download(ctx context.Context, params map[string]any) ([]domain.OutputRecord, error) {
	p := domain.DocumentDownloadParams{BinaryPropertyName: domain.DefaultBinaryPropertyName}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required, validation.Min(1)),
		validation.Field(&p.BinaryPropertyName, validation.Required, validation.Match(binaryNamePattern)),
	); err != nil {
		return nil, toValidationError(err)
	}

	resp, err := h.requester.Request(ctx, domain.RequestSpec{
		Method: http.MethodGet,
		URL:    domain.DocumentDownloadPath(p.ID),
		Mode:   domain.ResponseRaw,
	})
	if err != nil {
		return nil, fmt.Errorf("download document %d: %w", p.ID, err)
	}

	fileName := fmt.Sprintf("document_%d.pdf", p.ID)
	bin, err := h.prepareBinary(ctx, resp.Body, fileName)
	if err != nil {
		return nil, fmt.Errorf("download document %d: %w", p.ID, err)
	}

	return []domain.OutputRecord{{
		JSON:   map[string]any{},
		Binary: map[string]domain.BinaryData{p.BinaryPropertyName: bin},
	}}, nil
}

func (h *DocumentHandler) prepareBinary(ctx context.Context, data []byte, fileName string) (domain.BinaryData, error) {
	if h.binaries != nil {
		return h.binaries.Prepare(ctx, data, fileName)
	}
	return domain.BinaryData{
		FileName: fileName,
		MimeType: domain.DetectMimeType(data, fileName),
		FileSize: int64(len(data)),
		Data:     data,
	}, nil
}

// readCollection drains a paginated collection endpoint.
func readCollection(ctx context.Context, requester driven.Requester, log hclog.Logger, path string, query url.Values, diag noResults) ([]domain.OutputRecord, error) {
	pages, err := requester.RequestPaginated(ctx, domain.RequestSpec{
		Method: http.MethodGet,
		URL:    path,
		Query:  query,
		Mode:   domain.ResponseJSON,
	}, domain.PaginationOptions{Next: nextPage})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", diag.entity, err)
	}

	log.Debug("collected pages", "path", path, "pages", len(pages))
	return normalisePages(pages, diag)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

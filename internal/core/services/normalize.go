package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// decodeJSON decodes a response body keeping numbers as json.Number so
// IDs survive unchanged.
func decodeJSON(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(v)
}

// pageResults extracts the results array of one page body. ok is false
// when the body has no results array.
func pageResults(body []byte) (results []json.RawMessage, ok bool) {
	var page domain.Page
	if err := decodeJSON(body, &page); err != nil {
		return nil, false
	}
	trimmed := bytes.TrimSpace(page.Results)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	if err := json.Unmarshal(trimmed, &results); err != nil {
		return nil, false
	}
	return results, true
}

// recordFrom wraps one result element. Non-object elements are stored
// under "value".
func recordFrom(raw json.RawMessage) (domain.OutputRecord, error) {
	var v any
	if err := decodeJSON(raw, &v); err != nil {
		return domain.OutputRecord{}, fmt.Errorf("%w: %v", domain.ErrUnexpectedResponse, err)
	}
	if obj, ok := v.(map[string]any); ok {
		return domain.OutputRecord{JSON: obj}, nil
	}
	return domain.OutputRecord{JSON: map[string]any{"value": v}}, nil
}

// recordFromBody wraps a single JSON response body.
func recordFromBody(body []byte) (domain.OutputRecord, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return domain.OutputRecord{JSON: map[string]any{}}, nil
	}
	return recordFrom(body)
}

// noResults describes an empty or malformed result set.
type noResults struct {
	entity   string
	filters  []string
	applied  map[string]any
	original url.Values
}

func (n noResults) record() domain.OutputRecord {
	message := "No " + n.entity + " found"
	if len(n.filters) > 0 {
		message += " with the given filters: " + strings.Join(n.filters, ", ")
	}

	applied := n.applied
	if applied == nil {
		applied = map[string]any{}
	}
	return domain.OutputRecord{JSON: map[string]any{
		"message":        message,
		"appliedFilters": applied,
		"originalParams": flattenQuery(n.original),
	}}
}

// normalisePages concatenates the results of every page in page order.
// Pages without a results array contribute a single diagnostic record,
// appended after the collected results.
func normalisePages(pages []*domain.Response, diag noResults) ([]domain.OutputRecord, error) {
	var records []domain.OutputRecord
	malformed := false

	for _, page := range pages {
		results, ok := pageResults(page.Body)
		if !ok {
			malformed = true
			continue
		}
		for _, raw := range results {
			rec, err := recordFrom(raw)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}

	if malformed {
		records = append(records, diag.record())
	}
	return records, nil
}

// normaliseList handles the single response of a filtered list request.
// A missing, malformed or empty results array yields exactly one
// diagnostic record.
func normaliseList(resp *domain.Response, diag noResults) ([]domain.OutputRecord, error) {
	results, ok := pageResults(resp.Body)
	if !ok || len(results) == 0 {
		return []domain.OutputRecord{diag.record()}, nil
	}

	records := make([]domain.OutputRecord, 0, len(results))
	for _, raw := range results {
		rec, err := recordFrom(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// nextPage returns the "next" link of a page body, or "" on the last page.
func nextPage(resp *domain.Response) (string, error) {
	var page struct {
		Next *string `json:"next"`
	}
	if err := json.Unmarshal(resp.Body, &page); err != nil {
		return "", nil
	}
	if page.Next == nil {
		return "", nil
	}
	return *page.Next, nil
}

// decodeOptions converts a collection page into picker options. A body
// without a results array of objects is an error naming the entity.
func decodeOptions(body []byte, entity string) ([]domain.Option, error) {
	results, ok := pageResults(body)
	if !ok {
		return nil, fmt.Errorf("%w when loading %s", domain.ErrUnexpectedResponse, entity)
	}

	options := make([]domain.Option, 0, len(results))
	for _, raw := range results {
		var item struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("%w when loading %s: %v", domain.ErrUnexpectedResponse, entity, err)
		}
		options = append(options, domain.Option{Name: item.Name, Value: item.ID})
	}
	return options, nil
}

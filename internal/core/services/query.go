package services

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// Query parameter names of the documents endpoint.
const (
	paramQuery      = "query"
	paramSearch     = "search"
	paramMoreLikeID = "more_like_id"
	paramPageSize   = "page_size"
	paramOrdering   = "ordering"
)

// EncodeListQuery builds the query mapping of a document list request.
//
// ID-set filters are sent as one comma-joined value per key and are
// omitted when empty. more_like_id is only sent when it is a positive
// number. page_size is always present.
func EncodeListQuery(p domain.DocumentListParams) url.Values {
	q := url.Values{}

	if p.SearchOptions.Query != "" {
		q.Set(paramQuery, p.SearchOptions.Query)
	}
	if id, ok := moreLikeID(p.SearchOptions.MoreLikeID); ok {
		q.Set(paramMoreLikeID, id)
	}

	for _, f := range p.Filters.IDSets {
		if len(f.IDs) == 0 {
			continue
		}
		q.Set(f.Key(), f.IDs.Join(","))
	}
	if p.Filters.CreatedAfter != "" {
		q.Set(domain.FilterCreatedAfter, p.Filters.CreatedAfter)
	}
	if p.Filters.CreatedBefore != "" {
		q.Set(domain.FilterCreatedBefore, p.Filters.CreatedBefore)
	}
	for key, value := range p.Filters.Extra {
		q.Set(key, value)
	}

	q.Set(paramPageSize, strconv.Itoa(p.Limit))
	if p.Ordering != "" {
		q.Set(paramOrdering, p.Ordering)
	}
	return q
}

// moreLikeID returns the trimmed ID when it parses to a positive number.
func moreLikeID(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return "", false
	}
	return s, true
}

// flattenQuery returns the query mapping with single values unwrapped,
// in a form suitable for a JSON record.
func flattenQuery(q url.Values) map[string]any {
	out := make(map[string]any, len(q))
	for key, values := range q {
		if len(values) == 1 {
			out[key] = values[0]
		} else {
			out[key] = append([]string(nil), values...)
		}
	}
	return out
}

// describeFilters lists every non-empty filter of a list request in a
// stable order, for diagnostic messages.
func describeFilters(p domain.DocumentListParams) []string {
	var parts []string

	if p.SearchOptions.Query != "" {
		parts = append(parts, "query "+strconv.Quote(p.SearchOptions.Query))
	}
	if id, ok := moreLikeID(p.SearchOptions.MoreLikeID); ok {
		parts = append(parts, "similar to document "+id)
	}
	for _, f := range p.Filters.IDSets {
		if len(f.IDs) == 0 {
			continue
		}
		parts = append(parts, f.Field+" (IDs: "+f.IDs.Join(", ")+")")
	}
	if p.Filters.CreatedAfter != "" {
		parts = append(parts, "created after "+p.Filters.CreatedAfter)
	}
	if p.Filters.CreatedBefore != "" {
		parts = append(parts, "created before "+p.Filters.CreatedBefore)
	}

	extra := make([]string, 0, len(p.Filters.Extra))
	for key, value := range p.Filters.Extra {
		extra = append(extra, key+"="+value)
	}
	sort.Strings(extra)
	return append(parts, extra...)
}

// appliedFilters returns the effective filters keyed by base field name.
func appliedFilters(p domain.DocumentListParams) map[string]any {
	applied := make(map[string]any)

	if p.SearchOptions.Query != "" {
		applied[paramQuery] = p.SearchOptions.Query
	}
	if id, ok := moreLikeID(p.SearchOptions.MoreLikeID); ok {
		applied[paramMoreLikeID] = id
	}
	for _, f := range p.Filters.IDSets {
		if len(f.IDs) == 0 {
			continue
		}
		applied[f.Field] = []int(f.IDs)
	}
	if p.Filters.CreatedAfter != "" {
		applied[domain.FilterCreatedAfter] = p.Filters.CreatedAfter
	}
	if p.Filters.CreatedBefore != "" {
		applied[domain.FilterCreatedBefore] = p.Filters.CreatedBefore
	}
	for key, value := range p.Filters.Extra {
		applied[key] = value
	}
	return applied
}

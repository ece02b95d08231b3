package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

func listParams() domain.DocumentListParams {
	return domain.DocumentListParams{Limit: domain.DefaultListLimit, Ordering: domain.OrderingCreatedDesc}
}

func TestEncodeListQuery_Defaults(t *testing.T) {
	q := EncodeListQuery(listParams())

	assert.Equal(t, "25", q.Get("page_size"))
	assert.Equal(t, "-created", q.Get("ordering"))
	assert.Len(t, q, 2)
}

func TestEncodeListQuery_IDSets(t *testing.T) {
	tests := []struct {
		name     string
		ids      domain.IDList
		expected string
		present  bool
	}{
		{name: "single id", ids: domain.IDList{7}, expected: "7", present: true},
		{name: "many ids keep selection order", ids: domain.IDList{3, 1, 2}, expected: "3,1,2", present: true},
		{name: "empty set is omitted", ids: domain.IDList{}, present: false},
		{name: "nil set is omitted", ids: nil, present: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := listParams()
			p.Filters.IDSets = []domain.IDSetFilter{{Field: "tags", IDs: tt.ids}}

			q := EncodeListQuery(p)

			values, ok := q["tags__id__in"]
			assert.Equal(t, tt.present, ok)
			if tt.present {
				require.Len(t, values, 1, "ID sets must be one comma-joined value, never repeated keys")
				assert.Equal(t, tt.expected, values[0])
			}
		})
	}
}

func TestEncodeListQuery_MoreLikeID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		present  bool
	}{
		{input: "12", expected: "12", present: true},
		{input: " 12 ", expected: "12", present: true},
		{input: "0", present: false},
		{input: "-3", present: false},
		{input: "abc", present: false},
		{input: "", present: false},
		{input: "NaN", present: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := listParams()
			p.SearchOptions.MoreLikeID = tt.input

			q := EncodeListQuery(p)

			_, ok := q["more_like_id"]
			assert.Equal(t, tt.present, ok)
			if tt.present {
				assert.Equal(t, tt.expected, q.Get("more_like_id"))
			}
		})
	}
}

func TestEncodeListQuery_AllFilters(t *testing.T) {
	p := listParams()
	p.SearchOptions.Query = "invoice 2023"
	p.Ordering = domain.OrderingRelevance
	p.Limit = 5
	p.Filters = domain.FilterSet{
		IDSets: []domain.IDSetFilter{
			{Field: "correspondent", IDs: domain.IDList{4}},
			{Field: "tags", IDs: domain.IDList{1, 2}},
		},
		CreatedAfter:  "2023-01-01",
		CreatedBefore: "2023-12-31",
		Extra:         map[string]string{"is_in_inbox": "true"},
	}

	q := EncodeListQuery(p)

	assert.Equal(t, "invoice 2023", q.Get("query"))
	assert.Equal(t, "4", q.Get("correspondent__id__in"))
	assert.Equal(t, "1,2", q.Get("tags__id__in"))
	assert.Equal(t, "2023-01-01", q.Get("created__date__gt"))
	assert.Equal(t, "2023-12-31", q.Get("created__date__lt"))
	assert.Equal(t, "true", q.Get("is_in_inbox"))
	assert.Equal(t, "5", q.Get("page_size"))
	_, hasOrdering := q["ordering"]
	assert.False(t, hasOrdering, "relevance ordering is not sent")
}

func TestIDSet_RoundTrip(t *testing.T) {
	sets := []domain.IDList{
		{1},
		{1, 2, 3},
		{42, 7, 1000000, 7},
	}

	for _, ids := range sets {
		p := listParams()
		p.Filters.IDSets = []domain.IDSetFilter{{Field: "document_type", IDs: ids}}

		encoded := EncodeListQuery(p).Get("document_type__id__in")
		parsed, err := ParseIDList(encoded)

		require.NoError(t, err)
		assert.Equal(t, ids, parsed)
	}
}

func TestDescribeFilters(t *testing.T) {
	p := listParams()
	p.SearchOptions.Query = "tax"
	p.Filters = domain.FilterSet{
		IDSets:       []domain.IDSetFilter{{Field: "tags", IDs: domain.IDList{1, 2}}, {Field: "correspondent", IDs: nil}},
		CreatedAfter: "2024-01-01",
	}

	assert.Equal(t, []string{`query "tax"`, "tags (IDs: 1, 2)", "created after 2024-01-01"}, describeFilters(p))
	assert.Empty(t, describeFilters(listParams()))

	applied := appliedFilters(p)
	assert.Equal(t, []int{1, 2}, applied["tags"])
	assert.NotContains(t, applied, "correspondent")
	assert.Equal(t, "2024-01-01", applied["created__date__gt"])
}

package domain

import (
	"strconv"
	"strings"
)

// Ordering tokens accepted by the document list operation.
const (
	OrderingCreatedDesc = "-created"
	OrderingCreatedAsc  = "created"
	OrderingTitleAsc    = "title"
	OrderingTitleDesc   = "-title"
	OrderingRelevance   = ""
)

// Parameter defaults.
const (
	DefaultListLimit          = 25
	DefaultBinaryPropertyName = "data"
	DefaultTagColor           = "#a6cee3"
)

// Orderings returns every accepted ordering token.
func Orderings() []string {
	return []string{OrderingCreatedDesc, OrderingCreatedAsc, OrderingTitleAsc, OrderingTitleDesc, OrderingRelevance}
}

// IDList is an ordered set of numeric entity IDs.
type IDList []int

// Join returns the IDs as a single comma-separated string.
func (l IDList) Join(sep string) string {
	parts := make([]string, len(l))
	for i, id := range l {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}

// Strings returns each ID formatted as a decimal string.
func (l IDList) Strings() []string {
	out := make([]string, len(l))
	for i, id := range l {
		out[i] = strconv.Itoa(id)
	}
	return out
}

// DocumentCreateParams are the inputs of document:create.
type DocumentCreateParams struct {
	// File names the item binary holding the document.
	File string `mapstructure:"file"`

	AdditionalFields DocumentCreateFields `mapstructure:"additional_fields"`
}

// DocumentCreateFields is the optional upload metadata. Zero values are
// not sent.
type DocumentCreateFields struct {
	Title               string `mapstructure:"title"`
	Created             string `mapstructure:"created"`
	Correspondent       int    `mapstructure:"correspondent"`
	DocumentType        int    `mapstructure:"document_type"`
	StoragePath         int    `mapstructure:"storage_path"`
	ArchiveSerialNumber string `mapstructure:"archive_serial_number"`
	Tags                IDList `mapstructure:"tags"`
	CustomFields        IDList `mapstructure:"custom_fields"`
}

// DocumentReadParams are the inputs of document:read.
type DocumentReadParams struct {
	AdditionalFields struct {
		Search string `mapstructure:"search"`
	} `mapstructure:"additional_fields"`
}

// DocumentListParams are the inputs of document:list.
type DocumentListParams struct {
	SearchOptions SearchOptions `mapstructure:"search_options"`

	// RawFilters holds the filter collection as supplied. It is turned
	// into Filters by the parameter decoder.
	RawFilters map[string]any `mapstructure:"filters"`

	Filters FilterSet `mapstructure:"-"`

	Limit    int    `mapstructure:"limit"`
	Ordering string `mapstructure:"ordering"`
}

// SearchOptions holds the full-text and similarity search inputs.
type SearchOptions struct {
	Query string `mapstructure:"query"`

	// MoreLikeID is kept as text; it is only sent when it parses to a
	// positive number.
	MoreLikeID string `mapstructure:"more_like_id"`
}

// IDSetSuffix marks a filter key selecting any of a set of IDs.
const IDSetSuffix = "__id__in"

// Date bound filter keys.
const (
	FilterCreatedAfter  = "created__date__gt"
	FilterCreatedBefore = "created__date__lt"
)

// FilterSet is the typed form of the document list filters.
type FilterSet struct {
	// IDSets holds the "<field>__id__in" filters in key order.
	IDSets []IDSetFilter

	// CreatedAfter and CreatedBefore are YYYY-MM-DD date bounds.
	CreatedAfter  string
	CreatedBefore string

	// Extra holds any other scalar filter, passed through as text.
	Extra map[string]string
}

// IDSetFilter selects documents whose Field matches any of IDs.
type IDSetFilter struct {
	// Field is the base field name (e.g., "tags").
	Field string
	IDs   IDList
}

// Key returns the query key (e.g., "tags__id__in").
func (f IDSetFilter) Key() string {
	return f.Field + IDSetSuffix
}

// DocumentUpdateParams are the inputs of document:update.
type DocumentUpdateParams struct {
	ID           int                  `mapstructure:"id"`
	UpdateFields DocumentUpdateFields `mapstructure:"update_fields"`
}

// DocumentUpdateFields holds the fields to change. Nil fields are left
// untouched on the server.
type DocumentUpdateFields struct {
	Title               *string `mapstructure:"title"`
	Created             *string `mapstructure:"created"`
	Correspondent       *int    `mapstructure:"correspondent"`
	DocumentType        *int    `mapstructure:"document_type"`
	StoragePath         *int    `mapstructure:"storage_path"`
	ArchiveSerialNumber *string `mapstructure:"archive_serial_number"`
	Tags                *IDList `mapstructure:"tags"`

	// CustomFields is either JSON text or an already decoded value.
	CustomFields any `mapstructure:"custom_fields"`

	// Rest holds any other field, sent to the server verbatim.
	Rest map[string]any `mapstructure:",remain"`
}

// DocumentDownloadParams are the inputs of document:download.
type DocumentDownloadParams struct {
	ID                 int    `mapstructure:"id"`
	BinaryPropertyName string `mapstructure:"binary_property_name"`
}

// CorrespondentCreateParams are the inputs of correspondent:create.
type CorrespondentCreateParams struct {
	Name          string `mapstructure:"name"`
	MatchingRegex string `mapstructure:"matching_regex"`
}

// TagCreateParams are the inputs of tag:create.
type TagCreateParams struct {
	Name          string `mapstructure:"name"`
	Color         string `mapstructure:"color"`
	MatchingRegex string `mapstructure:"matching_regex"`
}

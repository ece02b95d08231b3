package domain

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// BinaryData is a named byte blob attached to an item or output record.
// Either Data holds the bytes inline or ID references bytes kept in a
// BinaryStore.
type BinaryData struct {
	// ID references stored bytes. Empty when Data is inline.
	ID string `json:"id,omitempty"`

	// FileName is the original or suggested file name.
	FileName string `json:"file_name,omitempty"`

	// MimeType is the content type (e.g., "application/pdf").
	MimeType string `json:"mime_type,omitempty"`

	// FileSize is the size of the content in bytes.
	FileSize int64 `json:"file_size,omitempty"`

	// Data holds the bytes when they are carried inline.
	Data []byte `json:"data,omitempty"`
}

// Item is one unit of workflow input.
type Item struct {
	// JSON is the item's data payload.
	JSON map[string]any `json:"json"`

	// Binary holds named binary attachments.
	Binary map[string]BinaryData `json:"binary,omitempty"`

	// Params holds parameter values evaluated for this item. They override
	// the execution-wide parameters key by key.
	Params map[string]any `json:"params,omitempty"`
}

// Execution is one run of an action over a batch of items.
type Execution struct {
	// Items is the ordered input batch.
	Items []Item

	// Parameters are the execution-wide parameter values, including
	// "resource" and "operation".
	Parameters map[string]any

	// ContinueOnFail captures per-item failures as data instead of
	// aborting the run.
	ContinueOnFail bool
}

// ParamsFor returns the effective parameters of item i: the execution-wide
// parameters overlaid key by key with the item's own. An item key replaces
// the whole execution-wide value, nested maps included. When normalise is
// set, both maps pass through it before the overlay so that differently
// spelled keys for the same field collide and the item wins.
func (e *Execution) ParamsFor(i int, normalise func(map[string]any) map[string]any) map[string]any {
	if normalise == nil {
		normalise = func(m map[string]any) map[string]any { return m }
	}

	merged := make(map[string]any, len(e.Parameters))
	for k, v := range normalise(e.Parameters) {
		merged[k] = v
	}
	if i >= 0 && i < len(e.Items) {
		for k, v := range normalise(e.Items[i].Params) {
			merged[k] = v
		}
	}
	return merged
}

// DetectMimeType derives a content type from the file extension, falling
// back to sniffing the content.
func DetectMimeType(data []byte, fileName string) string {
	if ext := filepath.Ext(fileName); ext != "" {
		if t := mime.TypeByExtension(strings.ToLower(ext)); t != "" {
			return t
		}
	}
	return http.DetectContentType(data)
}

package domain

import (
	"net/http"
	"net/url"
)

// ResponseMode selects how a response body is interpreted.
type ResponseMode int

const (
	// ResponseJSON expects a JSON body and sends Accept: application/json.
	ResponseJSON ResponseMode = iota

	// ResponseRaw returns the body bytes untouched and sends Accept: */*.
	ResponseRaw
)

// RequestSpec describes one outbound HTTP call. URL is either absolute or a
// path relative to the configured Paperless-ngx base URL.
type RequestSpec struct {
	Method  string
	URL     string
	Headers map[string]string
	Query   url.Values

	// Body is encoded as JSON. Ignored when Form is set.
	Body any

	// Form is sent as multipart/form-data.
	Form *MultipartForm

	Mode ResponseMode
}

// MultipartForm is a multipart/form-data body.
type MultipartForm struct {
	// Fields holds the text parts. Repeated keys produce repeated parts.
	Fields url.Values

	// Files holds the file parts.
	Files []FormFile
}

// FormFile is one file part of a multipart body.
type FormFile struct {
	Field       string
	FileName    string
	ContentType string
	Data        []byte
}

// Response is a successful HTTP reply.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// PaginationOptions controls how a paginated request advances.
type PaginationOptions struct {
	// Next returns the absolute URL of the following page, or "" when the
	// response is the last page.
	Next func(*Response) (string, error)
}

package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// API paths relative to the instance base URL.
const (
	PathDocuments      = "/api/documents/"
	PathPostDocument   = "/api/documents/post_document/"
	PathCorrespondents = "/api/correspondents/"
	PathDocumentTypes  = "/api/document_types/"
	PathTags           = "/api/tags/"
)

// DocumentPath returns the path of a single document.
func DocumentPath(id int) string {
	return PathDocuments + strconv.Itoa(id) + "/"
}

// DocumentDownloadPath returns the download path of a document.
func DocumentDownloadPath(id int) string {
	return DocumentPath(id) + "download/"
}

// Page is one page of a Paperless-ngx collection response.
type Page struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  json.RawMessage `json:"results"`
}

// CorrespondentCreate is the body of POST /api/correspondents/.
type CorrespondentCreate struct {
	Name          string `json:"name"`
	MatchingRegex string `json:"matching_regex,omitempty"`
}

// TagCreate is the body of POST /api/tags/.
type TagCreate struct {
	Name          string `json:"name"`
	Color         string `json:"color"`
	MatchingRegex string `json:"matching_regex,omitempty"`
}

// DocumentPatch is the body of PATCH /api/documents/{id}/.
type DocumentPatch struct {
	Title               *string `json:"title,omitempty"`
	Created             *string `json:"created,omitempty"`
	Correspondent       *int    `json:"correspondent,omitempty"`
	DocumentType        *int    `json:"document_type,omitempty"`
	StoragePath         *int    `json:"storage_path,omitempty"`
	ArchiveSerialNumber *string `json:"archive_serial_number,omitempty"`
	Tags                *IDList `json:"tags,omitempty"`
	CustomFields        any     `json:"custom_fields,omitempty"`

	// Extra fields are written alongside the typed ones. A typed field wins
	// over an Extra entry with the same key.
	Extra map[string]any `json:"-"`
}

// MarshalJSON writes the typed fields merged with Extra.
func (p DocumentPatch) MarshalJSON() ([]byte, error) {
	type plain DocumentPatch
	data, err := json.Marshal(plain(p))
	if err != nil || len(p.Extra) == 0 {
		return data, err
	}

	merged := make(map[string]json.RawMessage, len(p.Extra))
	for k, v := range p.Extra {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("patch field %s: %w", k, err)
		}
		merged[k] = raw
	}
	var typed map[string]json.RawMessage
	if err := json.Unmarshal(data, &typed); err != nil {
		return nil, err
	}
	for k, v := range typed {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// DocumentUpload is the metadata sent with POST /api/documents/post_document/.
type DocumentUpload struct {
	Title               string
	Created             string
	Correspondent       int
	DocumentType        int
	StoragePath         int
	ArchiveSerialNumber string
	Tags                IDList
	CustomFields        IDList
}

// Fields returns the multipart text fields. Empty values are omitted and
// list values repeat their key once per ID.
func (u DocumentUpload) Fields() url.Values {
	fields := url.Values{}
	setString := func(key, v string) {
		if v != "" {
			fields.Set(key, v)
		}
	}
	setInt := func(key string, v int) {
		if v != 0 {
			fields.Set(key, strconv.Itoa(v))
		}
	}

	setString("title", u.Title)
	setString("created", u.Created)
	setInt("correspondent", u.Correspondent)
	setInt("document_type", u.DocumentType)
	setInt("storage_path", u.StoragePath)
	setString("archive_serial_number", u.ArchiveSerialNumber)
	for _, id := range u.Tags.Strings() {
		fields.Add("tags", id)
	}
	for _, id := range u.CustomFields.Strings() {
		fields.Add("custom_fields", id)
	}
	return fields
}

// Option is one selectable value of a picker (tag, correspondent or
// document type).
type Option struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

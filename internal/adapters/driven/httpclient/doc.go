// Package httpclient implements the Requester port against a Paperless-ngx
// instance.
//
// Requests are authenticated with the instance API token
// ("Authorization: Token <token>"), paced by a token bucket and resolved
// against the configured base URL. Paginated requests follow the "next"
// link of each page until the last page.
package httpclient

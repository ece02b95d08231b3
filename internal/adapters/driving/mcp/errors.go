// Package mcp provides an MCP (Model Context Protocol) server adapter for
// paperless. It exposes every Paperless-ngx action as a tool so AI
// assistants can search, upload and organise documents.
package mcp

import "errors"

// ErrMissingActionRunner is returned when the action runner is not provided.
var ErrMissingActionRunner = errors.New("mcp: action runner is required")

// ErrUnknownOptionList is returned for an unsupported list_options entity.
var ErrUnknownOptionList = errors.New("mcp: unknown option list")

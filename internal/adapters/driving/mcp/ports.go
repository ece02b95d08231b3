package mcp

import (
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driving"
)

// BinaryStore is the store the action runner prepares downloads in.
// Binaries are deleted once they have been returned to the client.
type BinaryStore interface {
	driven.BinaryStore
	Delete(id string)
}

// Ports aggregates all interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Actions runs Paperless-ngx actions.
	Actions driving.ActionRunner

	// Options lists tag, correspondent and document type IDs.
	Options driving.OptionsLoader

	// Binaries holds downloaded files between the action and the reply.
	Binaries BinaryStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Actions == nil {
		return ErrMissingActionRunner
	}
	// Options and Binaries are optional
	return nil
}

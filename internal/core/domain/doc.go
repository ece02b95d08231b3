// Package domain defines the core types for the Paperless-ngx action adapter.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Action: a valid (resource, operation) pair
//   - Item: one unit of workflow input (JSON, binary attachments, parameters)
//   - OutputRecord: one normalised unit of result data
//   - RequestSpec / Response: the outbound HTTP request and its raw reply
//   - Parameter structs: the strongly-typed inputs of each action
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

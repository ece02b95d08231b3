// Package cli provides the command-line interface for paperless.
//
// Every Paperless-ngx action is exposed as a subcommand
// ("paperless document list", "paperless tag create", ...). Commands build
// a one-item execution and hand it to the action runner; results are
// printed as JSON lines. "paperless run" executes an action over a batch
// of items read from a YAML or JSON file.
package cli

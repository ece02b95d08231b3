// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem through afero, so
// tests can run against an in-memory filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
package file

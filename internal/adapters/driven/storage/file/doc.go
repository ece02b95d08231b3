// Package file provides a filesystem-backed binary store.
//
// Each stored binary is written to its own file named by a random UUID
// under the configured directory (default ~/.paperless/binary). The
// filesystem is abstracted with afero so tests can run in memory.
package file

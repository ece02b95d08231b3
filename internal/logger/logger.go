// Package logger provides process-wide logging for the Paperless CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow requests and pagination.
//
// Messages go through a shared hclog root logger. Named returns a
// sub-logger for key/value logging; it follows later SetVerbose and
// SetOutput calls.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  = &switchWriter{w: os.Stderr}
	root    = hclog.New(&hclog.LoggerOptions{
		Name:   "paperless",
		Level:  hclog.Warn,
		Output: output,
	})
)

// switchWriter lets the output be replaced without rebuilding loggers.
type switchWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *switchWriter) set(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w = w
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		root.SetLevel(hclog.Debug)
	} else {
		root.SetLevel(hclog.Warn)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	output.set(w)
}

// Named returns a sub-logger for a component (e.g., "httpclient").
func Named(name string) hclog.Logger {
	return root.Named(name)
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	root.Debug(fmt.Sprintf(format, args...))
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	if IsVerbose() {
		_, _ = fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info logs an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	root.Info(fmt.Sprintf(format, args...))
}

// Warn logs a warning message. Warnings are shown without --verbose.
func Warn(format string, args ...any) {
	root.Warn(fmt.Sprintf(format, args...))
}

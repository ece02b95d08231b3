package filesystem

import (
	"net/url"
	"strings"
)

// LocalPath converts a file reference to a local path.
// Handles file:// URIs (with percent-encoding) and bare paths.
func LocalPath(ref string) string {
	if !strings.HasPrefix(ref, "file://") {
		// Bare paths pass through unchanged
		return ref
	}
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		return u.Path
	}
	return strings.TrimPrefix(ref, "file://")
}

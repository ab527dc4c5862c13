package browser

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/martinemde/aip/aipparser"
)

// DefaultExtension is appended to targets that name a node rather than a file.
const DefaultExtension = ".aip.txt"

// Resolver maps an edge target to the next location to load. Node files are
// assumed to live side by side in one directory, so aip:// URIs and
// absolute paths resolve to siblings of the current file.
type Resolver struct {
	Extension string
}

// NewResolver returns a Resolver using DefaultExtension.
func NewResolver() Resolver {
	return Resolver{Extension: DefaultExtension}
}

// Resolve returns the location reached by following target from current.
// It performs no I/O.
func (r Resolver) Resolve(current, target string) string {
	dir := filepath.Dir(current)

	switch {
	case target == aipparser.TargetSelf:
		return current

	case strings.HasPrefix(target, "aip://"):
		name := strings.TrimLeft(aipPath(target), "/")
		if name == "" {
			name = "root"
		}
		return filepath.Join(dir, name+r.Extension)

	case strings.HasPrefix(target, "/"):
		return filepath.Join(dir, strings.TrimLeft(target, "/")+r.Extension)

	default:
		return filepath.Join(dir, target)
	}
}

// aipPath returns the path component of an aip:// URI.
func aipPath(target string) string {
	if u, err := url.Parse(target); err == nil {
		return u.Path
	}
	_, path, ok := strings.Cut(strings.TrimPrefix(target, "aip://"), "/")
	if !ok {
		return ""
	}
	return path
}

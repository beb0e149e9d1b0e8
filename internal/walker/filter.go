package walker

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// unpublished are names left out of builds besides dotfiles.
var unpublished = map[string]bool{
	"node_modules": true,
	"thumbs.db":    true,
	"desktop.ini":  true,
}

// Unpublished reports whether a file or directory name is kept out of the
// site: dotfiles, editor backups and tool directories.
func Unpublished(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") {
		return true
	}
	return unpublished[strings.ToLower(name)]
}

// HiddenPath reports whether any segment of the slash-separated relPath is
// unpublished.
func HiddenPath(relPath string) bool {
	for _, seg := range strings.Split(path.Clean("/"+relPath), "/") {
		if seg != "" && Unpublished(seg) {
			return true
		}
	}
	return false
}

// PageFilter selects the pages of a public directory by glob. A file is a
// page when it matches Include (or Include is empty) and does not match
// Exclude. Patterns are tried against the relative path and the base name.
type PageFilter struct {
	Include []string
	Exclude []string
}

// Validate reports the first malformed pattern.
func (f PageFilter) Validate() error {
	for _, p := range append(append([]string(nil), f.Include...), f.Exclude...) {
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			return fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return nil
}

// Selects reports whether relPath is a page candidate.
func (f PageFilter) Selects(relPath string) bool {
	if len(f.Include) > 0 && !matchesAny(relPath, f.Include) {
		return false
	}
	return !matchesAny(relPath, f.Exclude)
}

func matchesAny(relPath string, patterns []string) bool {
	rel := filepath.ToSlash(relPath)
	base := path.Base(rel)
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
	}
	return false
}

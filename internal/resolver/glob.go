package resolver

import (
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandGlob resolves a doublestar pattern (supporting "**") against the OS
// filesystem and returns every matching file as an absolute path, sorted.
// Grounded on bennypowers-mappa's cmd/trace --glob flag.
func ExpandGlob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		abs, err := filepath.Abs(m)
		if err != nil {
			return nil, err
		}
		out = append(out, abs)
	}
	sort.Strings(out)
	return out, nil
}

package ingest

import (
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/revenue-parser/constants"
)

type extSet map[string]struct{}

// extensionSet builds the filter for includeExts, or the default statement
// extensions when none are given.
func extensionSet(includeExts []string) extSet {
	exts := extSet{}
	for _, e := range includeExts {
		if e = constants.NormalizeExt(e); e != "" {
			exts[e] = struct{}{}
		}
	}
	if len(exts) == 0 {
		for e := range constants.AllowedExtensions {
			exts[e] = struct{}{}
		}
	}
	return exts
}

func (s extSet) allows(path string) bool {
	_, ok := s[constants.NormalizeExt(filepath.Ext(path))]
	return ok
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}

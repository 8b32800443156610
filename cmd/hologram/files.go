package main

import (
	"io/fs"
	"path"
	"strings"
)

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := paths[:0:0]
	for _, p := range paths {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// missingFiles returns the paths that do not exist in fsys. Paths are
// cleaned the way the asset fetcher cleans them.
func missingFiles(fsys fs.FS, paths []string) []string {
	var missing []string
	for _, p := range paths {
		name := strings.TrimPrefix(path.Clean("/"+p), "/")
		if _, err := fs.Stat(fsys, name); err != nil {
			missing = append(missing, p)
		}
	}
	return missing
}

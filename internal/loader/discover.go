package loader

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// FindYAMLFiles returns every *.yaml file under root, sorted, skipping
// paths matched by an exclude glob. Globs are matched against the
// forward-slash path relative to root:
//
//	"drafts/**"  the drafts directory and everything beneath it
//	"*/old.yaml" filepath.Match semantics, * does not cross /
//
// A leading "./" in a pattern is ignored.
func FindYAMLFiles(root string, exclude []string) ([]string, error) {
	patterns := make([]string, 0, len(exclude))
	for _, p := range exclude {
		if p = strings.TrimPrefix(strings.TrimSpace(p), "./"); p != "" {
			patterns = append(patterns, p)
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel != "." && isExcluded(patterns, rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && filepath.Ext(path) == ".yaml" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

func isExcluded(patterns []string, rel string) bool {
	for _, p := range patterns {
		if matchPattern(p, rel) {
			return true
		}
	}
	return false
}

// matchPattern reports whether path matches glob. "prefix/**" matches the
// prefix itself and every path beneath it.
func matchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	matched, _ := filepath.Match(pattern, path)
	return matched
}

package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// discoverer expands command-line paths into the list of files to lint.
type discoverer struct {
	extensions []string
	exclude    []string
}

// files returns the files named by roots in order. Explicit files are taken
// as is; directories are walked for files with a configured extension,
// skipping excluded paths. An empty roots list walks ".".
func (d *discoverer) files(roots []string) ([]string, error) {
	if len(roots) == 0 {
		roots = []string{"."}
	}

	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, e fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && d.excluded(root, path) {
				if e.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !e.IsDir() && d.matches(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}

	return out, nil
}

// matches reports whether path has one of the configured extensions.
func (d *discoverer) matches(path string) bool {
	return slices.Contains(d.extensions, filepath.Ext(path))
}

// excluded reports whether path, or any element of it relative to root,
// matches an exclude pattern.
func (d *discoverer) excluded(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range d.exclude {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}

// watched reports whether the watcher should follow path.
func (d *discoverer) watched(path string, isDir bool) bool {
	if d.excluded(filepath.Dir(path), path) {
		return false
	}
	return isDir || d.matches(path)
}

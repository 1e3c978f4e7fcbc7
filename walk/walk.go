// Package walk enumerates the candidate files of a project tree, honoring
// every .gitignore it encounters along the way.
package walk

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"depscan/internal/ignore"
	"depscan/logger"
)

// IgnoreFileName is the per-directory ignore file the walker loads.
const IgnoreFileName = ".gitignore"

// Collect walks root depth-first and returns the root-relative paths of all
// files that survive the ignore rules, sorted. Extra patterns behave as if
// they were appended to an ignore file at the root. A missing root yields an
// empty list; an unreadable root is an error. Deeper read failures are
// logged and the affected directory is skipped.
func Collect(root string, extraPatterns []string, log logger.Logger) ([]string, error) {
	if log == nil {
		log = logger.Nop{}
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		log.Debugf("root %s does not exist, nothing to scan", root)
		return nil, nil
	}

	set := ignore.NewSet()
	base := ignore.Compile(ignore.DefaultPatterns())
	base.AddPatterns(extraPatterns)
	set.Add("", base)

	w := walker{root: root, set: set, log: log}
	if err := w.dir("", true); err != nil {
		return nil, err
	}
	sort.Strings(w.files)
	return w.files, nil
}

type walker struct {
	root  string
	set   *ignore.Set
	log   logger.Logger
	files []string
}

// dir scans one directory. rel is root-relative, "" for the root itself.
// Only a failure to read the root is fatal.
func (w *walker) dir(rel string, isRoot bool) error {
	abs := filepath.Join(w.root, filepath.FromSlash(rel))

	m := ignore.NewMatcher()
	if err := m.LoadFile(filepath.Join(abs, IgnoreFileName)); err != nil {
		w.log.Errorf("reading %s in %s: %v", IgnoreFileName, abs, err)
	}
	w.set.Add(rel, m)

	entries, err := os.ReadDir(abs)
	if err != nil {
		if isRoot {
			return fmt.Errorf("reading scan root: %w", err)
		}
		w.log.Errorf("reading directory %s: %v", abs, err)
		return nil
	}

	for _, e := range entries {
		childRel := e.Name()
		if rel != "" {
			childRel = rel + "/" + e.Name()
		}
		if w.set.Ignored(childRel, e.IsDir()) {
			w.log.Debugf("ignoring %s", childRel)
			continue
		}
		if e.IsDir() {
			if err := w.dir(childRel, false); err != nil {
				return err
			}
			continue
		}
		w.files = append(w.files, childRel)
	}
	return nil
}

// Package walker expands the CLI's FILE positional argument (a path, a
// glob pattern, or a directory) into a concrete, ordered list of file
// paths. It is the external collaborator spec.md §6 names but does not
// specify beyond its contract: relative glob patterns, parent-directory
// rejection, and symlinks skipped with a warning during directory walks.
//
// Grounded on core/filewalker.go's worker-pool directory scanner from the
// teacher repo, rewritten around doublestar (already a teacher dependency)
// for glob expansion instead of a hand-rolled matcher, and simplified to
// the single-pass ordered-listing contract the CLI actually needs — the
// per-file worker pool that does the transformation work lives in
// cmd/skim, not here.
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/oxhq/skim/catalog"
)

// Warning is a non-fatal diagnostic collected while expanding a target,
// e.g. a symlink skipped during a directory walk.
type Warning struct {
	Path    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Path, w.Message)
}

// ErrParentTraversal is returned when target contains a literal ".."
// component, matching the path-traversal rejection spec.md §6 and §4.1
// require of every path-accepting entry point.
type ErrParentTraversal struct {
	Path string
}

func (e *ErrParentTraversal) Error() string {
	return fmt.Sprintf("path traversal rejected: %q contains a parent-directory component", e.Path)
}

// Expand resolves target into an ordered, de-duplicated list of file
// paths. target may be:
//   - "-", returned verbatim as the single-element result (stdin, handled
//     by the caller);
//   - a directory, walked recursively, skipping symlinks (with a
//     Warning) and any entry whose own path contains "..";
//   - a glob pattern (evaluated with doublestar, relative patterns only);
//   - a plain file path, returned as a single-element result if it exists.
func Expand(target string) ([]string, []Warning, error) {
	if target == "-" {
		return []string{"-"}, nil, nil
	}
	for _, part := range strings.Split(filepath.ToSlash(target), "/") {
		if part == ".." {
			return nil, nil, &ErrParentTraversal{Path: target}
		}
	}

	info, statErr := os.Lstat(target)
	if statErr == nil && info.IsDir() {
		return walkDir(target)
	}
	if statErr == nil && info.Mode().IsRegular() {
		return []string{target}, nil, nil
	}

	if hasMeta(target) {
		if filepath.IsAbs(target) {
			return nil, nil, fmt.Errorf("glob pattern must be relative: %q", target)
		}
		matches, err := doublestar.FilepathGlob(target)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid glob pattern %q: %w", target, err)
		}
		sort.Strings(matches)
		return filterRegular(matches), nil, nil
	}

	return nil, nil, fmt.Errorf("no files matched: %q", target)
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func filterRegular(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if info, err := os.Lstat(p); err == nil && info.Mode().IsRegular() {
			out = append(out, p)
		}
	}
	return out
}

// walkDir recursively lists a directory's files in sorted order,
// skipping symlinks (recorded as a Warning) rather than following them.
func walkDir(root string) ([]string, []Warning, error) {
	var files []string
	var warnings []Warning

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			warnings = append(warnings, Warning{Path: path, Message: err.Error()})
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 {
			warnings = append(warnings, Warning{Path: path, Message: "symlink skipped"})
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := catalog.FromPath(path); !ok {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, warnings, err
	}
	sort.Strings(files)
	return files, warnings, nil
}

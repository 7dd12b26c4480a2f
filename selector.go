package fsops

import (
	"context"
	"strings"

	"github.com/gobwas/glob"
)

// FileSelector defines the interface for filtering files during listing
// operations.
//
// Selectors are composable (And, Or, Not) and drivers may inspect them for
// native optimizations.
type FileSelector interface {
	// Match returns true if the file should be included in results.
	Match(file *FileInfo) bool

	// TraverseDescendants returns true if directory descendants should be
	// traversed. This enables early termination for deep directory trees.
	// Only called for directories (file.IsDir == true).
	TraverseDescendants(file *FileInfo) bool
}

// ListWithSelector lists files matching the given selector.
// Set recursive to true for deep traversal.
//
// Example:
//
//	// List all JPEG files recursively
//	files, err := fsops.ListWithSelector(ctx, fs, "images", fsops.MustGlob("**/*.jpg"), true)
func ListWithSelector(ctx context.Context, fs FileReader, path string, selector FileSelector, recursive bool) ([]FileInfo, error) {
	if selector == nil {
		selector = All()
	}

	var results []FileInfo
	if err := listRecursive(ctx, fs, path, selector, recursive, &results); err != nil {
		return nil, err
	}

	return results, nil
}

func listRecursive(ctx context.Context, fs FileReader, path string, selector FileSelector, recursive bool, results *[]FileInfo) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	files, err := fs.ListContents(ctx, path, false)
	if err != nil {
		return err
	}

	for i := range files {
		file := &files[i]

		if file.IsDir {
			if recursive && selector.TraverseDescendants(file) {
				if err := listRecursive(ctx, fs, file.Path, selector, recursive, results); err != nil {
					return err
				}
			}
		} else if selector.Match(file) {
			*results = append(*results, *file)
		}
	}

	return nil
}

// AllSelector matches all files and traverses all directories.
type AllSelector struct{}

func (s AllSelector) Match(file *FileInfo) bool               { return true }
func (s AllSelector) TraverseDescendants(file *FileInfo) bool { return true }

// All returns a selector that matches all files.
func All() FileSelector {
	return AllSelector{}
}

type globSelector struct {
	pattern string
	g       glob.Glob
}

// Glob creates a selector from a glob pattern. Patterns containing a path
// separator are matched against the full path ("config/*.json",
// "**/*.txt"); bare patterns match the file name ("*.txt").
func Glob(pattern string) (FileSelector, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, &PathError{Op: "glob", Path: pattern, Err: err}
	}
	return &globSelector{pattern: pattern, g: g}, nil
}

// MustGlob is like Glob but panics on an invalid pattern.
// Use for patterns known at compile time.
func MustGlob(pattern string) FileSelector {
	s, err := Glob(pattern)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *globSelector) Match(file *FileInfo) bool {
	if strings.ContainsRune(s.pattern, '/') {
		return s.g.Match(normalizePath(file.Path))
	}
	return s.g.Match(file.Name)
}

func (s *globSelector) TraverseDescendants(file *FileInfo) bool {
	return true
}

type depthSelector struct {
	maxDepth int
	basePath string
}

// Depth limits traversal to maxDepth levels.
// Depth 1 = immediate children only.
func Depth(maxDepth int, basePath string) FileSelector {
	return &depthSelector{
		maxDepth: maxDepth,
		basePath: strings.TrimSuffix(basePath, "/"),
	}
}

func (s *depthSelector) getDepth(path string) int {
	rel := strings.TrimPrefix(normalizePath(path), s.basePath)
	rel = strings.Trim(rel, "/")
	if rel == "" {
		return 0
	}
	return strings.Count(rel, "/") + 1
}

func (s *depthSelector) Match(file *FileInfo) bool {
	return s.getDepth(file.Path) <= s.maxDepth
}

func (s *depthSelector) TraverseDescendants(file *FileInfo) bool {
	return s.getDepth(file.Path) < s.maxDepth
}

type andSelector struct {
	selectors []FileSelector
}

// And matches only if ALL selectors match.
func And(selectors ...FileSelector) FileSelector {
	return &andSelector{selectors: selectors}
}

func (s *andSelector) Match(file *FileInfo) bool {
	for _, sel := range s.selectors {
		if !sel.Match(file) {
			return false
		}
	}
	return true
}

func (s *andSelector) TraverseDescendants(file *FileInfo) bool {
	for _, sel := range s.selectors {
		if sel.TraverseDescendants(file) {
			return true
		}
	}
	return false
}

type orSelector struct {
	selectors []FileSelector
}

// Or matches if ANY selector matches.
func Or(selectors ...FileSelector) FileSelector {
	return &orSelector{selectors: selectors}
}

func (s *orSelector) Match(file *FileInfo) bool {
	for _, sel := range s.selectors {
		if sel.Match(file) {
			return true
		}
	}
	return false
}

func (s *orSelector) TraverseDescendants(file *FileInfo) bool {
	for _, sel := range s.selectors {
		if sel.TraverseDescendants(file) {
			return true
		}
	}
	return false
}

type notSelector struct {
	selector FileSelector
}

// Not inverts a selector's match result.
func Not(selector FileSelector) FileSelector {
	return &notSelector{selector: selector}
}

func (s *notSelector) Match(file *FileInfo) bool {
	return !s.selector.Match(file)
}

func (s *notSelector) TraverseDescendants(file *FileInfo) bool {
	return true
}

type funcSelector struct {
	matchFn    func(*FileInfo) bool
	traverseFn func(*FileInfo) bool
}

// FuncSelector creates a selector from a custom function.
// This is the escape hatch for any filtering logic not covered by built-ins.
func FuncSelector(fn func(*FileInfo) bool) FileSelector {
	return &funcSelector{
		matchFn:    fn,
		traverseFn: func(*FileInfo) bool { return true },
	}
}

// FuncSelectorFull creates a selector with custom match and traverse functions.
func FuncSelectorFull(matchFn, traverseFn func(*FileInfo) bool) FileSelector {
	return &funcSelector{
		matchFn:    matchFn,
		traverseFn: traverseFn,
	}
}

func (s *funcSelector) Match(file *FileInfo) bool               { return s.matchFn(file) }
func (s *funcSelector) TraverseDescendants(file *FileInfo) bool { return s.traverseFn(file) }

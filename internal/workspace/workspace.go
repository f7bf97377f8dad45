// Package workspace pins the project directory a run operates in: path
// resolution against the root, boundary checks, and the directory
// snapshot shown to the model.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// -- Sentinels --

var (
	ErrOutsideRoot  = fmt.Errorf("path is outside the workspace")
	ErrRootNotSet   = fmt.Errorf("workspace root is not set")
	ErrNotDirectory = fmt.Errorf("workspace root is not a directory")
)

// RootError reports an unusable workspace root.
type RootError struct {
	Root  string
	Cause error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("invalid workspace root %s: %v", e.Root, e.Cause)
}

func (e *RootError) Unwrap() error { return e.Cause }

// Workspace is the canonical project root every file tool resolves
// against.
type Workspace struct {
	root    string
	ignorer Ignorer
}

// New canonicalises root and wraps it with the given ignorer. A nil
// ignorer means nothing is filtered from listings.
func New(root string, ignorer Ignorer) (*Workspace, error) {
	canonical, err := CanonicaliseRoot(root)
	if err != nil {
		return nil, err
	}
	if ignorer == nil {
		ignorer = NoIgnore{}
	}
	return &Workspace{root: canonical, ignorer: ignorer}, nil
}

// CanonicaliseRoot makes the root absolute, resolves symlinks and
// verifies it is an existing directory.
func CanonicaliseRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &RootError{Root: root, Cause: err}
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &RootError{Root: abs, Cause: err}
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", &RootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &RootError{Root: resolved, Cause: ErrNotDirectory}
	}
	return resolved, nil
}

// Root returns the canonical workspace root.
func (w *Workspace) Root() string {
	return w.root
}

// Abs resolves a path (relative paths against the root) and validates
// it stays inside the workspace boundary.
func (w *Workspace) Abs(path string) (string, error) {
	if w.root == "" {
		return "", ErrRootNotSet
	}
	var abs string
	if filepath.IsAbs(path) {
		abs = filepath.Clean(path)
	} else {
		abs = filepath.Clean(filepath.Join(w.root, path))
	}
	if abs != w.root && !strings.HasPrefix(abs, w.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return abs, nil
}

// Rel resolves a path like Abs and returns it relative to the root,
// slash-separated. The root itself maps to the empty string.
func (w *Workspace) Rel(path string) (string, error) {
	abs, err := w.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(w.root, abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

// List returns the lexicographically sorted names of the root's
// top-level entries, minus gitignored ones.
func (w *Workspace) List() ([]string, error) {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return nil, fmt.Errorf("list workspace: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if w.ignorer.ShouldIgnore(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Package pathguard confines generated files to a fixed set of directories
// under the user's home: Downloads, Documents and Desktop.
//
// Paths are resolved lexically (filepath.Abs cleans "." and ".." segments);
// symlinks on disk are not followed. Containment is decided segment by
// segment with filepath.Rel, so a sibling such as ~/Downloads2 never passes
// as a child of ~/Downloads.
package pathguard

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathNotAllowed indicates the resolved path lies outside every allowed root.
var ErrPathNotAllowed = errors.New("output path not allowed")

// ErrEmptyHome indicates the guard was built without a home directory.
var ErrEmptyHome = errors.New("home directory cannot be empty")

// Allowed root directory names, relative to the home directory.
const (
	DownloadsDir = "Downloads"
	DocumentsDir = "Documents"
	DesktopDir   = "Desktop"
)

// Guard validates output paths against its allowed roots.
// A Guard is immutable after New and safe for concurrent use.
type Guard struct {
	roots []string
}

// New builds a Guard whose roots are home/Downloads, home/Documents and
// home/Desktop, canonicalized once.
func New(home string) (*Guard, error) {
	if home == "" {
		return nil, ErrEmptyHome
	}

	absHome, err := filepath.Abs(home)
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}

	return &Guard{
		roots: []string{
			filepath.Join(absHome, DownloadsDir),
			filepath.Join(absHome, DocumentsDir),
			filepath.Join(absHome, DesktopDir),
		},
	}, nil
}

// Roots returns a copy of the canonical allowed roots, in declaration order.
func (g *Guard) Roots() []string {
	out := make([]string, len(g.roots))
	copy(out, g.roots)
	return out
}

// DefaultDir returns the directory used when a caller names no output directory.
func (g *Guard) DefaultDir() string {
	return g.roots[0]
}

// Validate resolves requestedPath to an absolute path and returns it if it
// is a proper descendant of one of the allowed roots.
func (g *Guard) Validate(requestedPath string) (string, error) {
	candidate, err := filepath.Abs(requestedPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPathNotAllowed, err)
	}

	for _, root := range g.roots {
		if isDescendant(root, candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s (must be within allowed directories: %s)",
		ErrPathNotAllowed, candidate, strings.Join(g.roots, ", "))
}

// Join combines dir and filename the way callers address outputs, then
// validates the result.
func (g *Guard) Join(dir, filename string) (string, error) {
	if dir == "" {
		dir = g.DefaultDir()
	}
	return g.Validate(filepath.Join(dir, filename))
}

// isDescendant reports whether candidate sits strictly below root.
// Both paths must already be absolute and clean.
func isDescendant(root, candidate string) bool {
	rel, err := filepath.Rel(root, candidate)
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." || filepath.IsAbs(rel) {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

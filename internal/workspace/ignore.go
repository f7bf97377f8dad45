package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Ignorer decides whether a workspace-relative path is hidden from
// directory listings.
type Ignorer interface {
	ShouldIgnore(relativePath string) bool
}

// NoIgnore never hides anything.
type NoIgnore struct{}

func (NoIgnore) ShouldIgnore(string) bool { return false }

// GitignoreMatcher filters paths through the root .gitignore using
// go-git's matcher.
type GitignoreMatcher struct {
	matcher gitignore.Matcher
}

// LoadGitignore reads <root>/.gitignore. A missing file yields a
// matcher that ignores nothing; a present-but-unreadable file is an
// error.
func LoadGitignore(root string) (*GitignoreMatcher, error) {
	content, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		if os.IsNotExist(err) {
			return &GitignoreMatcher{}, nil
		}
		return nil, err
	}
	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return &GitignoreMatcher{matcher: gitignore.NewMatcher(patterns)}, nil
}

// ShouldIgnore implements Ignorer.
func (g *GitignoreMatcher) ShouldIgnore(relativePath string) bool {
	if g.matcher == nil {
		return false
	}
	return g.matcher.Match(splitPath(relativePath), false)
}

// splitPath breaks a slash path into the segment list the gitignore
// matcher expects, dropping empty and "." parts.
func splitPath(path string) []string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}

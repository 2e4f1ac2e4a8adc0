package service

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/codewiki-dev/codewiki/domain"
)

// ArtifactLocatorImpl discovers the two input artifacts under the analyzed
// paths by glob matching. When several files match, the shallowest path
// (fewest separators) wins, ties broken lexicographically.
type ArtifactLocatorImpl struct{}

// NewArtifactLocator creates a new artifact locator
func NewArtifactLocator() *ArtifactLocatorImpl {
	return &ArtifactLocatorImpl{}
}

// Locate implements domain.ArtifactLocator
func (l *ArtifactLocatorImpl) Locate(paths []string, treePatterns, graphPatterns []string) (string, string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	treePath, err := l.findFirst(paths, treePatterns)
	if err != nil {
		return "", "", err
	}
	if treePath == "" {
		return "", "", domain.NewFileNotFoundError("module tree artifact (tried: "+joinPatterns(treePatterns)+")", nil)
	}

	graphPath, err := l.findFirst(paths, graphPatterns)
	if err != nil {
		return "", "", err
	}
	if graphPath == "" {
		return "", "", domain.NewFileNotFoundError("dependency graph artifact (tried: "+joinPatterns(graphPatterns)+")", nil)
	}

	return treePath, graphPath, nil
}

func (l *ArtifactLocatorImpl) findFirst(paths, patterns []string) (string, error) {
	var candidates []string

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return "", domain.NewFileNotFoundError(root, err)
		}

		// A direct file path is taken as-is when it matches any pattern base
		if !info.IsDir() {
			for _, pattern := range patterns {
				if matched, _ := doublestar.Match(filepath.Base(pattern), filepath.Base(root)); matched {
					candidates = append(candidates, root)
				}
			}
			continue
		}

		fsys := os.DirFS(root)
		for _, pattern := range patterns {
			matches, err := doublestar.Glob(fsys, pattern)
			if err != nil {
				return "", domain.NewInvalidInputError("invalid glob pattern: "+pattern, err)
			}
			for _, m := range matches {
				candidates = append(candidates, filepath.Join(root, filepath.FromSlash(m)))
			}
		}
	}

	if len(candidates) == 0 {
		return "", nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		di, dj := pathDepth(candidates[i]), pathDepth(candidates[j])
		if di != dj {
			return di < dj
		}
		return candidates[i] < candidates[j]
	})
	return candidates[0], nil
}

func pathDepth(path string) int {
	n := 0
	for _, r := range path {
		if r == filepath.Separator || r == '/' {
			n++
		}
	}
	return n
}

func joinPatterns(patterns []string) string {
	out := ""
	for i, p := range patterns {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

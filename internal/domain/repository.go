package domain

import (
	"regexp"
	"strings"
)

// RepositoryInfo identifies a Subversion repository and the working
// copy's offset within it.
type RepositoryInfo struct {
	// Root is the repository root URL, independent of any working-copy
	// offset.
	Root string

	// BasePath is the offset of the working copy (or a caller-supplied
	// target) relative to Root. Always begins with "/".
	BasePath string

	// UUID uniquely identifies the repository regardless of the URL
	// scheme it is reached through.
	UUID string
}

// SetBasePath overrides the working-copy offset. Used when an explicit
// target path is supplied on the command line before a diff run.
func (r *RepositoryInfo) SetBasePath(basePath string) {
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	r.BasePath = basePath
}

var slashRunRE = regexp.MustCompile(`/+`)

// RelativePath returns the portion of path below root, comparing
// slash-separated components while ignoring duplicate and trailing
// slashes. It returns "/" when the paths are equal and false when path
// is not relative to root.
func RelativePath(path, root string) (string, bool) {
	pathDirs := splitOnSlash(path)
	rootDirs := splitOnSlash(root)

	// Anything is relative to an empty root.
	if len(rootDirs) == 0 {
		return path, true
	}

	if len(rootDirs) > len(pathDirs) {
		return "", false
	}
	for i, dir := range rootDirs {
		if pathDirs[i] != dir {
			return "", false
		}
	}

	// The base path can't be empty, so two equal paths yield "/".
	if len(pathDirs) == len(rootDirs) {
		return "/", true
	}
	return "/" + strings.Join(pathDirs[len(rootDirs):], "/"), true
}

func splitOnSlash(path string) []string {
	parts := slashRunRE.Split(path, -1)
	result := parts[:0]
	for _, p := range parts {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

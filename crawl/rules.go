// Package crawl — file filtering rules.
// Decides which directory entries are documents worth converting.
package crawl

import (
	"path/filepath"
	"strings"
)

// convertibleExtensions are the inputs the pipeline can read.
var convertibleExtensions = map[string]bool{
	".md": true, ".markdown": true, ".mdown": true, ".mkd": true,
	".txt": true,
	".html": true, ".htm": true,
}

// skippedDirs are dependency and build folders that never hold documents
// worth converting.
var skippedDirs = map[string]bool{
	"node_modules": true, "vendor": true, "__pycache__": true,
}

// IsConvertible checks if a path has a supported document extension.
func IsConvertible(path string) bool {
	return convertibleExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsHidden reports dotfiles and dot-directories.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// IsSkippedDir reports directories excluded from recursive walks.
func IsSkippedDir(name string) bool {
	return skippedDirs[name]
}

// Package crawl provides input discovery for folder conversion.
// It walks a directory breadth-first, collecting convertible documents,
// keeping discovery separate from the conversion pipeline.
package crawl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// maxDirs bounds a folder walk to avoid runaway traversals.
const maxDirs = 10000

// Discover finds all convertible files under root. The root's own files
// come first in name order, then each subdirectory level in BFS order. Hidden entries
// are skipped and symlinks are not followed. When recursive is false only
// root itself is read.
func Discover(ctx context.Context, root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	root = filepath.Clean(root)
	dirs := NewQueue(maxDirs)
	dirs.Add(root)
	files := NewQueue(0)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dir, ok := dirs.Pop()
		if !ok {
			break
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			if dir == root {
				return nil, fmt.Errorf("listing %s: %w", dir, err)
			}
			continue // An unreadable subdirectory doesn't block the rest.
		}

		for _, e := range entries {
			if IsHidden(e.Name()) {
				continue
			}
			path := filepath.Join(dir, e.Name())
			switch {
			case e.IsDir():
				if recursive && !IsSkippedDir(e.Name()) {
					dirs.Add(path)
				}
			case e.Type().IsRegular() && IsConvertible(path):
				files.Add(path)
			}
		}
	}

	return files.Items(), nil
}

// Package crawl — BFS queue with deduplication.
// Paths are keyed by their cleaned form so "docs/" and "docs" are one entry.
package crawl

import "path/filepath"

// Queue is a FIFO of paths that accepts each path once and at most
// limit paths in total.
type Queue struct {
	items []string
	seen  map[string]struct{}
	head  int
	limit int
}

// NewQueue creates an empty Queue. A limit <= 0 means unbounded.
func NewQueue(limit int) *Queue {
	return &Queue{seen: make(map[string]struct{}), limit: limit}
}

// Add enqueues path and reports whether it was accepted. Repeats and
// paths beyond the limit are refused.
func (q *Queue) Add(path string) bool {
	key := filepath.Clean(path)
	if _, ok := q.seen[key]; ok {
		return false
	}
	if q.limit > 0 && len(q.items) >= q.limit {
		return false
	}
	q.seen[key] = struct{}{}
	q.items = append(q.items, path)
	return true
}

// Pop returns the next unprocessed path.
func (q *Queue) Pop() (string, bool) {
	if q.head >= len(q.items) {
		return "", false
	}
	p := q.items[q.head]
	q.head++
	return p, true
}

// Len returns the number of accepted paths.
func (q *Queue) Len() int {
	return len(q.items)
}

// Items returns every accepted path in insertion order.
func (q *Queue) Items() []string {
	return q.items
}

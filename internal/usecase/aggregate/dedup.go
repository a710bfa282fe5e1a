package aggregate

import "sync"

// Deduplicator tracks titles admitted during one aggregation run.
// Titles are compared by exact string equality. Safe for concurrent use.
type Deduplicator struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewDeduplicator returns an empty Deduplicator. Create one per run.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[string]struct{})}
}

// Admit records title and reports whether it was new.
// The check and the insert happen atomically.
func (d *Deduplicator) Admit(title string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[title]; ok {
		return false
	}
	d.seen[title] = struct{}{}
	return true
}

// Seen returns the number of distinct titles admitted so far.
func (d *Deduplicator) Seen() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

// Package dedupe tracks natural keys already seen during a run.
package dedupe

import (
	"sort"
	"sync"
)

// Deduper records seen keys in first-seen order. Safe for concurrent use.
type Deduper struct {
	mu       sync.Mutex
	seen     map[string]struct{}
	order    []string
	capacity int
}

// New creates an empty Deduper.
func New(opts ...Option) *Deduper {
	d := &Deduper{}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{}, d.capacity)
	return d
}

// SeenAndRecord reports whether key was already seen and records it if not.
func (d *Deduper) SeenAndRecord(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	d.order = append(d.order, key)
	return false
}

// Keys returns the recorded keys in first-seen order.
func (d *Deduper) Keys() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Sorted returns the recorded keys in lexicographic order.
func (d *Deduper) Sorted() []string {
	keys := d.Keys()
	sort.Strings(keys)
	return keys
}

// Distinct returns the distinct non-blank values in lexicographic order.
func Distinct(values []string) []string {
	d := New(WithCapacity(len(values)))
	for _, v := range values {
		if v == "" {
			continue
		}
		d.SeenAndRecord(v)
	}
	return d.Sorted()
}

// Package dedupe tracks detection event IDs for at-most-once ingestion.
//
// Upstream computer-vision services retry pushes, so the same detection
// can arrive more than once; the deduper is the idempotency gate in front
// of the ingestion queue.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records seen detection IDs.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it
	// if not. Returns true when id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an ID so the detection can be retried. Used when a
	// detection was recorded but could not be queued (backpressure).
	Unrecord(ctx context.Context, id string)

	Size() int64
}

// defaultMaxSize bounds memory when no option is given.
const defaultMaxSize = 50_000

// inMemoryDeduper implements Deduper with a map plus a FIFO ring of ids.
// When the bound is reached the oldest recorded id is evicted; with a
// bound sized well above the retry horizon this keeps duplicates caught
// without unbounded growth. A non-positive bound disables eviction.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string
	next    int
	maxSize int
	size    atomic.Int64
}

// New creates an in-memory deduper.
func New(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.ring = make([]string, d.maxSize)
	}
	return d
}

// SeenAndRecord implements Deduper.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if d.maxSize > 0 {
		if evicted := d.ring[d.next]; evicted != "" {
			if _, ok := d.seen[evicted]; ok {
				delete(d.seen, evicted)
				d.size.Add(-1)
			}
		}
		d.ring[d.next] = id
		d.next = (d.next + 1) % d.maxSize
	}
	d.seen[id] = struct{}{}
	d.size.Add(1)
	return false
}

// Unrecord implements Deduper. The ring slot is left in place; a stale
// slot only causes a harmless no-op at eviction time.
func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		delete(d.seen, id)
		d.size.Add(-1)
	}
}

// Size implements Deduper.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}

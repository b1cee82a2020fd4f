// Package queue provides the bounded in-memory queue between the
// detection intake and the ingestion workers.
package queue

import (
	"context"
	"sync"

	"github.com/fightlab/ringside/internal/domain/model"
	"github.com/fightlab/ringside/pkg/metrics"
)

// Default queue capacity.
const defaultCapacity = 100_000

// Detection is the payload type flowing through the queue.
type Detection = model.Detection

// Queue provides non-blocking enqueue and channel-based dequeue.
type Queue interface {
	// Enqueue adds a detection. Returns false when the queue is full or
	// closed; the caller decides how to surface backpressure.
	Enqueue(ctx context.Context, d Detection) bool

	// Dequeue returns a channel receiving detections as they become
	// available. The channel closes when the queue closes.
	Dequeue(ctx context.Context) <-chan Detection

	// Len returns the current number of queued detections.
	Len(ctx context.Context) int

	// Close stops the queue; enqueues fail afterwards and the dequeue
	// channel drains then closes.
	Close() error
}

// InMemoryQueue implements Queue on a buffered channel.
type InMemoryQueue struct {
	detections chan Detection
	capacity   int
	mu         sync.RWMutex
	closed     bool
}

// NewInMemoryQueue creates a bounded in-memory queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.detections = make(chan Detection, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0)
	return q
}

// Enqueue implements Queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, d Detection) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueRejection()
		return false
	}

	select {
	case q.detections <- d:
		metrics.RecordQueueEnqueue()
		q.observeSize()
		return true
	case <-ctx.Done():
		metrics.RecordQueueRejection()
		return false
	default:
		metrics.RecordQueueRejection()
		return false
	}
}

// Dequeue implements Queue. The returned channel tracks dequeue metrics
// and honors ctx cancellation.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Detection {
	out := make(chan Detection)
	go func() {
		defer close(out)
		for d := range q.detections {
			select {
			case out <- d:
				metrics.RecordQueueDequeue()
				q.observeSize()
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len implements Queue.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.detections)
	q.observeSize()
	return size
}

// Close implements Queue. Closing twice is a no-op.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	close(q.detections)
	q.closed = true
	return nil
}

func (q *InMemoryQueue) observeSize() {
	size := len(q.detections)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
}

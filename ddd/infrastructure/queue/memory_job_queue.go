package queue

import (
	"context"
	"errors"
	"sync"

	"videoflix-service/ddd/domain/vo"
)

var ErrQueueClosed = errors.New("job queue closed")

// MemoryJobQueue is the channel-backed buffer between the message consumer
// and the worker pool. Enqueue blocks while the buffer is full so a slow
// pool applies backpressure on the consumer.
type MemoryJobQueue struct {
	jobs      chan vo.ProcessingJob
	closeOnce sync.Once
	closed    chan struct{}
}

func NewMemoryJobQueue(capacity int) *MemoryJobQueue {
	if capacity <= 0 {
		capacity = 16
	}
	return &MemoryJobQueue{
		jobs:   make(chan vo.ProcessingJob, capacity),
		closed: make(chan struct{}),
	}
}

// Enqueue adds a job, blocking while the buffer is full.
func (q *MemoryJobQueue) Enqueue(ctx context.Context, job vo.ProcessingJob) error {
	select {
	case <-q.closed:
		return ErrQueueClosed
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue blocks until a job is available or the queue shuts down. Jobs
// already buffered are still delivered after Close. The boolean is false
// once the queue is done.
func (q *MemoryJobQueue) Dequeue(ctx context.Context) (vo.ProcessingJob, bool) {
	// Drain buffered jobs before honoring shutdown.
	select {
	case job := <-q.jobs:
		return job, true
	default:
	}
	select {
	case job := <-q.jobs:
		return job, true
	case <-q.closed:
		return vo.ProcessingJob{}, false
	case <-ctx.Done():
		return vo.ProcessingJob{}, false
	}
}

// Size reports the number of buffered jobs.
func (q *MemoryJobQueue) Size() int {
	return len(q.jobs)
}

// Close stops intake and wakes blocked consumers.
func (q *MemoryJobQueue) Close() {
	q.closeOnce.Do(func() {
		close(q.closed)
	})
}

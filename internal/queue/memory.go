package queue

import (
	"context"
)

// MemoryQueue is a channel-backed Queue for tests and single-process runs
// that do not need Redis durability.
type MemoryQueue struct {
	jobs chan Job
}

// NewMemoryQueue creates a queue buffering up to capacity jobs.
func NewMemoryQueue(capacity int) *MemoryQueue {
	if capacity <= 0 {
		capacity = 128
	}
	return &MemoryQueue{jobs: make(chan Job, capacity)}
}

func (m *MemoryQueue) Enqueue(ctx context.Context, job Job) error {
	select {
	case m.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *MemoryQueue) Dequeue(ctx context.Context) (Job, error) {
	select {
	case job := <-m.jobs:
		return job, nil
	case <-ctx.Done():
		return Job{}, ctx.Err()
	}
}

// Package queue decouples file detection from vectorization: the watcher
// enqueues jobs, workers dequeue and process them. Redis backs the durable
// queue; a channel-backed queue serves tests and single-process runs.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// JobTypeVectorizeFile asks a worker to (re)vectorize one file.
const JobTypeVectorizeFile = "vectorize_file"

// Job is one unit of queued work.
type Job struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// VectorizeFilePayload is the payload of a JobTypeVectorizeFile job.
type VectorizeFilePayload struct {
	Path string `json:"path"`
}

// NewVectorizeFileJob builds a vectorize job for one file path.
func NewVectorizeFileJob(path string) (Job, error) {
	payload, err := json.Marshal(VectorizeFilePayload{Path: path})
	if err != nil {
		return Job{}, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return Job{
		Type:      JobTypeVectorizeFile,
		Payload:   payload,
		CreatedAt: time.Now(),
	}, nil
}

// Queue is a FIFO job queue.
type Queue interface {
	// Enqueue appends a job.
	Enqueue(ctx context.Context, job Job) error

	// Dequeue blocks until a job is available or the context is cancelled.
	Dequeue(ctx context.Context) (Job, error)
}

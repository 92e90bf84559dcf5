package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestNewVectorizeFileJob(t *testing.T) {
	job, err := NewVectorizeFileJob("/datos/informe.pdf")
	if err != nil {
		t.Fatalf("NewVectorizeFileJob failed: %v", err)
	}
	if job.Type != JobTypeVectorizeFile {
		t.Errorf("unexpected job type %q", job.Type)
	}
	if job.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}

	var payload VectorizeFilePayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		t.Fatalf("payload does not unmarshal: %v", err)
	}
	if payload.Path != "/datos/informe.pdf" {
		t.Errorf("unexpected path %q", payload.Path)
	}
}

func TestMemoryQueue_FIFO(t *testing.T) {
	q := NewMemoryQueue(8)
	ctx := context.Background()

	for _, path := range []string{"a.txt", "b.txt", "c.txt"} {
		job, err := NewVectorizeFileJob(path)
		if err != nil {
			t.Fatalf("NewVectorizeFileJob failed: %v", err)
		}
		if err := q.Enqueue(ctx, job); err != nil {
			t.Fatalf("Enqueue failed: %v", err)
		}
	}

	for _, want := range []string{"a.txt", "b.txt", "c.txt"} {
		job, err := q.Dequeue(ctx)
		if err != nil {
			t.Fatalf("Dequeue failed: %v", err)
		}
		var payload VectorizeFilePayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if payload.Path != want {
			t.Errorf("expected %q, got %q", want, payload.Path)
		}
	}
}

func TestMemoryQueue_DequeueRespectsCancellation(t *testing.T) {
	q := NewMemoryQueue(1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := q.Dequeue(ctx); err == nil {
		t.Error("expected context error from empty-queue dequeue")
	}
}

// Package worker runs a pool of goroutines draining the job queue.
package worker

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/ragmill/internal/queue"
)

// HandlerFunc processes one job. A returned error is logged; the worker
// moves on to the next job either way.
type HandlerFunc func(ctx context.Context, job queue.Job) error

// Run starts count workers draining q and blocks until the context is
// cancelled and all workers have stopped.
func Run(ctx context.Context, q queue.Queue, handler HandlerFunc, count int) {
	if count <= 0 {
		count = 1
	}
	log.Printf("worker.Run: starting %d workers", count)

	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		id := i + 1
		go func() {
			defer wg.Done()
			loop(ctx, q, handler, id)
		}()
	}
	wg.Wait()
	log.Printf("worker.Run: all workers stopped")
}

func loop(ctx context.Context, q queue.Queue, handler HandlerFunc, id int) {
	for {
		job, err := q.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				log.Printf("worker %d: stopping", id)
				return
			}
			log.Printf("worker %d: dequeue error: %v", id, err)
			continue
		}

		if err := handler(ctx, job); err != nil {
			log.Printf("worker %d: job %s failed: %v", id, job.Type, err)
			continue
		}
		log.Printf("worker %d: job %s done", id, job.Type)
	}
}

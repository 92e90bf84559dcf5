// Command watchd watches the source directory and vectorizes documents as
// they appear. Detected files are debounced, pushed onto the job queue, and
// drained by a worker pool running the pipeline. A desktop notification is
// sent when a document finishes.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gen2brain/beeep"
	"github.com/joho/godotenv"

	"github.com/ragmill/internal/catalog"
	"github.com/ragmill/internal/config"
	"github.com/ragmill/internal/embeddings"
	"github.com/ragmill/internal/pipeline"
	"github.com/ragmill/internal/queue"
	"github.com/ragmill/internal/vectordb"
	"github.com/ragmill/internal/watcher"
	"github.com/ragmill/internal/worker"
)

var (
	configPath   = flag.String("config", "", "Path to config file (default: built-in defaults)")
	sourceDir    = flag.String("source", "", "Directory to watch (overrides config)")
	queueBackend = flag.String("queue", "redis", "Job queue backend: redis or memory")
	scanExisting = flag.Bool("scan-existing", false, "Vectorize files already present at startup")
	notify       = flag.Bool("notify", true, "Send a desktop notification per vectorized document")
)

func main() {
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *sourceDir != "" {
		cfg.SourceDir = *sourceDir
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	embedder, err := embeddings.New(cfg.Embeddings)
	if err != nil {
		log.Fatalf("Failed to initialize embedder: %v", err)
	}

	store, closeStore, err := vectordb.Open(ctx, cfg.VectorDB.Backend, cfg.VectorDB.Address, cfg.VectorDB.Collection, embedder.Dimension())
	if err != nil {
		log.Fatalf("Failed to open vector store: %v", err)
	}
	defer closeStore()

	cat, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer cat.Close()

	v, err := pipeline.New(cfg, embedder, store, cat)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	q, err := openQueue(ctx, *queueBackend, cfg)
	if err != nil {
		log.Fatalf("Failed to open job queue: %v", err)
	}

	w, err := watcher.New(cfg.SourceDir, q)
	if err != nil {
		log.Fatalf("Failed to initialize watcher: %v", err)
	}
	w.Start()
	defer w.Stop()

	if *scanExisting {
		w.ScanExisting()
	}

	handler := func(ctx context.Context, job queue.Job) error {
		if job.Type != queue.JobTypeVectorizeFile {
			return fmt.Errorf("unknown job type %q", job.Type)
		}
		var payload queue.VectorizeFilePayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}

		count, err := v.VectorizeFile(ctx, payload.Path)
		if err != nil {
			return err
		}
		if *notify && count > 0 {
			title := fmt.Sprintf("Vectorized %s", filepath.Base(payload.Path))
			body := fmt.Sprintf("%d chunks stored in %s", count, cfg.VectorDB.Collection)
			if err := beeep.Notify(title, body, ""); err != nil {
				log.Printf("Failed to send notification: %v", err)
			}
		}
		return nil
	}

	// Worker pool blocks until ctx is cancelled; run it alongside the signal
	// handler below.
	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Run(ctx, q, handler, cfg.Workers)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Printf("watchd running on %s. Press Ctrl+C to stop.", w.Root())
	<-sigChan

	log.Printf("Shutting down...")
	cancel()
	<-done
}

// openQueue builds the configured job queue. Redis backs multi-process
// setups; the in-memory queue serves single-process runs without a broker.
func openQueue(ctx context.Context, backend string, cfg *config.Config) (queue.Queue, error) {
	switch backend {
	case "memory":
		return queue.NewMemoryQueue(0), nil
	case "redis":
		client, err := config.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return queue.NewRedisQueue(ctx, client, cfg.Redis.QueueKey)
	default:
		return nil, fmt.Errorf("unknown queue backend %q, valid backends: redis, memory", backend)
	}
}

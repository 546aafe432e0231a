// Package worker defines worker contracts for asynchronous archive
// processing.
package worker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/amiri/dayplan/internal/adapters/repository"
	"github.com/amiri/dayplan/internal/domain/model"
	"github.com/amiri/dayplan/pkg/logger"
	"github.com/amiri/dayplan/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerCount    = 4
	workerShutdownTimeout = 5 * time.Second
)

// Job is what workers read off the queue.
type Job = model.ArchiveJob

// Archiver flips an event's archived flag.
type Archiver interface {
	Archive(ctx context.Context, id string) (model.Event, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes archive jobs against the store.
type Worker struct {
	queue    Queue
	archiver Archiver
	name     string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a new worker with configuration options.
func NewWorker(queue Queue, archiver Archiver, opts ...Option) *Worker {
	w := &Worker{
		queue:    queue,
		archiver: archiver,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop until ctx is cancelled, the worker is shut
// down, or the queue is closed.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "error processing archive job", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob archives a single event. An event deleted between sweep and
// dequeue is not an error; the job is simply stale.
func (w *Worker) processJob(ctx context.Context, job Job) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	event, err := w.archiver.Archive(ctx, job.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.logger.Debug(ctx, "archive job for deleted event, skipping",
				logger.String("eventID", job.EventID),
			)
			return nil
		}
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "archive_error")
		metrics.RecordErrorByType("archive_error", "high")
		w.logger.Error(ctx, "archive failed for event",
			logger.String("eventID", job.EventID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to archive event %s: %w", job.EventID, err)
	}

	metrics.RecordEventArchived("auto")
	w.logger.Debug(ctx, "auto-archived event",
		logger.String("eventID", event.ID),
		logger.String("title", event.Title),
		logger.String("due", job.Due.Format(time.RFC3339)),
	)

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers  []*Worker
	queue    Queue
	archiver Archiver

	// Shutdown control
	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, archiver Archiver) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}

	pool := &Pool{
		workers:  make([]*Worker, workerCount),
		queue:    queue,
		archiver: archiver,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewWorker(
			queue,
			archiver,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		select {
		case <-worker.shutdown:
			// already shut down individually
		default:
			close(worker.shutdown)
		}
	}

	for _, worker := range p.workers {
		select {
		case <-worker.done:
			// worker finished
		case <-time.After(workerShutdownTimeout):
			p.logger.Warn(context.Background(), "worker shutdown timed out",
				logger.String("worker", worker.name),
			)
		}
	}
}

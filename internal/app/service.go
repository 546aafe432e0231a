// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	jobqueue "github.com/amiri/dayplan/internal/adapters/mq/queue"
	workerpool "github.com/amiri/dayplan/internal/adapters/mq/worker"
	repository "github.com/amiri/dayplan/internal/adapters/repository"
	"github.com/amiri/dayplan/internal/domain/category"
	"github.com/amiri/dayplan/internal/domain/idempotency"
	"github.com/amiri/dayplan/internal/domain/model"
	"github.com/amiri/dayplan/internal/domain/types"
	"github.com/amiri/dayplan/pkg/logger"
	"github.com/amiri/dayplan/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultQueueSize       = 1024
	defaultWorkerCount     = 4
	defaultIdempotencySize = 10_000
	defaultSweepInterval   = time.Minute
	defaultArchiveGrace    = 24 * time.Hour
)

// Service owns the event store and the background auto-archive machinery.
type Service struct {
	mu sync.RWMutex

	// Core components
	store       repository.Store
	categorizer *category.Categorizer
	idemCache   idempotency.Cache
	jobQueue    jobqueue.Queue
	workerPool  *workerpool.Pool

	// Configuration
	queueSize        int
	workerCount      int
	idempotencySize  int
	workKeywords     []string
	personalKeywords []string
	autoArchive      bool
	sweepInterval    time.Duration
	archiveGrace     time.Duration

	// State
	started bool
	stopCh  chan struct{}

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:       defaultQueueSize,
		workerCount:     defaultWorkerCount,
		idempotencySize: defaultIdempotencySize,
		autoArchive:     false,
		sweepInterval:   defaultSweepInterval,
		archiveGrace:    defaultArchiveGrace,
		stopCh:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting scheduler service...")

	var catOpts []category.Option
	if len(s.workKeywords) > 0 {
		catOpts = append(catOpts, category.WithWorkKeywords(s.workKeywords))
	}
	if len(s.personalKeywords) > 0 {
		catOpts = append(catOpts, category.WithPersonalKeywords(s.personalKeywords))
	}
	s.categorizer = category.New(catOpts...)

	s.store = repository.NewMemoryStore(ctx,
		repository.WithCategorizer(s.categorizer),
	)
	s.idemCache = idempotency.NewInMemoryCache(
		idempotency.WithMaxSize(s.idempotencySize),
	)

	if s.autoArchive {
		s.jobQueue = jobqueue.NewInMemoryQueue(
			jobqueue.WithCapacity(s.queueSize),
		)
		s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, s.store)
		s.workerPool.Start(ctx)
		go s.sweepLoop(ctx)
	}

	s.started = true
	s.logger.Info(ctx, "scheduler service started",
		logger.Bool("autoArchive", s.autoArchive),
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("idempotencySize", s.idempotencySize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping scheduler service...")

	select {
	case <-s.stopCh:
		// already closed
	default:
		close(s.stopCh)
	}

	if s.workerPool != nil {
		s.workerPool.Stop()
	}
	if s.jobQueue != nil {
		_ = s.jobQueue.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "scheduler service stopped")
}

// CreateEvent stores a new event. The input has already passed boundary
// validation; the store assigns the id and stamps the category.
func (s *Service) CreateEvent(ctx context.Context, in model.NewEvent) (types.Event, error) {
	event, err := s.store.Create(ctx, in)
	if err != nil {
		return types.Event{}, err
	}

	metrics.RecordEventCreated(event.Category.String())
	s.logger.Debug(ctx, "created event",
		logger.String("id", event.ID),
		logger.String("title", event.Title),
		logger.String("category", event.Category.String()),
	)

	return toView(event), nil
}

// ListEvents returns every live event sorted ascending by date+time.
func (s *Service) ListEvents(ctx context.Context) ([]types.Event, error) {
	events := s.store.List(ctx)

	views := make([]types.Event, len(events))
	for i, e := range events {
		views[i] = toView(e)
	}
	return views, nil
}

// GetEvent returns a single event by id.
func (s *Service) GetEvent(ctx context.Context, id string) (types.Event, error) {
	event, err := s.store.Get(ctx, id)
	if err != nil {
		return types.Event{}, err
	}
	return toView(event), nil
}

// ArchiveEvent flips an event's archived flag. Idempotent: archiving an
// archived event succeeds and returns the unchanged record.
func (s *Service) ArchiveEvent(ctx context.Context, id string) (types.Event, error) {
	prior, err := s.store.Get(ctx, id)
	if err != nil {
		return types.Event{}, err
	}

	event, err := s.store.Archive(ctx, id)
	if err != nil {
		return types.Event{}, err
	}

	if !prior.Archived {
		metrics.RecordEventArchived("manual")
		s.logger.Debug(ctx, "archived event", logger.String("id", event.ID))
	}

	return toView(event), nil
}

// DeleteEvent removes an event permanently.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	metrics.RecordEventDeleted()
	s.logger.Debug(ctx, "deleted event", logger.String("id", id))
	return nil
}

// LookupIdempotent returns the event id previously recorded for key.
func (s *Service) LookupIdempotent(ctx context.Context, key string) (string, bool) {
	id, ok := s.idemCache.Lookup(ctx, key)
	if ok {
		metrics.RecordIdempotentHit()
	}
	return id, ok
}

// RecordIdempotent stores key -> eventID for later create retries.
func (s *Service) RecordIdempotent(ctx context.Context, key, eventID string) {
	s.idemCache.Record(ctx, key, eventID)
}

// ForgetIdempotent drops a key whose recorded event no longer exists.
func (s *Service) ForgetIdempotent(ctx context.Context, key string) {
	s.idemCache.Forget(ctx, key)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"autoArchive": s.autoArchive,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}

	if s.started {
		total := s.store.Count(ctx)
		archived := s.store.ArchivedCount(ctx)

		stats["totalEvents"] = total
		stats["archivedEvents"] = archived
		stats["idempotencyKeys"] = int(s.idemCache.Size())
		if s.jobQueue != nil {
			stats["queueLength"] = s.jobQueue.Len(ctx)
		}

		metrics.UpdateStoreSize(total)
		metrics.UpdateArchivedCount(archived)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// sweepLoop periodically enqueues archive jobs for events well past their
// start instant. Runs until the service stops or ctx is cancelled.
func (s *Service) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep finds due events and enqueues one archive job each. A full queue
// drops the remainder; the next sweep retries them.
func (s *Service) sweep(ctx context.Context) {
	start := time.Now()
	defer func() {
		metrics.RecordSweepDuration(float64(time.Since(start).Milliseconds()))
	}()

	metrics.RecordSweepRun()

	due := start.Add(-s.archiveGrace)
	ids := s.store.DuePastIDs(ctx, due)
	if len(ids) == 0 {
		return
	}

	enqueued := 0
	for _, id := range ids {
		if !s.jobQueue.Enqueue(ctx, model.ArchiveJob{EventID: id, Due: due}) {
			s.logger.Warn(ctx, "archive queue full, deferring to next sweep",
				logger.Int("remaining", len(ids)-enqueued),
			)
			break
		}
		enqueued++
	}

	metrics.RecordSweepEnqueued(enqueued)
	s.logger.Info(ctx, "auto-archive sweep enqueued jobs",
		logger.Int("due", len(ids)),
		logger.Int("enqueued", enqueued),
	)
}

// toView converts a stored event to its API shape.
func toView(e model.Event) types.Event {
	return types.Event{
		ID:       e.ID,
		Title:    e.Title,
		Date:     e.Date,
		Time:     e.Time,
		Notes:    e.Notes,
		Category: e.Category,
		Archived: e.Archived,
	}
}

package seed

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/amiri/dayplan/internal/domain/category"
	"github.com/amiri/dayplan/pkg/logger"
)

// Run generates events, submits them concurrently, then fetches the list
// back and verifies ordering and category determinism.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Get().Named("seed")
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "seeding dayplan service",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("events", cfg.NumEvents),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
	)

	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // demo data, not crypto
	events := generateEvents(cfg.NumEvents, rng)
	c := newClient(cfg.BaseURL, cfg.Timeout)

	if err := submit(ctx, cfg, c, events, stats); err != nil {
		return fmt.Errorf("event submission failed: %w", err)
	}

	if err := verify(ctx, c, log); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	log.Info(ctx, "seed run complete",
		logger.Int("submitted", stats.Submitted),
		logger.Int("failed", stats.Failed),
		logger.Duration("elapsed", time.Since(stats.StartTime)),
	)
	return nil
}

// submit POSTs events with a bounded worker pool.
func submit(ctx context.Context, cfg *Config, c *client, events []Event, stats *Stats) error {
	log := logger.Get().Named("seed")

	jobs := make(chan Event)
	var submitted, failed atomic.Int64
	var wg sync.WaitGroup

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range jobs {
				created, err := c.createEvent(ctx, e)
				if err != nil {
					failed.Add(1)
					log.Warn(ctx, "failed to create event", logger.String("title", e.Title), logger.Error(err))
					continue
				}
				submitted.Add(1)
				if cfg.Verbose {
					log.Info(ctx, "created event",
						logger.String("id", created.ID),
						logger.String("category", created.Category.String()),
					)
				}
			}
		}()
	}

	for _, e := range events {
		select {
		case jobs <- e:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	stats.Submitted = int(submitted.Load())
	stats.Failed = int(failed.Load())
	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d events failed to submit", stats.Failed, len(events))
	}
	return nil
}

// verify checks the invariants a fresh list must hold: ascending date+time
// order and categories reproducible from title+notes.
func verify(ctx context.Context, c *client, log logger.Logger) error {
	events, err := c.listEvents(ctx)
	if err != nil {
		return err
	}

	cat := category.New()
	prevKey := ""
	for _, e := range events {
		key := e.Date + " " + e.Time
		if key < prevKey {
			return fmt.Errorf("list out of order: %q before %q", prevKey, key)
		}
		prevKey = key

		if got := cat.Categorize(e.Title, e.Notes); got != e.Category {
			return fmt.Errorf("category mismatch for %q: server %s, local %s", e.Title, e.Category, got)
		}
	}

	log.Info(ctx, "verified event list", logger.Int("events", len(events)))
	return nil
}

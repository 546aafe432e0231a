// Package repository defines the event store interface and errors.
package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amiri/dayplan/internal/domain/category"
	"github.com/amiri/dayplan/internal/domain/model"
	"github.com/amiri/dayplan/pkg/metrics"
)

// In-memory Store implementation.
//
// Ordering: date ASC, time ASC, then insertion order ASC among ties. The
// canonical YYYY-MM-DD / HH:MM forms make the combined key compare
// chronologically as plain text, so List sorts on the string key directly.

// MemoryStore implements Store with a mutex-guarded map. A monotonic
// sequence number records insertion order for stable tie-breaking.
type MemoryStore struct {
	mu          sync.RWMutex
	categorizer *category.Categorizer
	byID        map[string]*model.Event
	seq         uint64
	newID       func() string
}

// NewMemoryStore creates an empty store with configuration options.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		categorizer: category.New(),
		byID:        make(map[string]*model.Event),
		newID:       func() string { return uuid.New().String() },
	}

	for _, opt := range opts {
		opt(s)
	}

	metrics.UpdateStoreSize(0)
	metrics.UpdateArchivedCount(0)

	return s
}

// Create assigns a fresh id, stamps the category, and appends the event.
func (s *MemoryStore) Create(ctx context.Context, in model.NewEvent) (model.Event, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	e := model.Event{
		ID:       s.newID(),
		Title:    in.Title,
		Date:     in.Date,
		Time:     in.Time,
		Notes:    in.Notes,
		Category: s.categorizer.Categorize(in.Title, in.Notes),
		Archived: false,
		Seq:      s.seq,
	}
	s.byID[e.ID] = &e

	metrics.UpdateStoreSize(len(s.byID))
	return e, nil
}

// List returns a fresh sorted snapshot of every live event.
func (s *MemoryStore) List(ctx context.Context) []model.Event {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	out := make([]model.Event, 0, len(s.byID))
	for _, e := range s.byID {
		out = append(out, *e)
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if ki, kj := out[i].SortKey(), out[j].SortKey(); ki != kj {
			return ki < kj
		}
		return out[i].Seq < out[j].Seq
	})
	return out
}

// Get returns the event with the given id.
func (s *MemoryStore) Get(ctx context.Context, id string) (model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[id]
	if !ok {
		return model.Event{}, ErrNotFound
	}
	return *e, nil
}

// Archive flips the archived flag to true. Idempotent for already-archived
// events.
func (s *MemoryStore) Archive(ctx context.Context, id string) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[id]
	if !ok {
		return model.Event{}, ErrNotFound
	}
	if !e.Archived {
		e.Archived = true
		metrics.UpdateArchivedCount(s.archivedLocked())
	}
	return *e, nil
}

// Delete removes the event permanently.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)

	metrics.UpdateStoreSize(len(s.byID))
	metrics.UpdateArchivedCount(s.archivedLocked())
	return nil
}

// Count returns the number of live events.
func (s *MemoryStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// ArchivedCount returns the number of live events that are archived.
func (s *MemoryStore) ArchivedCount(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.archivedLocked()
}

// archivedLocked counts archived events. Must be called with s.mu held.
func (s *MemoryStore) archivedLocked() int {
	n := 0
	for _, e := range s.byID {
		if e.Archived {
			n++
		}
	}
	return n
}

// DuePastIDs returns ids of unarchived events starting earlier than before.
// Events with an unparseable date+time are skipped; the API boundary keeps
// those out of the store in the first place.
func (s *MemoryStore) DuePastIDs(ctx context.Context, before time.Time) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for _, e := range s.byID {
		if e.Archived {
			continue
		}
		at, err := e.StartsAt()
		if err != nil {
			continue
		}
		if at.Before(before) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Package repository defines the event store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/amiri/dayplan/internal/domain/model"
)

// Store provides read/write access to the live event collection. The store
// assumes well-formed input; shape and format validation happens at the API
// boundary before a call reaches it.
type Store interface {
	// Create assigns a fresh id, stamps the category, and appends the
	// event. The returned Event carries the generated id.
	Create(ctx context.Context, in model.NewEvent) (model.Event, error)

	// List returns a fresh snapshot of every live event, archived or not,
	// sorted ascending by date+time with insertion order among ties.
	List(ctx context.Context) []model.Event

	// Get returns the event with the given id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (model.Event, error)

	// Archive flips the archived flag to true and returns the updated
	// event. Archiving an already-archived event is a successful no-op.
	// Returns ErrNotFound if the id is unknown.
	Archive(ctx context.Context, id string) (model.Event, error)

	// Delete removes the event permanently.
	// Returns ErrNotFound if the id is unknown.
	Delete(ctx context.Context, id string) error

	// Count returns the number of live events.
	Count(ctx context.Context) int

	// ArchivedCount returns the number of live events that are archived.
	ArchivedCount(ctx context.Context) int

	// DuePastIDs returns the ids of unarchived events whose date+time
	// instant is earlier than before. Feeds the auto-archive sweeper.
	DuePastIDs(ctx context.Context, before time.Time) []string
}

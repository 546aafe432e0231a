// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/amiri/dayplan/internal/domain/category"
)

// Date and time layouts for the canonical textual forms stored on an Event.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Event is a scheduled item owned by the store. Date and Time keep their
// canonical textual forms (YYYY-MM-DD and HH:MM); in that form the combined
// "date time" key sorts chronologically as plain text.
type Event struct {
	ID       string            // unique id assigned at creation
	Title    string            // required, non-empty
	Date     string            // YYYY-MM-DD
	Time     string            // HH:MM, 24-hour
	Notes    string            // optional free text
	Category category.Category // stamped once at creation, never recomputed
	Archived bool              // one-way flag, false at creation
	Seq      uint64            // insertion order, breaks sort ties
}

// NewEvent carries the caller-supplied fields for a create. The API boundary
// validates shape and format before a NewEvent reaches the store.
type NewEvent struct {
	Title string
	Date  string
	Time  string
	Notes string
}

// SortKey returns the combined date+time key the list order is defined on.
func (e Event) SortKey() string {
	return e.Date + " " + e.Time
}

// StartsAt parses the event's date and time as a naive local instant.
func (e Event) StartsAt() (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, e.SortKey(), time.Local)
}

// ArchiveJob is the unit of work the auto-archive sweeper enqueues for the
// worker pool.
type ArchiveJob struct {
	EventID string    // event to archive
	Due     time.Time // instant the event became due
}

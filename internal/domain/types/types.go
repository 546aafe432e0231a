// Package types holds the read shapes shared between the service and the
// HTTP layer.
package types

import "github.com/amiri/dayplan/internal/domain/category"

// Event mirrors the JSON shape returned by the events API.
type Event struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Date     string            `json:"date"`
	Time     string            `json:"time"`
	Notes    string            `json:"notes,omitempty"`
	Category category.Category `json:"category"`
	Archived bool              `json:"archived"`
}

// Package repository defines the event store interface and errors.
package repository

import "github.com/amiri/dayplan/internal/domain/category"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithCategorizer sets the categorizer used to stamp new events.
func WithCategorizer(c *category.Categorizer) Option {
	return func(s *MemoryStore) {
		if c != nil {
			s.categorizer = c
		}
	}
}

// WithIDGenerator overrides id generation. Used by tests that need
// predictable ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *MemoryStore) {
		if gen != nil {
			s.newID = gen
		}
	}
}

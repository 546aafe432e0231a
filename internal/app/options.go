// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"time"

	"github.com/amiri/dayplan/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithQueueSize sets the capacity of the archive job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithWorkerCount sets the number of archive worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithIdempotencyCacheSize sets the size of the create idempotency cache.
func WithIdempotencyCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.idempotencySize = size
		}
	}
}

// WithWorkKeywords sets the ordered work keyword list for the categorizer.
func WithWorkKeywords(keywords []string) Option {
	return func(s *Service) {
		s.workKeywords = keywords
	}
}

// WithPersonalKeywords sets the ordered personal keyword list for the
// categorizer.
func WithPersonalKeywords(keywords []string) Option {
	return func(s *Service) {
		s.personalKeywords = keywords
	}
}

// WithAutoArchive configures the background sweeper that archives events
// once they are grace past their start instant.
func WithAutoArchive(enabled bool, interval, grace time.Duration) Option {
	return func(s *Service) {
		s.autoArchive = enabled
		if interval > 0 {
			s.sweepInterval = interval
		}
		if grace >= 0 {
			s.archiveGrace = grace
		}
	}
}

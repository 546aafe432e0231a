// Package seed generates demo events, submits them to a running dayplan
// server, and verifies the returned list ordering.
package seed

import "time"

// Config holds the seed run parameters.
type Config struct {
	BaseURL   string        // base URL of the service, e.g. http://localhost:5000
	NumEvents int           // number of events to generate and submit
	Workers   int           // concurrent submission workers
	Timeout   time.Duration // per-request HTTP timeout
	Verbose   bool          // log every submission
}

// Stats accumulates counters across a run.
type Stats struct {
	StartTime time.Time
	Submitted int
	Failed    int
}

// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers defaults, an optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory archive job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of archive workers.
	WorkerCount int `koanf:"worker_count"`

	// IdempotencyCacheSize bounds the create idempotency cache.
	IdempotencyCacheSize int `koanf:"idempotency_cache_size"`

	// AutoArchiveEnabled turns the background auto-archive sweeper on.
	AutoArchiveEnabled bool `koanf:"auto_archive_enabled"`

	// SweepIntervalSeconds is the pause between auto-archive sweeps.
	SweepIntervalSeconds int `koanf:"sweep_interval_seconds"`

	// ArchiveGraceMinutes is how long past its start an event stays
	// unarchived before a sweep picks it up.
	ArchiveGraceMinutes int `koanf:"archive_grace_minutes"`

	// WorkKeywords and PersonalKeywords are the ordered categorizer
	// keyword lists. Order matters: first substring hit wins and the
	// work list is checked before the personal list.
	WorkKeywords     []string `koanf:"work_keywords"`
	PersonalKeywords []string `koanf:"personal_keywords"`
}

// New creates a Config populated with defaults. The keyword defaults are the
// categorizer's built-in lists; they are spelled out here so a config file or
// environment can replace them wholesale.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":5000",
		QueueSize:            1024,
		WorkerCount:          4,
		IdempotencyCacheSize: 10_000,
		AutoArchiveEnabled:   false,
		SweepIntervalSeconds: 60,
		ArchiveGraceMinutes:  1440, // one day past start
		WorkKeywords: []string{
			"meeting", "project", "client", "deadline", "report",
			"presentation", "sprint", "scrum", "business",
		},
		PersonalKeywords: []string{
			"birthday", "family", "friends", "anniversary", "party",
			"vacation", "holiday", "dinner", "lunch",
		},
	}
}

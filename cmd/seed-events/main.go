package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/amiri/dayplan/internal/seed"
	"github.com/amiri/dayplan/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumEvents = 50
	defaultTimeout   = 10 * time.Second
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:5000", "Base URL of the service")
		numEvents = flag.Int("events", defaultNumEvents, "Number of events to generate and submit")
		workers   = flag.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose   = flag.Bool("verbose", false, "Log every created event")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx := context.Background()
	cfg := &seed.Config{
		BaseURL:   *baseURL,
		NumEvents: *numEvents,
		Workers:   *workers,
		Timeout:   *timeout,
		Verbose:   *verbose,
	}

	if err := seed.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "seed run failed", logger.Error(err))
		os.Exit(1)
	}
}

// Package site serves the embedded browser client.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded client routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Serve the embedded client at root /
	files := http.FileServer(FS())
	mux.Handle("/", files)
}

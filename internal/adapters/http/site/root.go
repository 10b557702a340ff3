// Package site serves the console's embedded static assets.
package site

import (
	"context"
	"net/http"
)

// Prefix is the URL path the assets are mounted under.
const Prefix = "/static/"

// Register attaches the embedded asset routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle(Prefix, http.StripPrefix(Prefix, http.FileServer(FS())))
}

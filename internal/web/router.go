// Package web assembles the HTTP surface for the streamable transport: the
// MCP endpoint, a health probe, and static file serving for locally stored
// artifacts, behind api-key auth.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Options configures the router.
type Options struct {
	// MCP handles the MCP endpoint. Mounted at /mcp.
	MCP http.Handler
	// StaticDir, if non-empty, is served under /static/.
	StaticDir string
	// APIKey, if non-empty, is required in the x-api-key header for all
	// routes except /health and /static/.
	APIKey string
	Logger zerolog.Logger
}

// NewRouter builds the chi router for streamable HTTP mode.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		requestLogger(opts.Logger),
		apiKeyAuth(opts.APIKey),
	)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if opts.StaticDir != "" {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir)))
		r.Get("/static/*", fileServer.ServeHTTP)
	}

	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}

	return r
}

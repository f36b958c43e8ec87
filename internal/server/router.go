package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"dreamnotes/internal/notes"
)

// Routes are the handlers mounted by NewRouter.
type Routes struct {
	Notes *notes.Handler
	// MCP is mounted at /mcp when set.
	MCP http.Handler
	// Ping backs GET /health.
	Ping   func(ctx context.Context) error
	Logger *slog.Logger
}

// NewRouter wires the HTTP surface. Cross-origin requests are allowed from
// any origin.
func NewRouter(rt Routes) http.Handler {
	if rt.Logger == nil {
		rt.Logger = slog.Default()
	}
	mux := http.NewServeMux()

	// REST API endpoints
	mux.HandleFunc("POST /notes", rt.Notes.CreateNote)
	mux.HandleFunc("GET /notes", rt.Notes.ListNotes)
	// Other methods on /notes fall through to not found rather than 405
	mux.HandleFunc("/notes", http.NotFound)

	// Web UI (read-only)
	mux.HandleFunc("GET /{$}", rt.Notes.HomePage)

	// MCP uses POST for requests and GET for SSE streams
	if rt.MCP != nil {
		mux.Handle("POST /mcp", rt.MCP)
		mux.Handle("GET /mcp", rt.MCP)
		mux.Handle("DELETE /mcp", rt.MCP)
	}

	mux.HandleFunc("GET /health", healthHandler(rt.Ping, rt.Logger))

	return cors.AllowAll().Handler(mux)
}

func healthHandler(ping func(ctx context.Context) error, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				log.Warn("health check failed", "error", err)
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}

// New returns an http.Server with the timeouts used in production.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Package router sets up the HTTP routes and middleware chain for the
// blog front end.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mosaicblog/internal/handlers"
	"mosaicblog/internal/middleware"
	"mosaicblog/web"
)

// New creates and returns the configured chi router with all middleware
// and routes wired up.
func New(public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Shield the CMS: every cold page render costs an upstream call.
	limiter := middleware.NewRateLimiter(120, time.Minute)
	r.Use(limiter.Middleware)

	// Health check.
	r.Get("/health", healthHandler)

	// Embedded static assets (site CSS, theme toggle).
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Public pages.
	r.Get("/", public.Home)
	r.Get("/blog", public.Blog)
	r.Get("/blog/post/{slug}", public.BlogPost)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mosaicblog/internal/handlers"
	"mosaicblog/internal/mosaic"
	"mosaicblog/internal/render"
)

func newTestRouter(t *testing.T, cms http.HandlerFunc) http.Handler {
	t.Helper()

	srv := httptest.NewServer(cms)
	t.Cleanup(srv.Close)

	client := mosaic.New(mosaic.Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	renderer, err := render.New("Mosaic")
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	return New(handlers.NewPublic(client, renderer, nil))
}

// TestRoutes verifies the route tree dispatches each public path and that
// the middleware chain stamps its headers.
func TestRoutes(t *testing.T) {
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		switch {
		case req.URL.Path == "/posts":
			w.Write([]byte(`{"posts": [{"id": 1, "title": "Hi", "slug": "hi"}], "pagination": {}}`))
		case strings.HasPrefix(req.URL.Path, "/blog/"):
			w.Write([]byte(`{"post": {"id": 1, "title": "Hi", "slug": "hi", "content": "<p>hi</p>"}}`))
		default:
			http.NotFound(w, req)
		}
	})

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/", http.StatusOK, "View All Posts"},
		{"/blog", http.StatusOK, "Hi"},
		{"/blog/post/hi", http.StatusOK, "<p>hi</p>"},
		{"/health", http.StatusOK, `"status":"ok"`},
		{"/no-such-route", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body missing %q", tt.wantBody)
			}
			if tt.wantStatus == http.StatusOK && rec.Header().Get("X-Request-ID") == "" {
				t.Error("X-Request-ID header missing")
			}
		})
	}
}

// TestStaticAssets verifies the embedded assets are served under /static/.
func TestStaticAssets(t *testing.T) {
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {})

	for _, path := range []string{"/static/site.css", "/static/theme.js"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s: got %d, want 200", path, rec.Code)
		}
		if rec.Body.Len() == 0 {
			t.Errorf("%s: empty body", path)
		}
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site.
// Each page template is paired with the base layout, which carries the
// site chrome: header with navigation, footer, and the theme toggle.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

//go:embed templates/site/*.html
var siteFS embed.FS

// PageData holds all data passed to site templates.
type PageData struct {
	Title    string // Page title for the <title> tag
	Section  string // Active nav section ("home", "blog")
	SiteName string
	Year     int
	Data     any // Page-specific data
}

// Renderer handles template parsing and execution for public pages.
type Renderer struct {
	siteName  string
	templates map[string]*template.Template
}

// funcMap holds helpers available to all site templates.
var funcMap = template.FuncMap{
	// deref safely dereferences a string pointer for use in templates.
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	// formatDate renders an optional date as a reader-friendly string.
	"formatDate": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("January 2, 2006")
	},
	// activeClass marks the current nav section.
	"activeClass": func(current, target string) string {
		if current == target {
			return "nav-link active"
		}
		return "nav-link"
	},
	// seq generates 1..n for the pagination strip.
	"seq": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out
	},
}

// New creates a Renderer by parsing all site templates from the embedded
// filesystem. Each page template is paired with the base layout.
func New(siteName string) (*Renderer, error) {
	r := &Renderer{
		siteName:  siteName,
		templates: make(map[string]*template.Template),
	}

	entries, err := siteFS.ReadDir("templates/site")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(
			siteFS, "templates/site/base.html", "templates/site/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}

		r.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

// Page renders a full page with the given HTTP status. Common layout
// fields (site name, year) are filled in here so handlers only supply
// page-specific data.
func (rn *Renderer) Page(w http.ResponseWriter, status int, name string, data *PageData) {
	body, err := rn.Render(name, data)
	if err != nil {
		slog.Error("template render failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// Render executes a page template and returns the HTML. Split out from
// Page so handlers can cache the rendered bytes.
func (rn *Renderer) Render(name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	if data == nil {
		data = &PageData{}
	}
	data.SiteName = rn.siteName
	data.Year = time.Now().Year()

	var buf strings.Builder
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return []byte(buf.String()), nil
}

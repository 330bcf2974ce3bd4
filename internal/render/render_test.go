// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mosaicblog/internal/post"
	"mosaicblog/internal/sanitize"
)

// listData mirrors the shape the blog index handler passes to blog_list.
type listData struct {
	Posts          []post.Post
	Page           int
	PageCount      int
	ShowPagination bool
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New("Mosaic")
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return r
}

// TestNew_ParsesAllTemplates verifies every expected page template is
// present after parsing.
func TestNew_ParsesAllTemplates(t *testing.T) {
	r := newTestRenderer(t)

	for _, name := range []string{"home", "blog_list", "blog_post", "not_found", "error"} {
		if _, ok := r.templates[name]; !ok {
			t.Errorf("template %q missing", name)
		}
	}
}

// TestRender_Home verifies the base layout chrome wraps the home page:
// nav links, theme toggle, footer year.
func TestRender_Home(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.Render("home", &PageData{Section: "home"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := string(html)
	for _, want := range []string{
		`href="/blog"`,
		`id="theme-toggle"`,
		`class="site-footer"`,
		"Mosaic",
		"View All Posts",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
	if !strings.Contains(body, time.Now().Format("2006")) {
		t.Error("footer year missing")
	}
}

// TestRender_BlogList verifies the grid, pagination strip, and the
// current-page marker.
func TestRender_BlogList(t *testing.T) {
	r := newTestRenderer(t)
	excerpt := "an excerpt"

	html, err := r.Render("blog_list", &PageData{
		Title:   "Blog",
		Section: "blog",
		Data: listData{
			Posts: []post.Post{
				{Title: "First", Slug: "first", Excerpt: &excerpt},
				{Title: "Second", Slug: "second"},
			},
			Page:           2,
			PageCount:      3,
			ShowPagination: true,
		},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := string(html)
	for _, want := range []string{
		`href="/blog/post/first"`,
		`href="/blog/post/second"`,
		"an excerpt",
		`href="/blog?page=1"`,
		`href="/blog?page=3"`,
		`page-link current`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("blog list missing %q", want)
		}
	}
}

// TestRender_BlogList_Empty verifies the empty state renders with no
// pagination markup.
func TestRender_BlogList_Empty(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.Render("blog_list", &PageData{Data: listData{}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := string(html)
	if !strings.Contains(body, "No posts found") {
		t.Error("empty state missing")
	}
	if strings.Contains(body, "pagination") {
		t.Error("pagination markup should be absent with zero posts")
	}
}

// TestRender_BlogPost_EscapesTitle verifies hostile titles are escaped by
// the template engine while the sanitized body renders as markup.
func TestRender_BlogPost_EscapesTitle(t *testing.T) {
	r := newTestRenderer(t)

	p := post.Post{
		Title: `<script>alert(1)</script>`,
		Slug:  "x",
		Body:  "<p>safe body</p>",
	}
	html, err := r.Render("blog_post", &PageData{
		Data: struct {
			Post post.Post
			Body sanitize.Body
		}{Post: p, Body: sanitize.DisplayBody(p)},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := string(html)
	if strings.Contains(body, "<script>alert(1)") {
		t.Error("title was not escaped")
	}
	if !strings.Contains(body, "<p>safe body</p>") {
		t.Error("sanitized body should render as markup")
	}
}

// TestPage_WritesStatus verifies Page sets the response status and content type.
func TestPage_WritesStatus(t *testing.T) {
	r := newTestRenderer(t)

	rec := httptest.NewRecorder()
	r.Page(rec, http.StatusNotFound, "not_found", &PageData{
		Title: "Not Found",
		Data:  struct{ Slug string }{Slug: "ghost"},
	})

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "ghost") {
		t.Error("slug missing from not-found page")
	}
}

// TestPage_UnknownTemplate verifies a missing template becomes a 500, not
// a panic.
func TestPage_UnknownTemplate(t *testing.T) {
	r := newTestRenderer(t)

	rec := httptest.NewRecorder()
	r.Page(rec, http.StatusOK, "no_such_template", nil)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
}

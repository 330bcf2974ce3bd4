// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mosaicblog/internal/cache"
	"mosaicblog/internal/mosaic"
	"mosaicblog/internal/post"
	"mosaicblog/internal/render"
	"mosaicblog/internal/sanitize"
)

// defaultPageSize is the listing page size requested from the CMS and the
// floor used in the page-count computation.
const defaultPageSize = 12

// blogPath is the source route hint sent with listing requests.
const blogPath = "/blog"

// Public groups the handlers for the public site. Each handler checks the
// page cache before fetching from the Mosaic API, and stores rendered
// results on miss. Fetch → normalize → sanitize → render, per request.
type Public struct {
	client    *mosaic.Client
	renderer  *render.Renderer
	pageCache *cache.PageCache
}

// NewPublic creates a new Public handler group. pageCache may be nil when
// Valkey is not configured.
func NewPublic(client *mosaic.Client, renderer *render.Renderer, pageCache *cache.PageCache) *Public {
	return &Public{
		client:    client,
		renderer:  renderer,
		pageCache: pageCache,
	}
}

// BlogListData is the page-specific data for the blog listing template.
type BlogListData struct {
	Posts          []post.Post
	Page           int
	PageCount      int
	ShowPagination bool
}

// BlogPostData is the page-specific data for the single-post template.
type BlogPostData struct {
	Post post.Post
	Body sanitize.Body
}

// NotFoundData carries the requested slug into the not-found view.
type NotFoundData struct {
	Slug string
}

// Home renders the home page: hero plus blog teaser. It carries no CMS
// data, so it cannot fail even when the CMS is down.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := p.pageCache.Get(ctx, cache.HomeKey()); ok {
		writeHTML(w, http.StatusOK, cached)
		return
	}

	html, err := p.renderer.Render("home", &render.PageData{Section: "home"})
	if err != nil {
		slog.Error("home render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, cache.HomeKey(), html)
	writeHTML(w, http.StatusOK, html)
}

// Blog renders the blog listing for a 1-based page number (default 1).
// A fetch failure renders the generic error view; the end user never sees
// transport detail. Zero posts renders the empty state with no pagination
// computation at all.
func (p *Public) Blog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := pageParam(r)

	if cached, ok := p.pageCache.Get(ctx, cache.BlogPageKey(page)); ok {
		writeHTML(w, http.StatusOK, cached)
		return
	}

	resp, err := p.client.ListPosts(ctx, mosaic.ListParams{
		Page:  page,
		Limit: defaultPageSize,
		Path:  blogPath,
	})
	if err != nil {
		slog.Error("blog listing fetch failed", "error", err, "page", page)
		p.renderer.Page(w, http.StatusInternalServerError, "error", &render.PageData{
			Title:   "Error",
			Section: "blog",
		})
		return
	}

	data := BlogListData{Page: page}
	for _, raw := range resp.Posts {
		data.Posts = append(data.Posts, post.Normalize(raw))
	}

	if len(data.Posts) > 0 && resp.Pagination.HasMore {
		data.ShowPagination = true
		data.PageCount = PageCount(resp.Pagination.TotalItems, resp.Pagination.Limit)
	}

	html, err := p.renderer.Render("blog_list", &render.PageData{
		Title:   "Blog",
		Section: "blog",
		Data:    data,
	})
	if err != nil {
		slog.Error("blog listing render failed", "error", err, "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, cache.BlogPageKey(page), html)
	writeHTML(w, http.StatusOK, html)
}

// BlogPost renders a single post by slug. A missing post is a normal
// outcome and gets the dedicated not-found view (404); only a transport
// or decode failure gets the error view (500).
func (p *Public) BlogPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	if cached, ok := p.pageCache.Get(ctx, cache.PostKey(slug)); ok {
		writeHTML(w, http.StatusOK, cached)
		return
	}

	raw, err := p.client.GetPost(ctx, slug)
	if err != nil {
		slog.Error("post fetch failed", "error", err, "slug", slug)
		p.renderer.Page(w, http.StatusInternalServerError, "error", &render.PageData{
			Title:   "Error",
			Section: "blog",
		})
		return
	}

	if raw == nil {
		p.renderer.Page(w, http.StatusNotFound, "not_found", &render.PageData{
			Title:   "Post Not Found",
			Section: "blog",
			Data:    NotFoundData{Slug: slug},
		})
		return
	}

	normalized := post.Normalize(raw)
	data := BlogPostData{
		Post: normalized,
		Body: sanitize.DisplayBody(normalized),
	}

	html, err := p.renderer.Render("blog_post", &render.PageData{
		Title:   normalized.Title,
		Section: "blog",
		Data:    data,
	})
	if err != nil {
		slog.Error("post render failed", "error", err, "slug", slug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, cache.PostKey(slug), html)
	writeHTML(w, http.StatusOK, html)
}

// PageCount computes the number of pagination links for a listing:
// ceil(totalItems / max(limit, defaultPageSize)).
func PageCount(totalItems, limit int) int {
	if limit < defaultPageSize {
		limit = defaultPageSize
	}
	return (totalItems + limit - 1) / limit
}

// pageParam reads the 1-based page query parameter, defaulting to 1 for
// absent, malformed, or non-positive values.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// writeHTML writes a rendered page with the HTML content type.
func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

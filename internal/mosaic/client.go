// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mosaic is the HTTP client for the Mosaic headless CMS API. It
// returns raw, untrusted post payloads; normalization happens downstream
// in the post package. The client draws a single hard line in its error
// taxonomy: "no such post" is a normal nil result, while transport and
// decode failures are errors.
package mosaic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"mosaicblog/internal/post"
)

// Config is the immutable connection configuration for the Mosaic API,
// built once at process start. A missing APIKey means anonymous access;
// BaseURL is not validated here.
type Config struct {
	BaseURL          string
	APIKey           string
	SiteDomain       string
	AutoDetectRoutes bool
	Timeout          time.Duration
}

// Pagination describes the list window returned alongside a page of posts.
type Pagination struct {
	HasMore    bool `json:"hasMore"`
	TotalItems int  `json:"totalItems"`
	Limit      int  `json:"limit"`
}

// ListParams are the query parameters for a post listing request.
type ListParams struct {
	Page  int
	Limit int
	Path  string // source route hint, e.g. "/blog"; empty when AutoDetectRoutes is on
}

// ListResponse is a single page of raw posts plus its pagination window.
type ListResponse struct {
	Posts      []post.RawPost `json:"posts"`
	Pagination Pagination     `json:"pagination"`
}

// getPostResponse wraps the single-post endpoint's envelope. A missing or
// null post field signals not-found.
type getPostResponse struct {
	Post post.RawPost `json:"post"`
}

// Client talks to the Mosaic API. Safe for concurrent use.
type Client struct {
	cfg    Config
	client *http.Client
}

// New creates a Mosaic API client. The transport mirrors the listen-side
// timeouts: short dial and TLS budgets, pooled idle connections.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 5 * time.Second,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// ListPosts fetches one page of raw posts. Any transport or decode failure
// surfaces as a single wrapped error; there is no degraded result. A
// transient failure (network error or upstream 5xx) is retried once.
func (c *Client) ListPosts(ctx context.Context, params ListParams) (*ListResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("limit", strconv.Itoa(params.Limit))
	if params.Path != "" && !c.cfg.AutoDetectRoutes {
		q.Set("path", params.Path)
	}

	body, err := c.get(ctx, "/posts?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("mosaic list posts: %w", err)
	}

	var resp ListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("mosaic list posts: decode: %w", err)
	}
	return &resp, nil
}

// GetPost fetches a single raw post by slug. A nil, nil return means the
// CMS has no post with that slug — a normal outcome, distinct from the
// error returned on transport or decode failure.
func (c *Client) GetPost(ctx context.Context, slug string) (post.RawPost, error) {
	body, err := c.get(ctx, "/blog/"+url.PathEscape(slug))
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("mosaic get post %q: %w", slug, err)
	}

	var resp getPostResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("mosaic get post %q: decode: %w", slug, err)
	}
	if resp.Post == nil {
		return nil, nil
	}
	return resp.Post, nil
}

// errNotFound is internal to the client; callers see it as a nil post.
var errNotFound = errors.New("mosaic: not found")

// get performs a GET against the API with one retry on transient failure.
// It returns the response body on 2xx, errNotFound on 404, and an error
// for every other outcome.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	u := strings.TrimRight(c.cfg.BaseURL, "/") + path

	var body []byte
	backoff := retry.WithMaxRetries(1, retry.NewConstant(250*time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Site-Domain", c.cfg.SiteDomain)
		if c.cfg.APIKey != "" {
			req.Header.Set("X-API-Key", c.cfg.APIKey)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			// Network-level failures are worth one more attempt.
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return errNotFound
		case resp.StatusCode >= 500:
			return retry.RetryableError(fmt.Errorf("upstream status %d", resp.StatusCode))
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			return fmt.Errorf("upstream status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package post defines the canonical blog post shape and the normalization
// step that produces it from the untrusted Mosaic API payload. The API's
// response shape cannot be trusted across CMS versions, so every field
// access degrades to a default value instead of failing — one malformed
// post must never take down an entire listing render.
package post

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// RawPost is the untrusted payload for a single post as decoded from the
// Mosaic API. Any field may be absent, null, the wrong type, or (for
// legacy records) a JSON-encoded string standing in for a structured value.
type RawPost map[string]any

// Destination is a publish target (e.g. a syndication channel) attached
// to a post. ID is always non-negative after normalization.
type Destination struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Kind   string  `json:"type"`
	Status *string `json:"status,omitempty"`
}

// Post is the canonical, normalized representation of a blog entry. It is
// built fresh for every render and never mutated afterwards; persistence
// is the CMS's responsibility, not this repo's.
type Post struct {
	ID             string
	Title          string
	Slug           string
	Body           string
	BodyStructured bool // true when the raw body arrived as a structured tree, not a string
	Excerpt        *string
	FeaturedImage  *string
	Status         string
	Labels         *string // JSON re-encoding of the raw labels list, nil otherwise
	SEOTitle       *string
	SEODescription *string
	Destinations   []Destination
	PublishedAt    *time.Time
	AuthorID       string
}

// Normalize converts a raw Mosaic payload into a canonical Post. It never
// fails: type mismatches and malformed sub-fields degrade to defaults,
// with a warning as the only side effect.
func Normalize(raw RawPost) Post {
	p := Post{
		ID:             coerceString(raw["id"]),
		Title:          coerceString(raw["title"]),
		Slug:           coerceString(raw["slug"]),
		Status:         coerceString(raw["status"]),
		AuthorID:       coerceString(raw["authorId"]),
		Excerpt:        optionalString(raw["excerpt"]),
		FeaturedImage:  optionalString(raw["featuredImage"]),
		SEOTitle:       optionalString(raw["seoTitle"]),
		SEODescription: optionalString(raw["seoDescription"]),
	}

	p.Body, p.BodyStructured = coerceBody(raw["content"])
	p.Labels = encodeLabels(raw["labels"])
	p.Destinations, _ = parseDestinations(raw["publishDestinations"])
	p.PublishedAt = parsePublishedAt(raw["publishedAt"])

	return p
}

// coerceBody keeps string bodies as-is and serializes structured content
// trees to their JSON string form, recording which shape was received.
func coerceBody(v any) (body string, structured bool) {
	switch b := v.(type) {
	case nil:
		return "", false
	case string:
		return b, false
	default:
		enc, err := json.Marshal(b)
		if err != nil {
			// Marshal of a decoded JSON value cannot realistically fail,
			// but degrade rather than panic if it ever does.
			return fmt.Sprintf("%v", b), true
		}
		return string(enc), true
	}
}

// encodeLabels re-encodes a raw labels sequence to its JSON string form.
// Anything that is not a sequence yields nil. The string form is lossy on
// purpose — it is the shape downstream consumers of the canonical record
// expect.
func encodeLabels(v any) *string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	enc, err := json.Marshal(list)
	if err != nil {
		return nil
	}
	s := string(enc)
	return &s
}

// parseDestinations accepts the three raw forms of publishDestinations —
// native sequence, JSON-encoded string, or absent — and maps each element
// independently to a Destination. The returned bool reports whether a
// sequence was actually parsed; unparseable input yields an empty slice
// and a warning, never an error.
func parseDestinations(v any) ([]Destination, bool) {
	var list []any

	switch d := v.(type) {
	case nil:
		return []Destination{}, false
	case []any:
		list = d
	case string:
		var parsed any
		if err := json.Unmarshal([]byte(d), &parsed); err != nil {
			slog.Warn("could not parse publishDestinations string", "error", err)
			return []Destination{}, false
		}
		var ok bool
		if list, ok = parsed.([]any); !ok {
			slog.Warn("publishDestinations string is valid JSON but not a sequence")
			return []Destination{}, false
		}
	default:
		slog.Warn("unexpected publishDestinations type", "type", fmt.Sprintf("%T", v))
		return []Destination{}, false
	}

	dests := make([]Destination, 0, len(list))
	for _, el := range list {
		m, _ := el.(map[string]any)
		dest := Destination{
			ID:   coerceIntID(m["id"]),
			Name: coerceString(m["name"]),
			Kind: coerceString(m["type"]),
		}
		if dest.Kind == "" {
			dest.Kind = "unknown"
		}
		if s, ok := m["status"].(string); ok {
			dest.Status = &s
		}
		dests = append(dests, dest)
	}
	return dests, true
}

// publishedAtLayouts are tried in order when parsing the publishedAt field.
var publishedAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parsePublishedAt parses an ISO-like date-time string. Absent, empty, or
// unparseable values yield nil; the unparseable-but-non-empty case is the
// only one that warns.
func parsePublishedAt(v any) *time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	for _, layout := range publishedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	slog.Warn("unparseable publishedAt date", "value", s)
	return nil
}

// coerceString converts a raw value to a string: strings pass through,
// JSON numbers are formatted without a float exponent, everything else
// (including absent) becomes "".
func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// coerceIntID converts a raw destination id — a JSON number or a numeric
// string — to a non-negative int. Anything else becomes 0.
func coerceIntID(v any) int {
	var n int
	switch id := v.(type) {
	case float64:
		n = int(id)
	case int:
		n = id
	case json.Number:
		f, err := id.Float64()
		if err != nil {
			return 0
		}
		n = int(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(id), 64)
		if err != nil {
			return 0
		}
		n = int(f)
	default:
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}

// optionalString returns a pointer to the raw value when it is a non-empty
// string, and nil for everything else. "Explicitly empty" and "never set"
// both collapse to nil.
func optionalString(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sanitize strips executable and otherwise unsafe markup from
// untrusted CMS content before it reaches a template. It also decides how
// a post body is displayed: sanitized HTML for string bodies, a literal
// structured preview for everything else. There is no code path that hands
// an unsanitized CMS string to the render target.
package sanitize

import (
	"bytes"
	"encoding/json"
	"html/template"
	"strings"

	bm "github.com/microcosm-cc/bluemonday"

	"mosaicblog/internal/post"
)

// policy is the shared bluemonday policy: a conservative user-generated-
// content subset. Script, style, and iframe elements, inline event
// handlers, and javascript: URLs are all stripped.
var policy = bm.UGCPolicy()

// HTML sanitizes an untrusted markup string. Sanitizing already-sanitized
// output yields the same output.
func HTML(s string) string {
	return policy.Sanitize(s)
}

// Body is the display form of a post body, exactly one of whose fields is
// populated.
type Body struct {
	HTML    template.HTML // sanitized markup, ready to render
	Preview string        // indented textual dump of a structured content tree
}

// IsPreview reports whether the body renders as a structured preview
// rather than markup.
func (b Body) IsPreview() bool {
	return b.Preview != ""
}

// DisplayBody selects how a post body is shown. Structured content — a
// tree the normalizer preserved, or a legacy string that is itself a JSON
// document — is rendered as a literal preview rather than interpreted as
// markup. String bodies pass through the sanitizer.
func DisplayBody(p post.Post) Body {
	if p.BodyStructured {
		preview := indentJSON(p.Body)
		if preview == "" {
			preview = p.Body
		}
		return Body{Preview: preview}
	}

	// Legacy records store structured trees as JSON-encoded strings. A body
	// that parses to an object or array is such a tree, not markup.
	trimmed := strings.TrimSpace(p.Body)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if preview := indentJSON(trimmed); preview != "" {
			return Body{Preview: preview}
		}
	}

	return Body{HTML: template.HTML(HTML(p.Body))}
}

// indentJSON pretty-prints a JSON document for the structured preview.
// Returns "" when the input is not valid JSON.
func indentJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), "", "  "); err != nil {
		return ""
	}
	return buf.String()
}

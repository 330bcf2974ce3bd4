// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sanitize

import (
	"strings"
	"testing"

	"mosaicblog/internal/post"
)

// TestHTML_StripsScripts verifies script elements are removed while safe
// markup survives.
func TestHTML_StripsScripts(t *testing.T) {
	got := HTML(`<script>alert(1)</script><p>hi</p>`)

	if strings.Contains(got, "<script") || strings.Contains(got, "alert(1)") {
		t.Errorf("script content survived sanitization: %q", got)
	}
	if !strings.Contains(got, "<p>hi</p>") {
		t.Errorf("safe markup was not preserved: %q", got)
	}
}

// TestHTML_StripsUnsafeConstructs covers the rest of the conservative
// policy: event handlers, iframes, style elements, javascript: URLs.
func TestHTML_StripsUnsafeConstructs(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		banned  []string
		allowed []string
	}{
		{
			name:   "inline event handler",
			in:     `<p onclick="alert(1)">click</p>`,
			banned: []string{"onclick", "alert"},
			allowed: []string{"<p>click</p>"},
		},
		{
			name:   "iframe",
			in:     `<iframe src="https://evil.example.com"></iframe><em>ok</em>`,
			banned: []string{"<iframe"},
			allowed: []string{"<em>ok</em>"},
		},
		{
			name:   "style element",
			in:     `<style>body{display:none}</style><strong>ok</strong>`,
			banned: []string{"<style", "display:none"},
			allowed: []string{"<strong>ok</strong>"},
		},
		{
			name:   "javascript url",
			in:     `<a href="javascript:alert(1)">x</a>`,
			banned: []string{"javascript:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HTML(tt.in)
			for _, b := range tt.banned {
				if strings.Contains(got, b) {
					t.Errorf("banned fragment %q survived: %q", b, got)
				}
			}
			for _, a := range tt.allowed {
				if !strings.Contains(got, a) {
					t.Errorf("allowed fragment %q lost: %q", a, got)
				}
			}
		})
	}
}

// TestHTML_Idempotent verifies sanitize(sanitize(x)) == sanitize(x) for a
// spread of inputs, including already-clean and hostile ones.
func TestHTML_Idempotent(t *testing.T) {
	inputs := []string{
		`<p>plain</p>`,
		`<script>alert(1)</script><p>hi</p>`,
		`<a href="https://example.com" onclick="x()">link</a>`,
		`just text, no markup`,
		``,
		`<img src="https://img.example.com/a.png" alt="a">`,
	}

	for _, in := range inputs {
		once := HTML(in)
		twice := HTML(once)
		if once != twice {
			t.Errorf("sanitization not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

// TestDisplayBody_StringBody verifies a plain HTML string body renders as
// sanitized markup.
func TestDisplayBody_StringBody(t *testing.T) {
	b := DisplayBody(post.Post{Body: `<script>x()</script><p>hi</p>`})

	if b.IsPreview() {
		t.Fatal("string body should render as markup, not preview")
	}
	if strings.Contains(string(b.HTML), "<script") {
		t.Errorf("unsanitized markup reached display: %q", b.HTML)
	}
	if !strings.Contains(string(b.HTML), "<p>hi</p>") {
		t.Errorf("content lost: %q", b.HTML)
	}
}

// TestDisplayBody_StructuredBody verifies a structured tree becomes a
// literal preview, never interpreted as markup.
func TestDisplayBody_StructuredBody(t *testing.T) {
	b := DisplayBody(post.Post{
		Body:           `{"blocks":[{"text":"<script>x()</script>"}]}`,
		BodyStructured: true,
	})

	if !b.IsPreview() {
		t.Fatal("structured body should render as preview")
	}
	if b.HTML != "" {
		t.Errorf("preview body should carry no markup, got %q", b.HTML)
	}
	if !strings.Contains(b.Preview, "blocks") {
		t.Errorf("preview lost structure: %q", b.Preview)
	}
}

// TestDisplayBody_LegacyJSONString verifies a string body that is itself a
// JSON document is treated as structured content.
func TestDisplayBody_LegacyJSONString(t *testing.T) {
	b := DisplayBody(post.Post{Body: `{"version":"2.1","blocks":[]}`})

	if !b.IsPreview() {
		t.Fatal("JSON-document string body should render as preview")
	}
	if !strings.Contains(b.Preview, `"version"`) {
		t.Errorf("preview content wrong: %q", b.Preview)
	}
}

// TestDisplayBody_BraceButNotJSON verifies a body that merely starts with
// a brace but is not valid JSON still renders as sanitized markup.
func TestDisplayBody_BraceButNotJSON(t *testing.T) {
	b := DisplayBody(post.Post{Body: `{not json at all <p>hi</p>`})

	if b.IsPreview() {
		t.Fatal("invalid JSON should fall back to markup rendering")
	}
	if !strings.Contains(string(b.HTML), "hi") {
		t.Errorf("content lost: %q", b.HTML)
	}
}

package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func render(t *testing.T, src string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, []byte(src)); err != nil {
		t.Fatalf("Render(%q) failed: %v", src, err)
	}
	return buf.String()
}

func TestRenderInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"`code`", "<code>code</code>"},
		{"~~gone~~", "<del>gone</del>"},
		{"[link](https://example.com)", `<a href="https://example.com">link</a>`},
	}
	for _, tt := range tests {
		got := render(t, tt.input)
		if !strings.Contains(got, tt.expected) {
			t.Errorf("Render(%q) = %q, want it to contain %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderHeadingIDs(t *testing.T) {
	got := render(t, "## Debounce in React")
	if !strings.Contains(got, `<h2 id="debounce-in-react">`) {
		t.Errorf("heading id missing: %q", got)
	}
}

func TestRenderCodeBlockEscapes(t *testing.T) {
	got := render(t, "```go\nif a < b {}\n```")
	if !strings.Contains(got, `class="language-go"`) {
		t.Errorf("language class missing: %q", got)
	}
	if !strings.Contains(got, "a &lt; b") {
		t.Errorf("code not escaped: %q", got)
	}
}

func TestRenderDropsRawHTML(t *testing.T) {
	got := render(t, "<script>alert(1)</script>\n\ntext")
	if strings.Contains(got, "<script>") {
		t.Errorf("raw html leaked: %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	got := render(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "<td>1</td>") {
		t.Errorf("table not rendered: %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown([]byte("hello *world*")).Render(context.Background(), &buf); err != nil {
		t.Fatalf("component render failed: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "<p>hello <em>world</em></p>") {
		t.Errorf("component output = %q", got)
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/images/a.png", "/images/a.png"},
		{"#top", "#top"},
		{"https://example.com/x?a=1&b=2", "https://example.com/x?a=1&amp;b=2"},
		{"mailto:me@example.com", "mailto:me@example.com"},
		{"javascript:alert(1)", ""},
		{"relative/path", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.expected {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

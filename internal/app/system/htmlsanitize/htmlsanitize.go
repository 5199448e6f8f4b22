// Package htmlsanitize prepares meeting free text for HTML display.
//
// Stored records are never rewritten. Notes may carry light formatting from
// the client's rich text editor; HasMarkup decides whether a note is treated
// as HTML (sanitized with a user-generated-content policy) or as plain text
// (escaped).
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var ugc = bluemonday.UGCPolicy()

// Sanitize removes scripts, event handlers, unsafe URLs and other dangerous
// markup while keeping ordinary formatting.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc.Sanitize(s)
}

// HasMarkup reports whether s looks like editor output: it must contain a
// closing or self-closing tag. Comparisons such as "a<b and c>d" do not count.
func HasMarkup(s string) bool {
	return strings.Contains(s, "</") || strings.Contains(s, "/>")
}

// NotesHTML returns s as safe HTML. Markup is sanitized; plain text is
// escaped so every character displays as written.
func NotesHTML(s string) string {
	if HasMarkup(s) {
		return Sanitize(s)
	}
	return html.EscapeString(s)
}

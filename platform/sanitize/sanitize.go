// Package sanitize cleans user-entered text before it is stored or printed
// on an affidavit.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var (
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
	// blocks whose content must go together with the tag
	activeBlockRegex = regexp.MustCompile(`(?is)<(script|style|iframe|object|embed)\b[^>]*>.*?</(script|style|iframe|object|embed)\s*>`)
	activeOpenRegex  = regexp.MustCompile(`(?is)<(script|style|iframe|object|embed)\b[^>]*/?>`)
	eventAttrRegex   = regexp.MustCompile(`(?i)\s+on[a-z]+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	jsURLRegex       = regexp.MustCompile(`(?i)(href|src)\s*=\s*("\s*javascript:[^"]*"|'\s*javascript:[^']*'|javascript:[^\s>]+)`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)
)

// StripHTML drops every tag, decodes entities and strips again so encoded
// markup cannot survive.
func StripHTML(s string) string {
	plain := html.UnescapeString(htmlTagRegex.ReplaceAllString(s, ""))
	return strings.TrimSpace(htmlTagRegex.ReplaceAllString(plain, ""))
}

// Text sanitizes a string for safe text storage by stripping HTML.
// Use for user-provided text fields like attempt notes and descriptions.
func Text(s string) string {
	return StripHTML(s)
}

// TextPtr is a helper for optional string pointers
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	result := Text(*s)
	return &result
}

// Name strips markup and collapses internal whitespace, for person and party names.
func Name(s string) string {
	return whitespaceRegex.ReplaceAllString(StripHTML(s), " ")
}

// Markup keeps formatting tags in user-edited affidavit markup but removes
// active content: script-like elements, inline event handlers and javascript: URLs.
func Markup(s string) string {
	result := activeBlockRegex.ReplaceAllString(s, "")
	result = activeOpenRegex.ReplaceAllString(result, "")
	result = eventAttrRegex.ReplaceAllString(result, "")
	result = jsURLRegex.ReplaceAllString(result, `$1="#"`)
	return strings.TrimSpace(result)
}

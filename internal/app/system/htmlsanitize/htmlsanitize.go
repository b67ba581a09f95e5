// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize wraps the bluemonday policies used at the write
// boundary. Rich-text content (articles, instructor pages, legal documents)
// is sanitized once on the way into the database, never on the way out.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

func init() {
	// Content editors embed demo images and videos by URL.
	ugc.AllowImages()
	ugc.AllowAttrs("controls", "src", "poster").OnElements("video")
}

// Rich sanitizes editor-supplied HTML, keeping common formatting tags.
func Rich(s string) string {
	return ugc.Sanitize(s)
}

// Plain strips all markup, leaving text content only.
func Plain(s string) string {
	return strict.Sanitize(s)
}

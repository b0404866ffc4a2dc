// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize cleans caller-supplied free text before it is
// stored. The engine never renders HTML itself, but everything it
// stores (opportunity descriptions, interest messages, group messages,
// document names) is rendered later by the platform front end, so
// dangerous markup is removed at the write boundary.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// ugcPolicy allows basic formatting (paragraphs, emphasis, lists,
// links) and strips scripts, event handlers, iframes, and styles.
var ugcPolicy = bluemonday.UGCPolicy()

// strictPolicy strips all markup. Used for single-line fields such as
// titles and document display names.
var strictPolicy = bluemonday.StrictPolicy()

// Sanitize removes dangerous markup from multi-line user text while
// keeping basic formatting.
func Sanitize(s string) string {
	return ugcPolicy.Sanitize(s)
}

// StripTags removes all markup, returning plain text.
func StripTags(s string) string {
	return strictPolicy.Sanitize(s)
}

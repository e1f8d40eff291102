package helper

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	postPolicy    = bluemonday.UGCPolicy()
	commentPolicy = bluemonday.StrictPolicy()
)

// SanitizePostContent keeps the formatting a rich text editor produces and
// drops scripts, event handlers and other active content.
func SanitizePostContent(html string) string {
	return strings.TrimSpace(postPolicy.Sanitize(html))
}

// SanitizeComment strips all markup; comments are stored as plain text and
// escaped by whoever renders them.
func SanitizeComment(text string) string {
	return strings.TrimSpace(html.UnescapeString(commentPolicy.Sanitize(text)))
}

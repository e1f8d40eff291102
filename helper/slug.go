package helper

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL-safe identifier of a post title: transliterated
// to ASCII, lowercased, every run of non-alphanumerics collapsed into a
// single hyphen, no leading or trailing hyphen.
func Slugify(title string) string {
	s := norm.NFKC.String(title)
	s = unidecode.Unidecode(s)
	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

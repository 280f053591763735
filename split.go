package presenter

import (
	"regexp"
	"strings"
)

const DefaultSeparator = "---"

// SplitSlides splits a document on separator lines. The separator must be
// alone on its line (surrounding blanks allowed) so that table rules made of
// dashes are left alone. Slides are trimmed and empty ones dropped.
func SplitSlides(document, separator string) []string {
	if separator == "" {
		separator = DefaultSeparator
	}
	pattern := regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(separator) + `[ \t]*$`)

	slides := []string{}
	for _, part := range pattern.Split(document, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			slides = append(slides, part)
		}
	}
	return slides
}

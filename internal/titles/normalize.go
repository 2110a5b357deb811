// Package titles turns raw scraped title strings into search-ready ones.
package titles

import (
	"regexp"
	"strings"
)

// Pattern compilation for title cleanup
var (
	// Parenthesized and bracketed annotations: "(2021)", "[HD]"
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	bracketedRe     = regexp.MustCompile(`\[[^\]]*\]`)

	// Trailing season/episode qualifiers: "Show: Season 2", "Show Episode 5"
	trailingSeasonRe  = regexp.MustCompile(`(?i)\s*:?\s*Season\s*\d+\s*$`)
	trailingEpisodeRe = regexp.MustCompile(`(?i)\s*:?\s*Episode\s*\d+\s*$`)
)

// Normalize cleans a raw scraped title into a search-ready form. It is
// deterministic, never fails, and is idempotent: Normalize(Normalize(s))
// always equals Normalize(s). Transformations apply in a fixed order so
// that "Show: Season 2 (2021)" reduces to "Show".
func Normalize(raw string) string {
	result := raw

	result = parentheticalRe.ReplaceAllString(result, "")
	result = bracketedRe.ReplaceAllString(result, "")

	// Qualifiers can stack ("Show Season 1 Episode 2"), so strip until
	// the tail is stable. This keeps Normalize idempotent.
	for {
		stripped := trailingSeasonRe.ReplaceAllString(result, "")
		stripped = trailingEpisodeRe.ReplaceAllString(stripped, "")
		if stripped == result {
			break
		}
		result = stripped
	}

	// Collapse runs of whitespace and trim
	result = strings.Join(strings.Fields(result), " ")

	return strings.TrimSpace(result)
}

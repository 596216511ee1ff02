package sheets

import (
	"regexp"
	"strings"
)

var (
	indiaBreak = regexp.MustCompile(`(India),?\s*`)
	spaceRuns  = regexp.MustCompile(`[ \t]+`)
)

// FormatLocation rewrites a raw location cell for display: a line break
// after every "India" (the sheet packs several addresses into one cell,
// each ending with the country), runs of spaces collapsed, newlines kept.
// Empty input renders as "N/A".
func FormatLocation(raw string) string {
	loc := indiaBreak.ReplaceAllString(raw, "$1\n")
	loc = spaceRuns.ReplaceAllString(loc, " ")
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return "N/A"
	}
	return loc
}

package sheets

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// Completeness scores a client record in [0,5]. Placeholder values
// ("Not provided", "Unknown") earn nothing.
func Completeness(c Client) int {
	score := 0
	if c.Email != "" && strings.Contains(c.Email, "@") {
		score++
	}
	if len(c.Phone) >= 6 {
		score++
	}
	if c.Company != "" && c.Company != "Not provided" {
		score++
	}
	if c.City != "" {
		score++
	}
	if c.Name != "" && c.Name != "Unknown" {
		score++
	}
	return score
}

// Dedupe collapses clients sharing a normalized name + digits-only phone,
// keeping the record with the strictly higher completeness score. Ties keep
// the first occurrence; output order is first-seen order. This is the one
// presentation-side dedup contract; every view goes through it.
func Dedupe(clients []Client) []Client {
	out := make([]Client, 0, len(clients))
	index := make(map[string]int, len(clients))
	for _, c := range clients {
		key := strings.ToLower(strings.TrimSpace(c.Name)) + "|" + nonDigits.ReplaceAllString(c.Phone, "")
		at, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, c)
			continue
		}
		if Completeness(c) > Completeness(out[at]) {
			out[at] = c
		}
	}
	return out
}

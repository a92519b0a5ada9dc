package service

import "strings"

// UnrecognizedTitle is what the completion provider is told to answer when
// it does not know the seed. It comes back as an ordinary title.
const UnrecognizedTitle = "unrecognized title"

// ExtractOptions tunes ExtractTitles.
type ExtractOptions struct {
	// DropEmpty filters segments that are empty after trimming, e.g. the
	// tail of "A, B, C,". Off by default so the segment count always equals
	// the number of commas plus one.
	DropEmpty bool
}

// ExtractTitles splits a raw completion on commas and trims every segment.
// Order is preserved; nothing is deduplicated, sorted or counted.
func ExtractTitles(raw string, opts ExtractOptions) []string {
	parts := strings.Split(raw, ",")
	titles := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" && opts.DropEmpty {
			continue
		}
		titles = append(titles, p)
	}
	return titles
}

// IsSentinel reports whether title is the provider's "don't know" answer.
// Providers sometimes quote it or change its case.
func IsSentinel(title string) bool {
	t := strings.Trim(strings.TrimSpace(title), `"'.`)
	return strings.EqualFold(t, UnrecognizedTitle)
}

package catalog

import "strings"

// FormatAuthors collapses a '|' delimited author list into "A, B".
// Empty items are dropped.
func FormatAuthors(authors string) string {
	if authors == "" {
		return ""
	}
	parts := strings.Split(authors, "|")
	names := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return strings.Join(names, ", ")
}

// SplitList splits a '|' delimited field (authors, genres) into trimmed,
// non-empty items.
func SplitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, "|") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

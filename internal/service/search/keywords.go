package search

import "strings"

// ParseKeywords splits free text into search keywords. Both newlines and
// commas act as separators; entries are trimmed, empties dropped and
// duplicates removed while preserving first-seen order.
func ParseKeywords(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ','
	})

	seen := make(map[string]bool, len(fields))
	var keywords []string
	for _, field := range fields {
		keyword := strings.TrimSpace(field)
		if keyword == "" || seen[keyword] {
			continue
		}
		seen[keyword] = true
		keywords = append(keywords, keyword)
	}
	return keywords
}

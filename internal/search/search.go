package search

import (
	"strings"
)

type SearchResult struct {
	Line     int // 1-based line number
	Position int // byte offset of the match in the line
}

// Search finds every occurrence of pattern, overlapping ones included.
func Search(lines []string, pattern string) []SearchResult {
	results := []SearchResult{}

	if len(pattern) == 0 || len(lines) == 0 { return results }

	for i, line := range lines {
		from := 0
		for {
			pos := strings.Index(line[from:], pattern)
			if pos == -1 { break }
			pos = from + pos
			results = append(results, SearchResult{i + 1, pos})
			from = pos + 1
		}
	}
	return results
}

// MatchingLines returns the distinct line numbers that contain pattern.
func MatchingLines(lines []string, pattern string) []int {
	found := []int{}
	for _, r := range Search(lines, pattern) {
		if len(found) > 0 && found[len(found)-1] == r.Line { continue }
		found = append(found, r.Line)
	}
	return found
}

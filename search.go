package cardvault

import (
	"sort"
	"strconv"
	"strings"
)

// SearchAll runs a case-insensitive name search against each table in turn
// and concatenates the hits. No deduplication happens across tables: the
// same pid appearing in several tables yields several hits, and the first
// one wins later when a sequence deduplicates.
func SearchAll(tables []*Collection, query string) []Card {
	var hits []Card
	for _, t := range tables {
		hits = append(hits, t.Search(query)...)
	}
	return hits
}

// ParseSelection parses a row-selection expression against a table of n
// displayed rows and returns the selected zero-based indices, sorted and
// deduplicated.
//
// The grammar, as shown to the user with 1-based indices:
//
//	all        every row
//	a-b        inclusive range, clamped to the table
//	1 3 5      space or comma separated indices
//	7          a single index
//
// Out-of-bounds indices and unparsable parts are silently dropped.
func ParseSelection(input string, n int) []int {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "all" {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}

	seen := make(map[int]bool)
	for _, part := range strings.Fields(strings.ReplaceAll(input, ",", " ")) {
		if from, to, ok := strings.Cut(part, "-"); ok {
			start, err1 := strconv.Atoi(from)
			end, err2 := strconv.Atoi(to)
			if err1 != nil || err2 != nil {
				continue
			}
			if start < 1 {
				start = 1
			}
			if end > n {
				end = n
			}
			for i := start; i <= end; i++ {
				seen[i-1] = true
			}
			continue
		}
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 1 || idx > n {
			continue
		}
		seen[idx-1] = true
	}

	indices := make([]int, 0, len(seen))
	for i := range seen {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

package cardvault

import (
	"fmt"
	"strconv"
	"strings"
)

const idPadding = 5

// NextID returns the next unused identifier for the given prefix, formatted
// as prefix + zero-padded sequence number ("p00042"). ids may mix several
// prefixes; only identifiers starting with the exact prefix are considered,
// and malformed suffixes are skipped rather than treated as errors.
//
// Prefixes are assumed not to be prefixes of each other ("p" vs "pe" would
// cross-match); the registry sticks to the single-letter convention.
func NextID(ids []string, prefix string) string {
	max := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, ok := leadingNumber(id[len(prefix):])
		if !ok {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, idPadding, max+1)
}

// leadingNumber parses the leading decimal run of s.
func leadingNumber(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

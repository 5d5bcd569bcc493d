package conditions

import "sort"

// Suggest returns up to three canonical keys whose lookup entries are
// closest to input by edit distance. Used for "did you mean" hints.
func (r *Registry) Suggest(input string) []string {
	s := fold(input)
	if s == "" {
		return nil
	}
	if r == nil {
		r = New(nil)
	}

	limit := max(2, len([]rune(s))/3)
	best := make(map[string]int)
	for entry, key := range r.lookup {
		d := levenshtein(s, entry)
		if d > limit {
			continue
		}
		if prev, ok := best[key]; !ok || d < prev {
			best[key] = d
		}
	}

	keys := make([]string, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if best[keys[i]] != best[keys[j]] {
			return best[keys[i]] < best[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > 3 {
		keys = keys[:3]
	}
	return keys
}

// levenshtein is the edit distance between a and b counted in runes, so
// Cyrillic input is measured per letter rather than per byte.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	// Two rows instead of the full matrix.
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(rb); j++ {
		curr[0] = j
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ra)]
}

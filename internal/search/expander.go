package search

import "strings"

// Expand turns a user query into the ordered set of phrases worth
// matching against. The exact input always comes first; synonym
// expansions follow, deduplicated by exact string equality in first-seen
// order. An empty or whitespace-only query expands to just itself;
// rejecting empty queries is the caller's job.
func Expand(query string) []string {
	expanded := []string{query}
	seen := map[string]bool{query: true}

	add := func(phrases []string) {
		for _, p := range phrases {
			if !seen[p] {
				seen[p] = true
				expanded = append(expanded, p)
			}
		}
	}

	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return expanded
	}

	// Exact group match first, then partial matches in both directions so
	// "dropdown menu" still picks up the "dropdown" group.
	if phrases, ok := synonymTable[normalized]; ok {
		add(phrases)
	}
	for _, key := range synonymKeys {
		if key == normalized {
			continue
		}
		if strings.Contains(normalized, key) || strings.Contains(key, normalized) {
			add(synonymTable[key])
		}
	}

	return expanded
}

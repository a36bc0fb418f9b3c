package search

import (
	"sort"
	"strings"

	"github.com/velo-ui/knowledge/internal/models"
)

// Scoring weights. Phrase-level bonuses dominate token-level ones so a
// full title match always outranks scattered word overlap.
const (
	weightExact     = 1000
	weightPrefix    = 800
	weightSubstring = 600

	weightTokenSubstring = 100
	weightTokenExactWord = 50
	weightTokenWordStart = 25
	weightFullCoverage   = 200

	weightCategory = 10
	weightTag      = 5
	// Tag bonuses accumulate per tag; without a ceiling a tag-stuffed
	// page could outrank a clean title match, so total tag credit stops
	// at five tags.
	maxTagBonus = 25
)

// DefaultLimit caps ranked results when the caller does not specify one.
const DefaultLimit = 20

// ScoreCandidate computes the relevance of one candidate against the
// original query and its synonym expansions. Pure; no state.
func ScoreCandidate(candidate *models.RelevanceCandidate, originalQuery string, expandedQueries []string) int {
	title := strings.ToLower(candidate.Title)
	name := strings.ToLower(candidate.ComponentName)
	category := strings.ToLower(candidate.Category)

	score := 0

	// Phrase tier per expansion per field: exact beats prefix beats
	// substring, one tier per field, accumulated across expansions.
	for _, q := range expandedQueries {
		phrase := strings.ToLower(strings.TrimSpace(q))
		if phrase == "" {
			continue
		}
		score += phraseBonus(title, phrase)
		score += phraseBonus(name, phrase)
	}

	// Token pass over the union of words from the original query and all
	// expansions. Single-character tokens carry no signal and are skipped.
	titleWords := strings.Fields(title)
	nameWords := strings.Fields(name)
	tokens := tokenUnion(originalQuery, expandedQueries)

	matched := 0
	for _, token := range tokens {
		inTitle := strings.Contains(title, token)
		inName := strings.Contains(name, token)
		if !inTitle && !inName {
			continue
		}
		matched++
		score += weightTokenSubstring

		if containsWord(titleWords, token) {
			score += weightTokenExactWord
		} else if prefixesWord(titleWords, token) {
			score += weightTokenWordStart
		}
		if containsWord(nameWords, token) {
			score += weightTokenExactWord
		} else if prefixesWord(nameWords, token) {
			score += weightTokenWordStart
		}
	}

	// Full coverage: every word of the original query found a home.
	originalTokens := 0
	for _, t := range strings.Fields(strings.ToLower(originalQuery)) {
		if len(t) >= 2 {
			originalTokens++
		}
	}
	if originalTokens > 0 && matched >= originalTokens {
		score += weightFullCoverage
	}

	if category != "" && categoryMatches(category, tokens, expandedQueries) {
		score += weightCategory
	}

	score += tagBonus(candidate.Tags, tokens)

	return score
}

func phraseBonus(field, phrase string) int {
	switch {
	case field == "":
		return 0
	case field == phrase:
		return weightExact
	case strings.HasPrefix(field, phrase) || strings.HasPrefix(phrase, field):
		return weightPrefix
	case strings.Contains(field, phrase) || strings.Contains(phrase, field):
		return weightSubstring
	}
	return 0
}

// tokenUnion collects the distinct lower-cased whitespace tokens of the
// original query and every expansion, skipping tokens shorter than two
// characters, in first-seen order.
func tokenUnion(originalQuery string, expandedQueries []string) []string {
	var tokens []string
	seen := map[string]bool{}

	collect := func(s string) {
		for _, t := range strings.Fields(strings.ToLower(s)) {
			if len(t) < 2 || seen[t] {
				continue
			}
			seen[t] = true
			tokens = append(tokens, t)
		}
	}

	collect(originalQuery)
	for _, q := range expandedQueries {
		collect(q)
	}
	return tokens
}

func containsWord(words []string, token string) bool {
	for _, w := range words {
		if w == token {
			return true
		}
	}
	return false
}

func prefixesWord(words []string, token string) bool {
	for _, w := range words {
		if w != token && strings.HasPrefix(w, token) {
			return true
		}
	}
	return false
}

func categoryMatches(category string, tokens, expandedQueries []string) bool {
	for _, q := range expandedQueries {
		phrase := strings.ToLower(strings.TrimSpace(q))
		if phrase != "" && strings.Contains(category, phrase) {
			return true
		}
	}
	for _, t := range tokens {
		if strings.Contains(category, t) {
			return true
		}
	}
	return false
}

func tagBonus(tags, tokens []string) int {
	bonus := 0
	for _, tag := range tags {
		lowered := strings.ToLower(tag)
		for _, t := range tokens {
			if strings.Contains(lowered, t) || strings.Contains(t, lowered) {
				bonus += weightTag
				break
			}
		}
		if bonus >= maxTagBonus {
			return maxTagBonus
		}
	}
	return bonus
}

// Rank scores and orders candidates in place, then truncates to limit.
// Ties break by title ascending (byte order as typed) so identical
// scores always come back in the same order regardless of retrieval
// order. With no query at all, scoring is skipped and results sort
// alphabetically.
func Rank(candidates []models.RelevanceCandidate, originalQuery string, expandedQueries []string, limit int) []models.RelevanceCandidate {
	if limit <= 0 {
		limit = DefaultLimit
	}

	if strings.TrimSpace(originalQuery) == "" {
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].Title < candidates[j].Title
		})
	} else {
		for i := range candidates {
			candidates[i].Score = ScoreCandidate(&candidates[i], originalQuery, expandedQueries)
		}
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].Score != candidates[j].Score {
				return candidates[i].Score > candidates[j].Score
			}
			return candidates[i].Title < candidates[j].Title
		})
	}

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

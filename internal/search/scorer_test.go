package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velo-ui/knowledge/internal/models"
)

func score(c models.RelevanceCandidate, query string, expansions ...string) int {
	return ScoreCandidate(&c, query, expansions)
}

func TestScorePhraseTiers(t *testing.T) {
	exact := score(models.RelevanceCandidate{Title: "check"}, "check", "check")
	prefix := score(models.RelevanceCandidate{Title: "checkbox"}, "check", "check")
	substring := score(models.RelevanceCandidate{Title: "a checkbox"}, "check", "check")
	miss := score(models.RelevanceCandidate{Title: "modal"}, "check", "check")

	assert.Greater(t, exact, prefix, "exact title match must outrank prefix match")
	assert.Greater(t, prefix, substring, "prefix match must outrank substring match")
	assert.Greater(t, substring, miss)
	assert.Equal(t, 0, miss)
}

func TestScoreSynonymExactMatch(t *testing.T) {
	// "input" expands into the text-field group; the expansion phrase
	// "text field" is an exact title match and earns the top tier twice,
	// once for the title and once for the component name.
	candidate := models.RelevanceCandidate{
		Title:         "Text Field",
		ComponentName: "Text Field",
	}
	expanded := Expand("input")

	got := ScoreCandidate(&candidate, "input", expanded)
	assert.Equal(t, 2600, got)
}

func TestScoreFullCoverageBonus(t *testing.T) {
	covered := score(models.RelevanceCandidate{Title: "field text"}, "text field", "text field")
	partial := score(models.RelevanceCandidate{Title: "text only"}, "text field", "text field")

	// Scrambled word order earns no phrase tier, only token credit plus
	// the coverage bonus.
	assert.Equal(t, 500, covered)
	assert.Equal(t, 150, partial)
}

func TestScoreCategoryBonus(t *testing.T) {
	candidate := models.RelevanceCandidate{Category: "forms"}
	assert.Equal(t, weightCategory, score(candidate, "form", "form"))
}

func TestScoreTagBonusCapped(t *testing.T) {
	manyTags := make([]string, 10)
	for i := range manyTags {
		manyTags[i] = fmt.Sprintf("form-%d", i)
	}

	capped := score(models.RelevanceCandidate{Tags: manyTags}, "form", "form")
	five := score(models.RelevanceCandidate{Tags: manyTags[:5]}, "form", "form")
	two := score(models.RelevanceCandidate{Tags: manyTags[:2]}, "form", "form")

	assert.Equal(t, maxTagBonus, capped)
	assert.Equal(t, maxTagBonus, five)
	assert.Equal(t, 2*weightTag, two)
}

func TestScoreShortTokensIgnored(t *testing.T) {
	// Single-character tokens carry no signal.
	got := score(models.RelevanceCandidate{Title: "x y z"}, "a b c", "a b c")
	assert.Equal(t, 0, got)
}

func TestRankOrdersByScoreThenTitle(t *testing.T) {
	candidates := []models.RelevanceCandidate{
		{Title: "Tooltip"},
		{Title: "Select", ComponentName: "Select"},
		{Title: "Card"},
	}

	ranked := Rank(candidates, "select", []string{"select"}, 10)

	assert.Equal(t, "Select", ranked[0].Title)
	assert.Greater(t, ranked[0].Score, 0)
	// Zero-score ties break by title ascending.
	assert.Equal(t, "Card", ranked[1].Title)
	assert.Equal(t, "Tooltip", ranked[2].Title)
}

func TestRankTieBreakIsDeterministic(t *testing.T) {
	forward := []models.RelevanceCandidate{{Title: "Alpha"}, {Title: "Beta"}, {Title: "Gamma"}}
	backward := []models.RelevanceCandidate{{Title: "Gamma"}, {Title: "Beta"}, {Title: "Alpha"}}

	a := Rank(forward, "no match here", []string{"no match here"}, 10)
	b := Rank(backward, "no match here", []string{"no match here"}, 10)

	assert.Equal(t, a, b)
	assert.Equal(t, "Alpha", a[0].Title)
}

func TestRankEmptyQuerySortsAlphabetically(t *testing.T) {
	candidates := []models.RelevanceCandidate{
		{Title: "Tabs"},
		{Title: "Accordion"},
		{Title: "Modal"},
	}

	ranked := Rank(candidates, "  ", []string{"  "}, 10)

	assert.Equal(t, "Accordion", ranked[0].Title)
	assert.Equal(t, "Modal", ranked[1].Title)
	assert.Equal(t, "Tabs", ranked[2].Title)
	assert.Zero(t, ranked[0].Score)
}

func TestRankTruncatesToLimit(t *testing.T) {
	candidates := make([]models.RelevanceCandidate, 30)
	for i := range candidates {
		candidates[i] = models.RelevanceCandidate{Title: fmt.Sprintf("Component %02d", i)}
	}

	assert.Len(t, Rank(candidates, "component", []string{"component"}, 3), 3)

	candidates = make([]models.RelevanceCandidate, 30)
	for i := range candidates {
		candidates[i] = models.RelevanceCandidate{Title: fmt.Sprintf("Component %02d", i)}
	}
	assert.Len(t, Rank(candidates, "component", []string{"component"}, 0), DefaultLimit)
}

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandKeepsOriginalFirst(t *testing.T) {
	expanded := Expand("Dropdown")
	assert.Equal(t, "Dropdown", expanded[0])
	assert.Contains(t, expanded, "select")
	assert.Contains(t, expanded, "combobox")
}

func TestExpandInputGroup(t *testing.T) {
	expanded := Expand("input")

	assert.Contains(t, expanded, "text field")
	assert.Contains(t, expanded, "text input")
	assert.Contains(t, expanded, "form field")
}

func TestExpandDeduplicates(t *testing.T) {
	expanded := Expand("select")

	seen := map[string]int{}
	for _, phrase := range expanded {
		seen[phrase]++
	}
	for phrase, count := range seen {
		assert.Equal(t, 1, count, "phrase %q appears %d times", phrase, count)
	}
}

func TestExpandPartialMatch(t *testing.T) {
	// "dropdown menu" is not a table key; the "dropdown" and "menu"
	// groups should still contribute through the substring scan.
	expanded := Expand("dropdown menu")

	assert.Equal(t, "dropdown menu", expanded[0])
	assert.Contains(t, expanded, "select")
	assert.Contains(t, expanded, "navigation")
}

func TestExpandUnknownQuery(t *testing.T) {
	expanded := Expand("zzz nothing matches this")
	assert.Equal(t, []string{"zzz nothing matches this"}, expanded)
}

func TestExpandEmptyQuery(t *testing.T) {
	assert.Equal(t, []string{""}, Expand(""))
	assert.Equal(t, []string{"   "}, Expand("   "))
}

func expandUnion(phrases []string) []string {
	seen := map[string]bool{}
	var union []string
	for _, phrase := range phrases {
		for _, expanded := range Expand(phrase) {
			if !seen[expanded] {
				seen[expanded] = true
				union = append(union, expanded)
			}
		}
	}
	return union
}

func TestExpandStabilizesAfterOnePass(t *testing.T) {
	// Re-expanding an expanded set may pull in transitively linked
	// groups once; a further pass must not grow the union again.
	for _, query := range []string{"input", "dropdown", "modal", "a11y"} {
		first := Expand(query)
		second := expandUnion(first)
		third := expandUnion(second)

		assert.ElementsMatch(t, second, third, "expansion of %q kept growing past the second pass", query)
	}
}

func TestExpandDeterministic(t *testing.T) {
	first := Expand("accessibility dropdown")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Expand("accessibility dropdown"))
	}
}

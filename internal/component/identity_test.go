package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"display name", "Text Field", "textfield"},
		{"kebab case", "text-field", "textfield"},
		{"snake case", "text_field", "textfield"},
		{"already normalized", "textfield", "textfield"},
		{"mixed case", "Radio Button", "radiobutton"},
		{"surrounding whitespace", "  Modal  ", "modal"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeKey(tt.input))
		})
	}
}

func TestNormalizeKeyIdempotent(t *testing.T) {
	for _, name := range []string{"Text Field", "radio-button", "VELO_MODAL", "tabs"} {
		once := NormalizeKey(name)
		assert.Equal(t, once, NormalizeKey(once), "normalizing %q twice changed the key", name)
	}
}

func TestResolveCanonical(t *testing.T) {
	id, ok := Resolve("Text Field")
	assert.True(t, ok)
	assert.Equal(t, "textfield", id.Key)
	assert.Equal(t, "Text Field", id.Name)
}

func TestResolveAliases(t *testing.T) {
	tests := []struct {
		alias string
		key   string
	}{
		{"input", "textfield"},
		{"dropdown", "select"},
		{"radio", "radiobutton"},
		{"dialog", "modal"},
		{"Tab Group", "tabs"},
		{"collapse", "accordion"},
		{"notification", "alert"},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			id, ok := Resolve(tt.alias)
			assert.True(t, ok, "alias %q should resolve", tt.alias)
			assert.Equal(t, tt.key, id.Key)
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	id, ok := Resolve("carousel")
	assert.False(t, ok)
	assert.Equal(t, "carousel", id.Key)
}

func TestAllReturnsCopy(t *testing.T) {
	first := All()
	first[0].Name = "mutated"

	second := All()
	assert.Equal(t, "Button", second[0].Name)
	assert.Len(t, second, 12)
}

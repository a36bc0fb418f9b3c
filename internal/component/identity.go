// Package component holds the canonical identity of every Velo UI
// component and the normalization rule all user-supplied names pass
// through before any lookup.
package component

import "strings"

// Identity pairs a component's canonical display name with the
// normalized key every table lookup and fuzzy comparison uses.
type Identity struct {
	Name string
	Key  string
}

// NormalizeKey lowers the name and strips spaces, hyphens and
// underscores so "Text Field", "text-field" and "textfield" collapse to
// the same key. Normalizing an already-normalized key is a no-op.
func NormalizeKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, "-", "")
	key = strings.ReplaceAll(key, "_", "")
	return key
}

// Registry of canonical components. Aliases map onto the same identity so
// "dropdown" resolves to Select, "input" to Text Field, and so on.
var canonical = []Identity{
	{Name: "Button", Key: "button"},
	{Name: "Text Field", Key: "textfield"},
	{Name: "Checkbox", Key: "checkbox"},
	{Name: "Radio Button", Key: "radiobutton"},
	{Name: "Select", Key: "select"},
	{Name: "Accordion", Key: "accordion"},
	{Name: "Modal", Key: "modal"},
	{Name: "Tabs", Key: "tabs"},
	{Name: "Form", Key: "form"},
	{Name: "Card", Key: "card"},
	{Name: "Tooltip", Key: "tooltip"},
	{Name: "Alert", Key: "alert"},
}

var aliases = map[string]string{
	"input":        "textfield",
	"textinput":    "textfield",
	"dropdown":     "select",
	"combobox":     "select",
	"radio":        "radiobutton",
	"dialog":       "modal",
	"popup":        "modal",
	"tab":          "tabs",
	"tabgroup":     "tabs",
	"collapse":     "accordion",
	"expander":     "accordion",
	"notification": "alert",
	"banner":       "alert",
}

// Resolve maps a user-supplied component name to its canonical identity.
// The second return value is false when the name matches nothing; callers
// then skip component-specific rule tables but still run the generic
// checks.
func Resolve(name string) (Identity, bool) {
	key := NormalizeKey(name)
	if target, ok := aliases[key]; ok {
		key = target
	}
	for _, id := range canonical {
		if id.Key == key {
			return id, true
		}
	}
	return Identity{Name: name, Key: key}, false
}

// All returns the canonical component registry.
func All() []Identity {
	out := make([]Identity, len(canonical))
	copy(out, canonical)
	return out
}

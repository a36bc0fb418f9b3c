package search

import "sort"

// synonymTable maps a lower-cased phrase to the canonical phrases also
// worth matching against. Every group includes the key phrase itself.
// Hand-authored; new vocabulary is added here, not in code paths.
var synonymTable = map[string][]string{
	"input": {
		"input", "text field", "text input", "form field",
	},
	"text field": {
		"text field", "input", "text input",
	},
	"textbox": {
		"textbox", "text field", "text input",
	},
	"dropdown": {
		"dropdown", "select", "combobox", "picker",
	},
	"select": {
		"select", "dropdown", "combobox",
	},
	"checkbox": {
		"checkbox", "check box", "tick box",
	},
	"radio": {
		"radio", "radio button", "option button",
	},
	"button": {
		"button", "cta", "action button",
	},
	"modal": {
		"modal", "dialog", "popup", "overlay",
	},
	"dialog": {
		"dialog", "modal", "popup",
	},
	"accordion": {
		"accordion", "collapse", "expander", "disclosure",
	},
	"tabs": {
		"tabs", "tab group", "tab bar",
	},
	"tooltip": {
		"tooltip", "hint", "popover",
	},
	"alert": {
		"alert", "notification", "banner", "toast",
	},
	"toast": {
		"toast", "alert", "notification",
	},
	"card": {
		"card", "panel", "tile",
	},
	"form": {
		"form", "form group", "fieldset",
	},
	"spinner": {
		"spinner", "loader", "loading indicator", "progress",
	},
	"table": {
		"table", "data table", "grid",
	},
	"navigation": {
		"navigation", "nav", "menu", "navbar",
	},
	"menu": {
		"menu", "dropdown", "navigation",
	},
	"a11y": {
		"a11y", "accessibility", "aria", "screen reader",
	},
	"accessibility": {
		"accessibility", "a11y", "aria", "wcag",
	},
}

// synonymKeys holds the table keys in sorted order so substring scans
// produce the same expansion order on every call.
var synonymKeys = func() []string {
	keys := make([]string, 0, len(synonymTable))
	for k := range synonymTable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

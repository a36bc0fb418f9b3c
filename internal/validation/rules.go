// Package validation checks component markup against the Velo UI
// structural rules, the anti-pattern library and the baseline
// accessibility checks, and scores the result.
package validation

// Severity of a single validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one validation finding. Produced only at validation time,
// never persisted.
type Issue struct {
	Severity Severity `json:"severity"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Selector string   `json:"selector,omitempty"`
	Fix      string   `json:"fix,omitempty"`
	WCAG     string   `json:"wcag,omitempty"`
}

// Report is the combined outcome of a validation run. All checks run to
// completion and append here; nothing short-circuits.
type Report struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

func (r *Report) add(issue Issue) {
	if issue.Severity == SeverityError {
		r.Errors = append(r.Errors, issue)
	} else {
		r.Warnings = append(r.Warnings, issue)
	}
}

// ElementRule describes one structural element a component's markup must
// (or should) contain. Parent, when set, names the selector the element
// must live under, either as a direct child or a deeper descendant.
type ElementRule struct {
	Selector string
	Label    string
	Level    int
	Parent   string
	Required bool
}

// AttributeRequirement variants for attribute rules.
const (
	AttrPresent = "present" // attribute must exist
	AttrOneOf   = "one_of"  // attribute value must be in Allowed
	AttrInfo    = "info"    // informational only, never reported
)

// AttributeRule ties a selector to an attribute requirement. Value drift
// (present but outside Allowed) is reported as a warning; absence of a
// required attribute is an error.
type AttributeRule struct {
	Selector    string
	Attribute   string
	Requirement string
	Allowed     []string
	WCAG        string
}

// PairRule is a fixed parent/child pairing checked against the whole
// fragment regardless of which component was requested. Violations are
// always errors. The check only fires when the child is present.
type PairRule struct {
	Child   string
	Parent  string
	Direct  bool
	Message string
	Fix     string
}

// maxNestingDepth is the ancestor count past which a required element
// triggers a performance warning.
const maxNestingDepth = 10

// hierarchyRules keyed by normalized component identity. New components
// are added here as data, not as new code paths.
var hierarchyRules = map[string][]ElementRule{
	"button": {
		{Selector: "button.velo-button", Label: "button element", Level: 0, Required: true},
	},
	"textfield": {
		{Selector: ".velo-field", Label: "field container", Level: 0, Required: true},
		{Selector: "label.velo-label", Label: "field label", Level: 1, Parent: ".velo-field", Required: true},
		{Selector: "input.velo-input", Label: "input element", Level: 1, Parent: ".velo-field", Required: true},
		{Selector: ".velo-field__hint", Label: "help text", Level: 1, Parent: ".velo-field", Required: false},
	},
	"checkbox": {
		{Selector: "input[type=checkbox].velo-checkbox", Label: "checkbox input", Level: 0, Required: true},
		{Selector: "label", Label: "checkbox label", Level: 0, Required: true},
	},
	"radiobutton": {
		{Selector: "input[type=radio].velo-radio", Label: "radio input", Level: 0, Required: true},
		{Selector: "label", Label: "radio label", Level: 0, Required: true},
	},
	"select": {
		{Selector: ".velo-select", Label: "select container", Level: 0, Required: true},
		{Selector: "select", Label: "select control", Level: 1, Parent: ".velo-select", Required: true},
		{Selector: ".velo-select__chevron", Label: "chevron icon", Level: 1, Parent: ".velo-select", Required: true},
	},
	"accordion": {
		{Selector: ".velo-accordion", Label: "accordion container", Level: 0, Required: true},
		{Selector: ".velo-accordion__item", Label: "accordion item", Level: 1, Parent: ".velo-accordion", Required: true},
		{Selector: ".velo-accordion__header", Label: "item header", Level: 2, Parent: ".velo-accordion__item", Required: true},
		{Selector: ".velo-accordion__toggle", Label: "toggle control", Level: 3, Parent: ".velo-accordion__header", Required: true},
		{Selector: ".velo-accordion__panel", Label: "content panel", Level: 2, Parent: ".velo-accordion__item", Required: true},
	},
	"modal": {
		{Selector: ".velo-modal", Label: "modal container", Level: 0, Required: true},
		{Selector: ".velo-modal__body", Label: "modal body", Level: 1, Parent: ".velo-modal", Required: true},
		{Selector: ".velo-modal__header", Label: "modal header", Level: 1, Parent: ".velo-modal", Required: false},
		{Selector: ".velo-modal__close", Label: "close control", Level: 2, Parent: ".velo-modal__header", Required: false},
	},
	"tabs": {
		{Selector: ".velo-tabs", Label: "tabs container", Level: 0, Required: true},
		{Selector: "[role=tablist]", Label: "tab list", Level: 1, Parent: ".velo-tabs", Required: true},
		{Selector: "[role=tab]", Label: "tab", Level: 2, Parent: "[role=tablist]", Required: true},
		{Selector: "[role=tabpanel]", Label: "tab panel", Level: 1, Parent: ".velo-tabs", Required: true},
	},
	"form": {
		{Selector: "form.velo-form", Label: "form element", Level: 0, Required: true},
		{Selector: ".velo-field", Label: "form field", Level: 1, Parent: "form.velo-form", Required: false},
		{Selector: "button[type=submit]", Label: "submit button", Level: 1, Parent: "form.velo-form", Required: false},
	},
}

// attributeRules keyed by normalized component identity.
var attributeRules = map[string][]AttributeRule{
	"button": {
		{Selector: "button.velo-button", Attribute: "type", Requirement: AttrPresent},
		{Selector: "button.velo-button", Attribute: "type", Requirement: AttrOneOf, Allowed: []string{"button", "submit", "reset"}},
	},
	"textfield": {
		{Selector: "input.velo-input", Attribute: "type", Requirement: AttrOneOf, Allowed: []string{"text", "email", "password", "search", "tel", "url", "number"}},
		{Selector: "input.velo-input", Attribute: "autocomplete", Requirement: AttrInfo},
	},
	"select": {
		{Selector: "select", Attribute: "multiple", Requirement: AttrInfo},
	},
	"modal": {
		{Selector: ".velo-modal", Attribute: "role", Requirement: AttrPresent, WCAG: "4.1.2"},
		{Selector: ".velo-modal", Attribute: "role", Requirement: AttrOneOf, Allowed: []string{"dialog", "alertdialog"}, WCAG: "4.1.2"},
		{Selector: ".velo-modal", Attribute: "aria-modal", Requirement: AttrPresent, WCAG: "4.1.2"},
	},
	"tabs": {
		{Selector: "[role=tab]", Attribute: "aria-selected", Requirement: AttrPresent, WCAG: "4.1.2"},
		{Selector: "[role=tabpanel]", Attribute: "aria-labelledby", Requirement: AttrPresent, WCAG: "1.3.1"},
	},
}

// pairingRules are component-independent structural invariants.
var pairingRules = []PairRule{
	{
		Child:   ".velo-accordion__toggle",
		Parent:  ".velo-accordion__header",
		Direct:  true,
		Message: "accordion toggle must be a direct child of its header",
		Fix:     "move the .velo-accordion__toggle element inside .velo-accordion__header",
	},
	{
		Child:   ".velo-select__chevron",
		Parent:  ".velo-select",
		Direct:  true,
		Message: "select chevron icon must be a direct child of the select container",
		Fix:     "move the .velo-select__chevron element inside .velo-select",
	},
	{
		Child:   ".velo-modal__close",
		Parent:  ".velo-modal",
		Direct:  false,
		Message: "modal close control must live inside the modal container",
		Fix:     "move the .velo-modal__close element inside .velo-modal",
	},
	{
		Child:   "li",
		Parent:  "ul, ol, menu",
		Direct:  true,
		Message: "list items must be direct children of a list element",
		Fix:     "wrap the li elements in a ul or ol",
	},
}

// formComponents are the identities the form-structure checks apply to.
var formComponents = map[string]bool{
	"textfield":   true,
	"checkbox":    true,
	"radiobutton": true,
	"select":      true,
	"form":        true,
}

package validation

import "sort"

// Troubleshooting priorities.
const (
	PriorityCritical = "CRITICAL"
	PriorityHigh     = "HIGH"
	PriorityMedium   = "MEDIUM"
)

// TroubleshootingEntry is a human-readable remediation hint surfaced for
// a known class of validation issue.
type TroubleshootingEntry struct {
	Symptom  string `json:"symptom"`
	Cause    string `json:"cause"`
	Fix      string `json:"fix"`
	Priority string `json:"priority"`
}

// troubleshootingTable maps issue categories to remediation advice. A
// category contributes one entry no matter how many individual issues
// carry it.
var troubleshootingTable = map[string]TroubleshootingEntry{
	"help_text_order": {
		Symptom:  "help text renders below the input, detached from its label",
		Cause:    "the hint element is placed after the input in the markup",
		Fix:      "move the hint between the label and the input",
		Priority: PriorityCritical,
	},
	"missing_element": {
		Symptom:  "component renders incompletely or not at all",
		Cause:    "a structural element the component requires is missing",
		Fix:      "add the missing element named in the error",
		Priority: PriorityCritical,
	},
	"misplaced_element": {
		Symptom:  "component styles or behavior do not apply",
		Cause:    "an element sits outside the container the stylesheet expects",
		Fix:      "nest the element under its required parent",
		Priority: PriorityHigh,
	},
	"pairing": {
		Symptom:  "interactive parts of the component do not respond",
		Cause:    "a control is detached from the container that wires it up",
		Fix:      "restore the documented parent/child structure",
		Priority: PriorityHigh,
	},
	"control_label": {
		Symptom:  "screen readers announce the field without a name",
		Cause:    "the control has no linked label or aria-label",
		Fix:      "associate a label via for/id or add aria-label",
		Priority: PriorityCritical,
	},
	"label_for": {
		Symptom:  "clicking the label does not focus the input",
		Cause:    "the label is missing its for attribute",
		Fix:      "point the label's for attribute at the input id",
		Priority: PriorityHigh,
	},
	"radio_group": {
		Symptom:  "radio options announce as unrelated controls",
		Cause:    "the radios are not wrapped in a fieldset or radiogroup",
		Fix:      "group the options in a fieldset with a legend",
		Priority: PriorityHigh,
	},
	"chevron_interactive": {
		Symptom:  "keyboard focus lands on a dead chevron icon",
		Cause:    "the decorative chevron is rendered as an interactive element",
		Fix:      "use a span or svg with aria-hidden for the chevron",
		Priority: PriorityHigh,
	},
	"img_alt": {
		Symptom:  "images are invisible to assistive technology",
		Cause:    "an img element has no alt attribute",
		Fix:      "add alt text, or alt=\"\" for decoration",
		Priority: PriorityHigh,
	},
	"duplicate_id": {
		Symptom:  "labels and ARIA references resolve to the wrong element",
		Cause:    "the same id appears on more than one element",
		Fix:      "make every id unique",
		Priority: PriorityHigh,
	},
	"missing_attribute": {
		Symptom:  "component behaves inconsistently across browsers",
		Cause:    "a required attribute is absent",
		Fix:      "add the attribute named in the error",
		Priority: PriorityMedium,
	},
	"attribute_value": {
		Symptom:  "component renders with an unexpected variant",
		Cause:    "an attribute carries a value outside the documented set",
		Fix:      "use one of the documented values",
		Priority: PriorityMedium,
	},
	"aria_describedby": {
		Symptom:  "screen readers never read the help text",
		Cause:    "the control does not reference its hint via aria-describedby",
		Fix:      "add aria-describedby pointing at the hint id",
		Priority: PriorityMedium,
	},
	"checkbox_fieldset": {
		Symptom:  "a lone checkbox announces as an empty group",
		Cause:    "a single checkbox is wrapped in a fieldset",
		Fix:      "drop the fieldset around single checkboxes",
		Priority: PriorityMedium,
	},
	"init_marker": {
		Symptom:  "the component never becomes interactive",
		Cause:    "the root element is missing data-velo-init",
		Fix:      "add data-velo-init to the component root",
		Priority: PriorityMedium,
	},
	"nesting_depth": {
		Symptom:  "the page feels sluggish when the component updates",
		Cause:    "the component is buried in deeply nested wrappers",
		Fix:      "flatten the surrounding markup",
		Priority: PriorityMedium,
	},
}

var priorityRank = map[string]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
}

// Troubleshoot maps the categories present in a report to a ranked list
// of remediation entries, highest priority first. Each known category
// contributes exactly one entry regardless of how many issues share it.
func Troubleshoot(report Report) []TroubleshootingEntry {
	seen := map[string]bool{}
	var entries []TroubleshootingEntry

	collect := func(issues []Issue) {
		for _, issue := range issues {
			if seen[issue.Category] {
				continue
			}
			seen[issue.Category] = true
			if entry, ok := troubleshootingTable[issue.Category]; ok {
				entries = append(entries, entry)
			}
		}
	}
	collect(report.Errors)
	collect(report.Warnings)

	sort.SliceStable(entries, func(i, j int) bool {
		return priorityRank[entries[i].Priority] < priorityRank[entries[j].Priority]
	})
	return entries
}

package validation

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// checkFormStructure runs the form-control rules. Only invoked for form
// components (text field, checkbox, radio, select, complete form).
func (v *Validator) checkFormStructure(doc *goquery.Document, key string, report *Report) {
	v.checkHelpTextOrder(doc, report)
	v.checkLabelPairing(doc, report)
	v.checkDescribedBy(doc, report)
	v.checkRedundantRequired(doc, report)

	switch key {
	case "checkbox":
		v.checkCheckboxFieldset(doc, report)
	case "radiobutton":
		v.checkRadioGrouping(doc, report)
	case "select":
		v.checkChevronInteractive(doc, report)
	case "form":
		v.checkCheckboxFieldset(doc, report)
		v.checkRadioGrouping(doc, report)
		v.checkChevronInteractive(doc, report)
	}
}

// checkHelpTextOrder enforces that help text sits between the label and
// the input. Help text rendered after the input is the single most
// confusing layout failure the design system produces, so this is an
// error, not a warning.
func (v *Validator) checkHelpTextOrder(doc *goquery.Document, report *Report) {
	order := documentOrder(doc)

	doc.Find(".velo-field").Each(func(_ int, field *goquery.Selection) {
		label := field.Find("label").First()
		input := field.Find("input, select, textarea").First()
		hint := field.Find(".velo-field__hint").First()
		if label.Length() == 0 || input.Length() == 0 || hint.Length() == 0 {
			return
		}

		labelPos := nodePosition(order, label)
		inputPos := nodePosition(order, input)
		hintPos := nodePosition(order, hint)
		if hintPos > labelPos && hintPos < inputPos {
			return
		}
		report.add(Issue{
			Severity: SeverityError,
			Category: "help_text_order",
			Message:  "help text must appear between the label and the input, not after the input",
			Selector: ".velo-field__hint",
			Fix:      "move the .velo-field__hint element between the label and the input",
			WCAG:     "1.3.2",
		})
	})
}

// checkLabelPairing verifies label for / input id wiring. A label with
// no for attribute is an error; an input with no id can still be labeled
// another way, so that only warns.
func (v *Validator) checkLabelPairing(doc *goquery.Document, report *Report) {
	doc.Find("label").Each(func(_ int, label *goquery.Selection) {
		if _, ok := label.Attr("for"); !ok {
			// A label wrapping its control does not need for.
			if label.Find("input, select, textarea").Length() > 0 {
				return
			}
			report.add(Issue{
				Severity: SeverityError,
				Category: "label_for",
				Message:  "label is missing its for attribute",
				Selector: "label",
				Fix:      "add for=\"<input id>\" to the label",
				WCAG:     "1.3.1",
			})
		}
	})

	doc.Find("input, select, textarea").Each(func(_ int, control *goquery.Selection) {
		if control.Is("input[type=hidden]") {
			return
		}
		if _, ok := control.Attr("id"); !ok {
			report.add(Issue{
				Severity: SeverityWarning,
				Category: "input_id",
				Message:  "form control has no id, so labels cannot reference it",
				Fix:      "add an id and point the label's for attribute at it",
				WCAG:     "1.3.1",
			})
		}
	})
}

// checkCheckboxFieldset warns when a lone checkbox is wrapped in a
// fieldset. Fieldsets group multiple related controls; a single checkbox
// inside one reads as an empty group to screen readers.
func (v *Validator) checkCheckboxFieldset(doc *goquery.Document, report *Report) {
	doc.Find("fieldset").Each(func(_ int, fs *goquery.Selection) {
		checkboxes := fs.Find("input[type=checkbox]").Length()
		radios := fs.Find("input[type=radio]").Length()
		if checkboxes == 1 && radios == 0 {
			report.add(Issue{
				Severity: SeverityWarning,
				Category: "checkbox_fieldset",
				Message:  "a single checkbox does not need a fieldset wrapper",
				Selector: "fieldset",
				Fix:      "remove the fieldset, or keep it only when grouping related controls",
				WCAG:     "1.3.1",
			})
		}
	})
}

// checkRadioGrouping requires every radio input to live inside a
// grouping container so the options announce as one question.
func (v *Validator) checkRadioGrouping(doc *goquery.Document, report *Report) {
	doc.Find("input[type=radio]").Each(func(_ int, radio *goquery.Selection) {
		if radio.ParentsFiltered("fieldset, [role=radiogroup]").Length() == 0 {
			report.add(Issue{
				Severity: SeverityError,
				Category: "radio_group",
				Message:  "radio input is not inside a fieldset or radiogroup",
				Selector: "input[type=radio]",
				Fix:      "wrap the radio options in a fieldset with a legend",
				WCAG:     "1.3.1",
			})
		}
	})
}

// checkChevronInteractive flags a select chevron rendered as an
// interactive element. The icon is decoration; making it focusable
// creates a dead tab stop over the real control.
func (v *Validator) checkChevronInteractive(doc *goquery.Document, report *Report) {
	doc.Find(".velo-select__chevron").Each(func(_ int, chevron *goquery.Selection) {
		_, hasClick := chevron.Attr("onclick")
		_, hasTabindex := chevron.Attr("tabindex")
		if chevron.Is("button, a") || hasClick || hasTabindex {
			report.add(Issue{
				Severity: SeverityError,
				Category: "chevron_interactive",
				Message:  "select chevron icon must not be an interactive element",
				Selector: ".velo-select__chevron",
				Fix:      "render the chevron as a span or svg with aria-hidden=\"true\"",
				WCAG:     "4.1.2",
			})
		}
	})
}

// checkDescribedBy warns when help text exists but the control does not
// reference it.
func (v *Validator) checkDescribedBy(doc *goquery.Document, report *Report) {
	doc.Find(".velo-field").Each(func(_ int, field *goquery.Selection) {
		hint := field.Find(".velo-field__hint").First()
		input := field.Find("input, select, textarea").First()
		if hint.Length() == 0 || input.Length() == 0 {
			return
		}
		if _, ok := input.Attr("aria-describedby"); !ok {
			report.add(Issue{
				Severity: SeverityWarning,
				Category: "aria_describedby",
				Message:  "help text is present but the control has no aria-describedby",
				Fix:      fmt.Sprintf("add aria-describedby=%q to the control", hintID(hint)),
				WCAG:     "1.3.1",
			})
		}
	})
}

func hintID(hint *goquery.Selection) string {
	if id, ok := hint.Attr("id"); ok {
		return id
	}
	return "<hint id>"
}

// checkRedundantRequired flags native required combined with its ARIA
// equivalent on the same control.
func (v *Validator) checkRedundantRequired(doc *goquery.Document, report *Report) {
	doc.Find("input[required][aria-required], select[required][aria-required], textarea[required][aria-required]").Each(func(_ int, control *goquery.Selection) {
		report.add(Issue{
			Severity: SeverityWarning,
			Category: "redundant_required",
			Message:  "required and aria-required on the same control are redundant",
			Fix:      "keep the native required attribute and drop aria-required",
			WCAG:     "4.1.2",
		})
	})
}

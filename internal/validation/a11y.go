package validation

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// checkAccessibility runs the tree-query accessibility checks that are
// awkward to express as text patterns: heading level sequence, control
// labeling and button naming. Image text alternatives are covered by the
// img_alt entry of the pattern table.
func (v *Validator) checkAccessibility(doc *goquery.Document, report *Report) {
	v.checkHeadingSequence(doc, report)
	v.checkControlLabels(doc, report)
	v.checkButtonNames(doc, report)
}

// checkHeadingSequence warns when heading levels skip more than one
// level in document order (h2 followed by h4).
func (v *Validator) checkHeadingSequence(doc *goquery.Document, report *Report) {
	previous := 0
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, heading *goquery.Selection) {
		level, err := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(heading), "h"))
		if err != nil {
			return
		}
		if previous > 0 && level > previous+1 {
			report.add(Issue{
				Severity: SeverityWarning,
				Category: "heading_skip",
				Message:  "heading levels skip from h" + strconv.Itoa(previous) + " to h" + strconv.Itoa(level),
				Fix:      "use consecutive heading levels",
				WCAG:     "1.3.1",
			})
		}
		previous = level
	})
}

// checkControlLabels requires every visible form control to have an
// accessible name: aria-label, aria-labelledby, a label[for] pointing at
// it, or a wrapping label.
func (v *Validator) checkControlLabels(doc *goquery.Document, report *Report) {
	doc.Find("input, select, textarea").Each(func(_ int, control *goquery.Selection) {
		if control.Is("input[type=hidden], input[type=submit], input[type=button]") {
			return
		}
		if hasAccessibleName(doc, control) {
			return
		}
		report.add(Issue{
			Severity: SeverityError,
			Category: "control_label",
			Message:  "form control has no associated label",
			Fix:      "link a label with for/id, or add aria-label",
			WCAG:     "3.3.2",
		})
	})
}

// checkButtonNames requires every button to expose visible text or an
// accessible-name attribute (icon-only buttons).
func (v *Validator) checkButtonNames(doc *goquery.Document, report *Report) {
	doc.Find("button").Each(func(_ int, button *goquery.Selection) {
		if strings.TrimSpace(button.Text()) != "" {
			return
		}
		if attrNonEmpty(button, "aria-label") || attrNonEmpty(button, "aria-labelledby") || attrNonEmpty(button, "title") {
			return
		}
		report.add(Issue{
			Severity: SeverityError,
			Category: "button_name",
			Message:  "button has no visible text or accessible name",
			Fix:      "add text content or an aria-label",
			WCAG:     "4.1.2",
		})
	})
}

// hasAccessibleName reports whether a form control is labeled through
// any of the accepted mechanisms.
func hasAccessibleName(doc *goquery.Document, control *goquery.Selection) bool {
	if attrNonEmpty(control, "aria-label") || attrNonEmpty(control, "aria-labelledby") {
		return true
	}
	if control.ParentsFiltered("label").Length() > 0 {
		return true
	}
	if id, ok := control.Attr("id"); ok && id != "" {
		if doc.Find("label[for=" + escapeSelectorValue(id) + "]").Length() > 0 {
			return true
		}
	}
	return false
}

func attrNonEmpty(s *goquery.Selection, name string) bool {
	value, ok := s.Attr(name)
	return ok && strings.TrimSpace(value) != ""
}

// escapeSelectorValue quotes characters that carry meaning in a CSS
// attribute selector so user-supplied ids cannot break the query.
func escapeSelectorValue(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

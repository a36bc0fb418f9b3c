package validation

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/velo-ui/knowledge/internal/component"
)

// Validator runs the structural and accessibility checks. It holds no
// mutable state; concurrent Validate calls are independent.
type Validator struct {
	logger *logrus.Logger
}

func NewValidator(logger *logrus.Logger) *Validator {
	return &Validator{logger: logger}
}

// Validate checks an HTML fragment against the rule tables for the named
// component plus the generic diagnostics. Unknown components skip the
// component-specific tables; everything else still runs. A fragment that
// cannot be parsed yields a single parse error, never a propagated
// failure.
func (v *Validator) Validate(componentName, fragment string) Report {
	var report Report

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		report.add(Issue{
			Severity: SeverityError,
			Category: "parse",
			Message:  "fragment could not be parsed as HTML",
			Fix:      "check the markup for unclosed or malformed tags",
		})
		return report
	}

	identity, known := component.Resolve(componentName)
	if !known {
		v.logger.WithField("component", componentName).Debug("No rule tables for component, running generic checks only")
	}

	if known {
		v.checkHierarchy(doc, identity.Key, &report)
		v.checkAttributes(doc, identity.Key, &report)
		v.checkNestingDepth(doc, identity.Key, &report)
	}
	v.checkPairings(doc, &report)
	if formComponents[identity.Key] {
		v.checkFormStructure(doc, identity.Key, &report)
	}
	v.checkPatterns(doc, fragment, identity.Key, &report)
	v.checkAccessibility(doc, &report)

	v.logger.WithFields(logrus.Fields{
		"component": identity.Key,
		"errors":    len(report.Errors),
		"warnings":  len(report.Warnings),
	}).Debug("Validation completed")

	return report
}

// checkHierarchy verifies required and optional structural elements.
// Missing required elements and misplaced required elements are errors;
// optional elements follow the same parent rule but only warn.
func (v *Validator) checkHierarchy(doc *goquery.Document, key string, report *Report) {
	rules, ok := hierarchyRules[key]
	if !ok {
		return
	}

	for _, rule := range rules {
		matches := doc.Find(rule.Selector)
		if matches.Length() == 0 {
			if rule.Required {
				report.add(Issue{
					Severity: SeverityError,
					Category: "missing_element",
					Message:  fmt.Sprintf("required %s (%s) is missing", rule.Label, rule.Selector),
					Selector: rule.Selector,
					Fix:      fmt.Sprintf("add a %s element matching %s", rule.Label, rule.Selector),
				})
			}
			continue
		}

		// Only enforce the parent relationship when the parent actually
		// exists in the fragment; its absence is already reported by the
		// parent's own rule.
		if rule.Parent == "" || doc.Find(rule.Parent).Length() == 0 {
			continue
		}
		matches.Each(func(_ int, s *goquery.Selection) {
			if s.ParentsFiltered(rule.Parent).Length() > 0 {
				return
			}
			severity := SeverityError
			if !rule.Required {
				severity = SeverityWarning
			}
			report.add(Issue{
				Severity: severity,
				Category: "misplaced_element",
				Message:  fmt.Sprintf("%s must be placed inside %s", rule.Label, rule.Parent),
				Selector: rule.Selector,
				Fix:      fmt.Sprintf("move the %s element inside %s", rule.Label, rule.Parent),
			})
		})
	}
}

// checkAttributes enforces the attribute rule table. A missing required
// attribute is an error; a present attribute with a value outside the
// allowed set is a warning (value drift is lower severity than absence).
func (v *Validator) checkAttributes(doc *goquery.Document, key string, report *Report) {
	rules, ok := attributeRules[key]
	if !ok {
		return
	}

	for _, rule := range rules {
		rule := rule
		doc.Find(rule.Selector).Each(func(_ int, s *goquery.Selection) {
			value, present := s.Attr(rule.Attribute)
			switch rule.Requirement {
			case AttrPresent:
				if !present {
					report.add(Issue{
						Severity: SeverityError,
						Category: "missing_attribute",
						Message:  fmt.Sprintf("%s is missing the %s attribute", rule.Selector, rule.Attribute),
						Selector: rule.Selector,
						Fix:      fmt.Sprintf("add the %s attribute", rule.Attribute),
						WCAG:     rule.WCAG,
					})
				}
			case AttrOneOf:
				if !present {
					return
				}
				for _, allowed := range rule.Allowed {
					if value == allowed {
						return
					}
				}
				report.add(Issue{
					Severity: SeverityWarning,
					Category: "attribute_value",
					Message:  fmt.Sprintf("%s has %s=%q, expected one of %s", rule.Selector, rule.Attribute, value, strings.Join(rule.Allowed, ", ")),
					Selector: rule.Selector,
					Fix:      fmt.Sprintf("set %s to one of the allowed values", rule.Attribute),
					WCAG:     rule.WCAG,
				})
			}
		})
	}
}

// checkPairings runs the fixed parent/child table against the whole
// fragment. Always errors.
func (v *Validator) checkPairings(doc *goquery.Document, report *Report) {
	for _, rule := range pairingRules {
		rule := rule
		doc.Find(rule.Child).Each(func(_ int, s *goquery.Selection) {
			ok := false
			if rule.Direct {
				ok = s.Parent().Is(rule.Parent)
			} else {
				ok = s.ParentsFiltered(rule.Parent).Length() > 0
			}
			if !ok {
				report.add(Issue{
					Severity: SeverityError,
					Category: "pairing",
					Message:  rule.Message,
					Selector: rule.Child,
					Fix:      rule.Fix,
				})
			}
		})
	}
}

// checkNestingDepth warns when a required element sits deeper than the
// performance threshold.
func (v *Validator) checkNestingDepth(doc *goquery.Document, key string, report *Report) {
	rules, ok := hierarchyRules[key]
	if !ok {
		return
	}

	for _, rule := range rules {
		if !rule.Required {
			continue
		}
		rule := rule
		doc.Find(rule.Selector).Each(func(_ int, s *goquery.Selection) {
			depth := s.Parents().Length()
			if depth > maxNestingDepth {
				report.add(Issue{
					Severity: SeverityWarning,
					Category: "nesting_depth",
					Message:  fmt.Sprintf("%s is nested %d levels deep; deep trees hurt rendering performance", rule.Label, depth),
					Selector: rule.Selector,
					Fix:      "flatten the surrounding markup",
				})
			}
		})
	}
}

// checkPatterns tests every applicable entry of the anti-pattern library
// against the fragment.
func (v *Validator) checkPatterns(doc *goquery.Document, raw, key string, report *Report) {
	for _, pattern := range diagnosticPatterns {
		if !pattern.appliesTo(key) {
			continue
		}
		if pattern.matches(doc, raw) {
			report.add(Issue{
				Severity: pattern.Severity,
				Category: pattern.ID,
				Message:  pattern.Message,
				Fix:      pattern.Fix,
				WCAG:     pattern.WCAG,
			})
		}
	}
}

// documentOrder assigns each node its position in a depth-first walk so
// checks can compare document positions across subtrees.
func documentOrder(doc *goquery.Document) map[*html.Node]int {
	order := map[*html.Node]int{}
	index := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		order[n] = index
		index++
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return order
}

func nodePosition(order map[*html.Node]int, s *goquery.Selection) int {
	if len(s.Nodes) == 0 {
		return -1
	}
	return order[s.Nodes[0]]
}

package validation

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DiagnosticPattern is one entry of the static anti-pattern library.
// A pattern matches either through a text rule against the raw fragment
// or through a tree query; the rule data shape is the same either way so
// the matching primitive can be swapped without touching the table.
type DiagnosticPattern struct {
	ID        string
	Pattern   *regexp.Regexp
	Query     func(doc *goquery.Document) bool
	Severity  Severity
	AppliesTo []string // component keys, or {"all"}
	Message   string
	Fix       string
	WCAG      string
}

func (p DiagnosticPattern) appliesTo(componentKey string) bool {
	for _, key := range p.AppliesTo {
		if key == "all" || key == componentKey {
			return true
		}
	}
	return false
}

func (p DiagnosticPattern) matches(doc *goquery.Document, raw string) bool {
	if p.Pattern != nil {
		return p.Pattern.MatchString(raw)
	}
	if p.Query != nil {
		return p.Query(doc)
	}
	return false
}

var diagnosticPatterns = []DiagnosticPattern{
	{
		ID:        "img_alt",
		Severity:  SeverityError,
		AppliesTo: []string{"all"},
		Message:   "image without a text alternative",
		Fix:       "add an alt attribute; use alt=\"\" for purely decorative images",
		WCAG:      "1.1.1",
		Query: func(doc *goquery.Document) bool {
			missing := false
			doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
				if _, ok := s.Attr("alt"); !ok {
					missing = true
					return false
				}
				return true
			})
			return missing
		},
	},
	{
		ID:        "empty_heading",
		Pattern:   regexp.MustCompile(`(?is)<h[1-6][^>]*>\s*</h[1-6]>`),
		Severity:  SeverityError,
		AppliesTo: []string{"all"},
		Message:   "heading element with no content",
		Fix:       "give the heading text or remove it",
		WCAG:      "2.4.6",
	},
	{
		ID:        "duplicate_id",
		Severity:  SeverityError,
		AppliesTo: []string{"all"},
		Message:   "duplicate id attribute values in fragment",
		Fix:       "make every id unique within the page",
		WCAG:      "4.1.1",
		Query: func(doc *goquery.Document) bool {
			seen := map[string]bool{}
			dup := false
			doc.Find("[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
				id, _ := s.Attr("id")
				if seen[id] {
					dup = true
					return false
				}
				seen[id] = true
				return true
			})
			return dup
		},
	},
	{
		ID:        "nested_link",
		Pattern:   regexp.MustCompile(`(?is)<a\b[^>]*>[^<]*<a\b`),
		Severity:  SeverityError,
		AppliesTo: []string{"all"},
		Message:   "link nested inside another link",
		Fix:       "split the links into separate elements",
		WCAG:      "4.1.1",
	},
	{
		ID:        "positive_tabindex",
		Pattern:   regexp.MustCompile(`(?i)tabindex\s*=\s*["']?[1-9]`),
		Severity:  SeverityWarning,
		AppliesTo: []string{"all"},
		Message:   "positive tabindex overrides the natural focus order",
		Fix:       "use tabindex=\"0\" or rely on document order",
		WCAG:      "2.4.3",
	},
	{
		ID:        "placeholder_label",
		Severity:  SeverityWarning,
		AppliesTo: []string{"all"},
		Message:   "placeholder used as the only label for an input",
		Fix:       "add a visible label or an aria-label",
		WCAG:      "3.3.2",
		Query: func(doc *goquery.Document) bool {
			found := false
			doc.Find("input[placeholder]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
				if hasAccessibleName(doc, s) {
					return true
				}
				found = true
				return false
			})
			return found
		},
	},
	{
		ID:        "clickable_div",
		Pattern:   regexp.MustCompile(`(?i)<(?:div|span)\b[^>]*\bonclick`),
		Severity:  SeverityError,
		AppliesTo: []string{"all"},
		Message:   "clickable div or span instead of a native button",
		Fix:       "use a <button> element so keyboard and assistive tech work",
		WCAG:      "2.1.1",
	},
	{
		ID:        "class_prefix",
		Pattern:   regexp.MustCompile(`(?i)class\s*=\s*["'][^"']*\bvelo[_A-Z]`),
		Severity:  SeverityWarning,
		AppliesTo: []string{"all"},
		Message:   "design-system class names use the velo- prefix with hyphen separators",
		Fix:       "rename the class to the velo-kebab-case form",
	},
	{
		ID:        "init_marker",
		Severity:  SeverityWarning,
		AppliesTo: []string{"accordion", "tabs", "modal", "select"},
		Message:   "interactive component root is missing its data-velo-init marker",
		Fix:       "add data-velo-init to the component root so the runtime picks it up",
		Query: func(doc *goquery.Document) bool {
			missing := false
			doc.Find(".velo-accordion, .velo-tabs, .velo-modal, .velo-select").EachWithBreak(func(_ int, s *goquery.Selection) bool {
				if _, ok := s.Attr("data-velo-init"); !ok {
					missing = true
					return false
				}
				return true
			})
			return missing
		},
	},
	{
		ID:        "contrast_on_dark",
		Severity:  SeverityWarning,
		AppliesTo: []string{"all"},
		Message:   "text over a dark surface without the velo-on-dark contrast class",
		Fix:       "add velo-on-dark to text content inside velo-bg-dark surfaces",
		WCAG:      "1.4.3",
		Query: func(doc *goquery.Document) bool {
			unsafe := false
			doc.Find(".velo-bg-dark").EachWithBreak(func(_ int, s *goquery.Selection) bool {
				if strings.TrimSpace(s.Text()) == "" {
					return true
				}
				if s.HasClass("velo-on-dark") || s.Find(".velo-on-dark").Length() > 0 {
					return true
				}
				unsafe = true
				return false
			})
			return unsafe
		},
	},
}

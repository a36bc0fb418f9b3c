package seeder

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/velo-ui/knowledge/internal/models"
)

// ContentProcessor turns a scraped documentation page into corpus
// records: plain text, code examples, guidance entries and tags.
type ContentProcessor struct {
	multiWhitespace *regexp.Regexp
	jsMarkers       *regexp.Regexp
}

func NewContentProcessor() *ContentProcessor {
	return &ContentProcessor{
		multiWhitespace: regexp.MustCompile(`\s+`),
		jsMarkers:       regexp.MustCompile(`(?i)data-velo-init|velo\.init|addEventListener`),
	}
}

// CleanContent normalizes extracted page text.
func (cp *ContentProcessor) CleanContent(content string) string {
	lines := strings.Split(content, "\n")
	var cleaned []string
	emptyLines := 0

	for _, line := range lines {
		line = strings.TrimSpace(cp.multiWhitespace.ReplaceAllString(line, " "))
		if line == "" {
			emptyLines++
			if emptyLines <= 1 {
				cleaned = append(cleaned, "")
			}
		} else {
			emptyLines = 0
			cleaned = append(cleaned, line)
		}
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// ExtractCodeExamples pulls code blocks out of the page in document
// order, tagging language and interactivity.
func (cp *ContentProcessor) ExtractCodeExamples(sel *goquery.Selection) []models.CodeExample {
	var examples []models.CodeExample

	sel.Find("pre code, pre.velo-code").Each(func(i int, block *goquery.Selection) {
		source := strings.TrimSpace(block.Text())
		if source == "" {
			return
		}

		language := "html"
		if class, ok := block.Attr("class"); ok {
			for _, c := range strings.Fields(class) {
				if lang, found := strings.CutPrefix(c, "language-"); found {
					language = lang
				}
			}
		}

		examples = append(examples, models.CodeExample{
			Language:    language,
			Source:      source,
			Position:    i,
			Complexity:  cp.estimateComplexity(source),
			Complete:    strings.Contains(source, "<html") || strings.Contains(source, "velo-form"),
			Interactive: cp.jsMarkers.MatchString(source),
		})
	})

	return examples
}

// guidanceHeadings maps documentation section headings to guidance kinds.
var guidanceHeadings = map[string]string{
	"when to use":     models.GuidanceWhenToUse,
	"when not to use": models.GuidanceWhenNotToUse,
	"best practices":  models.GuidanceBestPractice,
	"do":              models.GuidanceDo,
	"don't":           models.GuidanceDont,
	"dont":            models.GuidanceDont,
	"caveats":         models.GuidanceCaveat,
	"limitations":     models.GuidanceLimitation,
	"notes":           models.GuidanceNote,
}

// ExtractGuidance walks section headings and collects guidance entries
// from the recognized sections. List items become individual entries.
func (cp *ContentProcessor) ExtractGuidance(sel *goquery.Selection) []models.GuidanceEntry {
	var entries []models.GuidanceEntry

	sel.Find("h2, h3").Each(func(_ int, heading *goquery.Selection) {
		kind, ok := guidanceHeadings[strings.ToLower(strings.TrimSpace(heading.Text()))]
		if !ok {
			return
		}

		section := heading.NextUntil("h2, h3")
		items := section.Find("li")
		if items.Length() == 0 {
			text := cp.CleanContent(section.Text())
			if text != "" {
				entries = append(entries, models.GuidanceEntry{Kind: kind, Text: text})
			}
			return
		}

		items.Each(func(i int, item *goquery.Selection) {
			text := strings.TrimSpace(item.Text())
			if text == "" {
				return
			}
			entries = append(entries, models.GuidanceEntry{
				Kind:     kind,
				Text:     text,
				Priority: items.Length() - i,
			})
		})
	})

	return entries
}

// ExtractTags derives tags from the page's metadata list and content.
func (cp *ContentProcessor) ExtractTags(sel *goquery.Selection) []models.Tag {
	var tags []models.Tag
	seen := map[string]bool{}

	add := func(tag, category string) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, models.Tag{Tag: tag, Category: category})
	}

	sel.Find("[data-velo-tag]").Each(func(_ int, el *goquery.Selection) {
		tag, _ := el.Attr("data-velo-tag")
		category := el.AttrOr("data-velo-tag-category", models.TagFeature)
		add(tag, category)
	})

	if sel.Find("[aria-label], [role]").Length() > 0 {
		add("aria", models.TagAccessibility)
	}
	if cp.jsMarkers.MatchString(sel.Text()) {
		add("requires-js", models.TagInteraction)
	}

	return tags
}

func (cp *ContentProcessor) estimateComplexity(source string) string {
	lines := strings.Count(source, "\n") + 1
	switch {
	case lines <= 5:
		return "basic"
	case lines <= 20:
		return "intermediate"
	default:
		return "advanced"
	}
}

// ContentHash fingerprints page content for change detection.
func ContentHash(content string) string {
	hash := md5.Sum([]byte(content))
	return hex.EncodeToString(hash[:])
}

package seeder

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velo-ui/knowledge/internal/models"
)

func parse(t *testing.T, markup string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc.Selection
}

func TestCleanContent(t *testing.T) {
	cp := NewContentProcessor()

	input := "Title\n\n\n\n  spaced    out   text  \n\nmore"
	expected := "Title\n\nspaced out text\n\nmore"
	assert.Equal(t, expected, cp.CleanContent(input))
}

func TestExtractCodeExamples(t *testing.T) {
	cp := NewContentProcessor()
	sel := parse(t, `
<article>
  <pre><code class="language-html">&lt;button class="velo-button" type="button"&gt;Save&lt;/button&gt;</code></pre>
  <pre><code class="language-js">document.querySelector('.velo-modal').addEventListener('click', close);</code></pre>
  <pre><code></code></pre>
</article>`)

	examples := cp.ExtractCodeExamples(sel)

	require.Len(t, examples, 2)
	assert.Equal(t, "html", examples[0].Language)
	assert.Equal(t, "basic", examples[0].Complexity)
	assert.False(t, examples[0].Interactive)

	assert.Equal(t, "js", examples[1].Language)
	assert.True(t, examples[1].Interactive)
}

func TestExtractCodeExamplesDefaultsToHTML(t *testing.T) {
	cp := NewContentProcessor()
	sel := parse(t, `<pre><code>&lt;div&gt;plain&lt;/div&gt;</code></pre>`)

	examples := cp.ExtractCodeExamples(sel)

	require.Len(t, examples, 1)
	assert.Equal(t, "html", examples[0].Language)
}

func TestExtractGuidance(t *testing.T) {
	cp := NewContentProcessor()
	sel := parse(t, `
<article>
  <h2>When to use</h2>
  <ul>
    <li>Collecting a single line of text</li>
    <li>Email and password entry</li>
  </ul>
  <h2>Overview</h2>
  <p>Ignored section.</p>
  <h3>Caveats</h3>
  <p>Avoid for multi-line content.</p>
</article>`)

	entries := cp.ExtractGuidance(sel)

	require.Len(t, entries, 3)

	assert.Equal(t, models.GuidanceWhenToUse, entries[0].Kind)
	assert.Equal(t, "Collecting a single line of text", entries[0].Text)
	assert.Equal(t, 2, entries[0].Priority)
	assert.Equal(t, 1, entries[1].Priority)

	assert.Equal(t, models.GuidanceCaveat, entries[2].Kind)
	assert.Equal(t, "Avoid for multi-line content.", entries[2].Text)
}

func TestExtractTags(t *testing.T) {
	cp := NewContentProcessor()
	sel := parse(t, `
<article>
  <span data-velo-tag="form-input"></span>
  <span data-velo-tag="Form-Input"></span>
  <span data-velo-tag="keyboard" data-velo-tag-category="accessibility"></span>
  <button aria-label="close">x</button>
</article>`)

	tags := cp.ExtractTags(sel)

	require.Len(t, tags, 3)
	assert.Equal(t, models.Tag{Tag: "form-input", Category: models.TagFeature}, tags[0])
	assert.Equal(t, models.Tag{Tag: "keyboard", Category: "accessibility"}, tags[1])
	assert.Equal(t, models.Tag{Tag: "aria", Category: models.TagAccessibility}, tags[2])
}

func TestContentHash(t *testing.T) {
	a := ContentHash("button documentation")
	b := ContentHash("button documentation")
	c := ContentHash("modal documentation")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32)
}

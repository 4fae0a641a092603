package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "just text", "just text"},
		{"quill paragraphs", "<p>Hello <strong>world</strong></p><p>Second</p>", "Hello world Second"},
		{"entities", "<p>Tom &amp; Jerry &lt;3</p>", "Tom & Jerry <3"},
		{"line breaks", "<p>a<br>b<br/>c</p>", "a b c"},
		{"lists", "<ol><li>one</li><li>two</li></ol>", "one two"},
		{"script removed", "<p>ok</p><script>alert(1)</script>", "ok"},
		{"whitespace", "  <p>  spaced   out </p>  ", "spaced out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "Hello world", Snippet("<p>Hello world</p>", 0))
	assert.Equal(t, "Hello world", Snippet("<p>Hello world</p>", 11))
	assert.Equal(t, "Hello…", Snippet("<p>Hello world</p>", 7))
	assert.Equal(t, "…", Snippet("<p>Hello</p>", 1))
	assert.Equal(t, "añb…", Snippet("añbñcñ", 4))
}

func TestFromMarkdown(t *testing.T) {
	out, err := FromMarkdown("# Title\n\nsome *emphasis*")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<em>emphasis</em>")
	assert.Equal(t, "Title some emphasis", PlainText(out))
}

func TestRendererCachesAndKeepsWords(t *testing.T) {
	r := NewRenderer("notty")

	out := r.Render("<p>hello preview pane</p>", 40)
	assert.Contains(t, out, "hello preview pane")
	assert.Equal(t, 1, r.cache.Len())

	again := r.Render("<p>hello preview pane</p>", 40)
	assert.Equal(t, out, again)
	assert.Equal(t, 1, r.cache.Len())

	r.Render("<p>hello preview pane</p>", 60)
	assert.Equal(t, 2, r.cache.Len())

	assert.Equal(t, "", r.Render("<p></p>", 40))
	assert.False(t, strings.Contains(out, "<p>"))
}

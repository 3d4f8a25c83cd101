package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML("# Title\n\nsome **bold** text")
	assert.NoError(t, err)
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderHTMLSanitized(t *testing.T) {
	out, err := RenderHTML("hello <script>alert(1)</script> world")
	assert.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "hello")
}

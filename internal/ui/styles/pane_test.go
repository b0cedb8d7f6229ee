package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPane_Basic(t *testing.T) {
	result := Pane{Title: "notes.md", Width: 20, Height: 5}.Render("content")

	assert.Contains(t, result, "╭", "missing top-left corner")
	assert.Contains(t, result, "╯", "missing bottom-right corner")

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "notes.md", "title not found in first line")
	assert.Contains(t, lines[1], "content")
}

func TestPane_EveryLineHasPaneWidth(t *testing.T) {
	result := Pane{Title: "T", Width: 12, Height: 4}.Render("short\na line that is far too long")

	for i, line := range strings.Split(result, "\n") {
		assert.Equal(t, 12, ansi.StringWidth(line), "line %d", i)
	}
}

func TestPane_LongTitleTruncated(t *testing.T) {
	result := Pane{Title: "a-very-long-document-name.md", Width: 16, Height: 3}.Render("")

	top := strings.Split(result, "\n")[0]
	assert.Contains(t, top, "...")
	assert.Equal(t, 16, ansi.StringWidth(top))
}

func TestPane_NoTitleWhenTooNarrow(t *testing.T) {
	result := Pane{Title: "Title", Width: 5, Height: 3}.Render("")

	assert.NotContains(t, result, "Title")
}

func TestPane_WideRunes(t *testing.T) {
	result := Pane{Width: 8, Height: 3}.Render("日本語の文章")

	line := strings.Split(result, "\n")[1]
	assert.Equal(t, 8, ansi.StringWidth(line))
}

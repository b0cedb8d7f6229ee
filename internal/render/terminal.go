package render

import (
	"github.com/charmbracelet/glamour"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Terminal renders Markdown as styled terminal output for the preview pane.
type Terminal struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// NewTerminal creates a terminal renderer with the given wrap width and style.
// style should be "dark", "light" or "notty". Defaults to "dark" if empty.
// A fixed style avoids WithAutoStyle, whose terminal background query leaks
// escape sequence responses into the input stream.
func NewTerminal(width int, style string) (*Terminal, error) {
	if style == "" {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Terminal{renderer: r, width: width, style: style}, nil
}

// Width returns the configured word wrap width.
func (r *Terminal) Width() int {
	return r.width
}

// Style returns the glamour style name.
func (r *Terminal) Style() string {
	return r.style
}

// Render transforms markdown to styled terminal output.
func (r *Terminal) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}

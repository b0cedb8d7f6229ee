package mdeditor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/mdpad/internal/lineindex"
	"github.com/zjrosen/mdpad/internal/ui/styles"
)

// Reverse video marks the cursor; a dim background marks the selection.
const (
	cursorOn     = "\x1b[7m"
	cursorOff    = "\x1b[27m"
	selectionOn  = "\x1b[48;5;238;38;5;255m"
	selectionOff = "\x1b[49;39m"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	body := m.editorPane()
	if m.showPreview {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.previewPane())
	}

	parts := []string{m.toolbarView(), body, m.statusView()}
	if h := m.helpView(); h != "" {
		parts = append(parts, h)
	}
	screen := zone.Scan(lipgloss.JoinVertical(lipgloss.Left, parts...))
	screen = m.toast.Overlay(screen, m.width, m.height)
	return m.logs.Overlay(screen)
}

func (m Model) toolbarView() string {
	style := styles.ButtonStyle
	if m.editable() != nil {
		style = styles.ButtonDisabledStyle
	}

	buttons := make([]string, 0, len(toolbar))
	for _, b := range toolbar {
		s := style
		if b.action == actionSave {
			s = styles.ButtonStyle
		}
		buttons = append(buttons, zone.Mark(buttonZoneID(b.action), s.Render(b.label)))
	}
	return ansi.Truncate(strings.Join(buttons, " "), m.width, "")
}

func (m Model) editorPane() string {
	h := max(m.bodyHeight()-2, 1)
	textW := max(m.textWidth(), 1)
	gw := m.gutterWidth()

	lines := m.input.Lines()
	numbers := lineindex.Numbers(m.ctrl.Lines())
	cursorLine, _ := m.input.LineCol(m.input.Cursor())

	start := 0
	for i := 0; i < m.scrollTop && i < len(lines); i++ {
		start += len([]rune(lines[i])) + 1
	}

	out := make([]string, 0, h)
	for i := m.scrollTop; i < len(lines) && len(out) < h; i++ {
		var gutter string
		if gw > 0 {
			n := i + 1
			if i < len(numbers) {
				n = numbers[i]
			}
			style := styles.GutterStyle
			if i == cursorLine {
				style = styles.GutterActiveStyle
			}
			gutter = style.Render(fmt.Sprintf("%*d ", gw-1, n))
		}

		var text string
		if m.input.Len() == 0 {
			text = m.renderPlaceholder()
		} else {
			text = ansi.Cut(m.renderLine(lines[i], start), m.scrollLeft, m.scrollLeft+textW)
		}
		out = append(out, gutter+text)
		start += len([]rune(lines[i])) + 1
	}

	pane := styles.Pane{
		Title:   m.cfg.Title,
		Width:   m.paneWidthEditor(),
		Height:  m.bodyHeight(),
		Focused: m.input.Focused(),
	}
	return zone.Mark(zoneText, pane.Render(strings.Join(out, "\n")))
}

func (m Model) renderPlaceholder() string {
	placeholder := m.ctrl.Options().Placeholder
	cursor := ""
	if m.input.Focused() {
		cursor = cursorOn + " " + cursorOff
	}
	return cursor + styles.PlaceholderStyle.Render(placeholder)
}

// renderLine draws one line with the cursor and selection. start is the
// buffer offset of the line's first rune.
func (m Model) renderLine(line string, start int) string {
	sel := m.input.Selection()
	cursor := m.input.Cursor()
	focused := m.input.Focused()

	var b strings.Builder
	pos := start
	state := -1
	for len(line) > 0 {
		cluster, rest, _, newState := uniseg.StepString(line, state)
		n := len([]rune(cluster))
		if cluster == "\t" {
			cluster = " "
		}
		switch {
		case focused && pos == cursor:
			b.WriteString(cursorOn + cluster + cursorOff)
		case pos >= sel.Start && pos < sel.End:
			b.WriteString(selectionOn + cluster + selectionOff)
		default:
			b.WriteString(cluster)
		}
		pos += n
		line = rest
		state = newState
	}
	if focused && pos == cursor {
		b.WriteString(cursorOn + " " + cursorOff)
	}
	return b.String()
}

func (m Model) previewPane() string {
	pane := styles.Pane{
		Title:  "Preview",
		Width:  m.paneWidthPreview(),
		Height: m.bodyHeight(),
	}
	return zone.Mark(zonePreview, pane.Render(m.preview.View()))
}

func (m Model) statusView() string {
	parts := []string{}
	if m.cfg.Title != "" {
		parts = append(parts, m.cfg.Title)
	}
	parts = append(parts, fmt.Sprintf("%d lines", m.ctrl.Lines()))
	if m.histLen > 0 {
		parts = append(parts, fmt.Sprintf("history %d/%d", m.histPos+1, m.histLen))
	}

	switch {
	case m.ctrl.ReadOnly():
		parts = append(parts, styles.MutedStyle.Render("read-only"))
	case m.ctrl.Options().Disabled:
		parts = append(parts, styles.MutedStyle.Render("disabled"))
	case m.dirty:
		parts = append(parts, styles.DirtyStyle.Render("modified"))
	default:
		parts = append(parts, styles.SavedStyle.Render("saved"))
	}

	switch {
	case m.status != "" && m.statusErr:
		parts = append(parts, styles.ErrorStyle.Render(m.status))
	case m.status != "":
		parts = append(parts, m.status)
	case m.lastLog != "":
		parts = append(parts, styles.MutedStyle.Render(m.lastLog))
	}

	return truncate.StringWithTail(strings.Join(parts, " • "), uint(max(m.width, 0)), "…")
}

func (m Model) helpView() string {
	return m.help.View(m.keys)
}

// bodyHeight is the height of the panes, borders included.
func (m Model) bodyHeight() int {
	// toolbar + status bar
	chrome := 2 + lipgloss.Height(m.helpView())
	return max(m.height-chrome, 3)
}

func (m Model) paneWidthEditor() int {
	if !m.showPreview {
		return m.width
	}
	return m.width / 2
}

func (m Model) paneWidthPreview() int {
	return m.width - m.paneWidthEditor()
}

// gutterWidth is the width of the line number column including its trailing space.
func (m Model) gutterWidth() int {
	if !m.ctrl.Options().LineNum {
		return 0
	}
	return len(strconv.Itoa(m.ctrl.Lines())) + 1
}

func (m Model) textWidth() int {
	return m.paneWidthEditor() - 2 - m.gutterWidth()
}

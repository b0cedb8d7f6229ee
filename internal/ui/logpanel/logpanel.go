// Package logpanel shows recent debug log lines in a box drawn over the
// editor, with a level filter.
package logpanel

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/mdpad/internal/log"
	"github.com/zjrosen/mdpad/internal/ui/overlay"
	"github.com/zjrosen/mdpad/internal/ui/styles"
)

const (
	maxEntries = 500

	viewportMaxHeight = 20
	viewportMinHeight = 3
	boxMaxWidth       = 120
	boxMinWidth       = 30
)

// Model is the log panel state.
type Model struct {
	visible  bool
	minLevel log.Level
	entries  []string
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden panel showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Append records a log line, dropping the oldest past the buffer size.
func (m *Model) Append(entry string) {
	entry = strings.TrimRight(entry, "\n")
	if entry == "" {
		return
	}
	m.entries = append(m.entries, entry)
	if over := len(m.entries) - maxEntries; over > 0 {
		m.entries = append(m.entries[:0:0], m.entries[over:]...)
	}
	if m.visible {
		m.refresh()
		m.viewport.GotoBottom()
	}
}

// Len returns the number of buffered lines.
func (m Model) Len() int {
	return len(m.entries)
}

// Update handles keys while the panel is open. It reports whether the key
// was consumed.
func (m Model) Update(msg tea.KeyMsg) (Model, bool) {
	if !m.visible {
		return m, false
	}

	switch msg.String() {
	case "c":
		m.entries = nil
	case "d":
		m.minLevel = log.LevelDebug
	case "i":
		m.minLevel = log.LevelInfo
	case "w":
		m.minLevel = log.LevelWarn
	case "e":
		m.minLevel = log.LevelError
	case "j", "down":
		m.viewport.ScrollDown(1)
		return m, true
	case "k", "up":
		m.viewport.ScrollUp(1)
		return m, true
	case "g":
		m.viewport.GotoTop()
		return m, true
	case "G":
		m.viewport.GotoBottom()
		return m, true
	case "esc":
		m.visible = false
		return m, true
	default:
		return m, false
	}
	m.refresh()
	return m, true
}

// Visible reports whether the panel is open.
func (m Model) Visible() bool {
	return m.visible
}

// MinLevel returns the lowest level shown.
func (m Model) MinLevel() log.Level {
	return m.minLevel
}

// Toggle opens or closes the panel.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
		m.viewport.GotoBottom()
	}
}

// SetSize updates the screen size the panel centers in.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.visible {
		m.refresh()
	}
}

// View renders the panel box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	w := m.boxWidth()

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.BorderFocusColor).
		PaddingLeft(1).
		Render("Logs")
	divider := lipgloss.NewStyle().
		Foreground(styles.BorderDefaultColor).
		Render(strings.Repeat("─", w))

	body := strings.Join([]string{title, divider, m.viewport.View(), divider, m.hints()}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderDefaultColor).
		Width(w).
		Render(body)
}

// Overlay draws the panel centered over bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	s := overlay.Screen{Width: m.width, Height: m.height, Anchor: overlay.Center}
	return s.Place(m.View(), bg)
}

func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	// Title, two dividers, hints and the border take six rows.
	h := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	w := m.boxWidth() - 2
	m.viewport = viewport.New(w, h)
	m.viewport.SetContent(m.content(w))
}

func (m Model) content(width int) string {
	var lines []string
	for _, entry := range m.entries {
		level, ok := LevelOf(entry)
		if ok && level < m.minLevel {
			continue
		}
		lines = append(lines, colorize(entry, level, ok, width))
	}
	if len(lines) == 0 {
		return styles.MutedStyle.Italic(true).Render("No logs to display")
	}
	return strings.Join(lines, "\n")
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m Model) hints() string {
	muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	hints := []string{muted.Render("[c] Clear")}
	for _, f := range []struct {
		label string
		level log.Level
	}{
		{"[d] Debug", log.LevelDebug},
		{"[i] Info", log.LevelInfo},
		{"[w] Warn", log.LevelWarn},
		{"[e] Error", log.LevelError},
	} {
		style := muted
		if f.level == m.minLevel {
			style = active
		}
		hints = append(hints, style.Render(f.label))
	}
	return strings.Join(hints, "  ")
}

// LevelOf extracts the level tag written by the log package.
func LevelOf(entry string) (log.Level, bool) {
	for _, level := range []log.Level{log.LevelError, log.LevelWarn, log.LevelInfo, log.LevelDebug} {
		if strings.Contains(entry, "["+level.String()+"]") {
			return level, true
		}
	}
	return log.LevelDebug, false
}

func colorize(entry string, level log.Level, known bool, width int) string {
	if ansi.StringWidth(entry) > width {
		entry = ansi.Truncate(entry, width-1, "…")
	}

	color := styles.TextPrimaryColor
	if known {
		switch level {
		case log.LevelError:
			color = styles.StatusErrorColor
		case log.LevelWarn:
			color = styles.StatusWarningColor
		case log.LevelInfo:
			color = styles.BorderFocusColor
		default:
			color = styles.TextMutedColor
		}
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

// Package toaster shows short-lived notices (saved, reloaded, failed) at the
// bottom of the screen.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/mdpad/internal/ui/overlay"
	"github.com/zjrosen/mdpad/internal/ui/styles"
)

// Kind selects the toast's icon and border color.
type Kind int

const (
	Success Kind = iota
	Error
	Info
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 2 * time.Second

// DismissMsg hides the toast it was scheduled for.
type DismissMsg struct {
	seq int
}

// Model holds the current toast. The zero value shows nothing.
type Model struct {
	text string
	kind Kind
	seq  int
}

// New creates an empty toaster.
func New() Model {
	return Model{}
}

// Show replaces the current toast and schedules its dismissal after d.
func (m Model) Show(text string, kind Kind, d time.Duration) (Model, tea.Cmd) {
	m.text = text
	m.kind = kind
	m.seq++
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}

// Update hides the toast when msg belongs to it. A dismissal scheduled for
// an older toast is ignored.
func (m Model) Update(msg DismissMsg) Model {
	if msg.seq == m.seq {
		m.text = ""
	}
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.text != ""
}

// Text returns the current toast message.
func (m Model) Text() string {
	return m.text
}

// View renders the toast box.
func (m Model) View() string {
	if m.text == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	var icon string
	switch m.kind {
	case Error:
		style = style.BorderForeground(styles.StatusErrorColor)
		icon = "✗"
	case Info:
		style = style.BorderForeground(styles.BorderFocusColor)
		icon = "•"
	default:
		style = style.BorderForeground(styles.StatusSuccessColor)
		icon = "✓"
	}
	return style.Render(icon + " " + m.text)
}

// Overlay draws the toast near the bottom of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if m.text == "" {
		return bg
	}
	s := overlay.Screen{Width: width, Height: height, Anchor: overlay.Bottom, Margin: 1}
	return s.Place(m.View(), bg)
}

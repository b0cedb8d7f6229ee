package logpanel

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/mdpad/internal/log"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func open(t *testing.T) Model {
	t.Helper()
	m := New()
	m.SetSize(100, 30)
	m.Append("2026-10-19T10:00:00 [DEBUG] [history] committed position=1\n")
	m.Append("2026-10-19T10:00:01 [INFO] [editor] saved path=/tmp/a.md")
	m.Append("2026-10-19T10:00:02 [WARN] [watcher] slow reload")
	m.Append("2026-10-19T10:00:03 [ERROR] [render] preview render failed")
	m.Toggle()
	require.True(t, m.Visible())
	return m
}

func TestNew_Hidden(t *testing.T) {
	m := New()

	require.False(t, m.Visible())
	require.Empty(t, m.View())
	require.Equal(t, "bg", m.Overlay("bg"))
	require.Equal(t, log.LevelDebug, m.MinLevel())
}

func TestView_ShowsEntries(t *testing.T) {
	m := open(t)

	view := ansi.Strip(m.View())
	require.Contains(t, view, "Logs")
	require.Contains(t, view, "committed position=1")
	require.Contains(t, view, "preview render failed")
	require.Contains(t, view, "[w] Warn")
}

func TestUpdate_LevelFilter(t *testing.T) {
	m := open(t)

	m, handled := m.Update(runes("w"))
	require.True(t, handled)
	require.Equal(t, log.LevelWarn, m.MinLevel())

	view := ansi.Strip(m.View())
	require.NotContains(t, view, "committed position=1")
	require.NotContains(t, view, "saved path")
	require.Contains(t, view, "slow reload")
	require.Contains(t, view, "preview render failed")

	m, _ = m.Update(runes("e"))
	require.NotContains(t, ansi.Strip(m.View()), "slow reload")
}

func TestUpdate_Clear(t *testing.T) {
	m := open(t)

	m, _ = m.Update(runes("c"))

	require.Zero(t, m.Len())
	require.Contains(t, ansi.Strip(m.View()), "No logs to display")
}

func TestUpdate_EscCloses(t *testing.T) {
	m := open(t)

	m, handled := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.True(t, handled)
	require.False(t, m.Visible())
}

func TestUpdate_IgnoredWhenHiddenOrUnbound(t *testing.T) {
	m := New()
	_, handled := m.Update(runes("c"))
	require.False(t, handled)

	m = open(t)
	_, handled = m.Update(runes("x"))
	require.False(t, handled)
}

func TestAppend_BoundsBuffer(t *testing.T) {
	m := New()
	for i := 0; i < maxEntries+25; i++ {
		m.Append(fmt.Sprintf("[DEBUG] [ui] line %d", i))
	}
	m.Append("")

	require.Equal(t, maxEntries, m.Len())
	require.Contains(t, m.entries[0], "line 25")
}

func TestLevelOf(t *testing.T) {
	tests := []struct {
		entry string
		level log.Level
		ok    bool
	}{
		{"x [ERROR] [ui] boom", log.LevelError, true},
		{"x [WARN] [ui] hmm", log.LevelWarn, true},
		{"x [INFO] [ui] ok", log.LevelInfo, true},
		{"x [DEBUG] [ui] detail", log.LevelDebug, true},
		{"plain text", log.LevelDebug, false},
	}
	for _, tt := range tests {
		level, ok := LevelOf(tt.entry)
		require.Equal(t, tt.ok, ok, tt.entry)
		require.Equal(t, tt.level, level, tt.entry)
	}
}

func TestColorize_TruncatesLongEntries(t *testing.T) {
	out := ansi.Strip(colorize(strings.Repeat("a", 50), log.LevelInfo, true, 10))

	require.Equal(t, 10, ansi.StringWidth(out))
	require.True(t, strings.HasSuffix(out, "…"))
}

func TestOverlay_CentersOverBackground(t *testing.T) {
	m := open(t)
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 100)+"\n", 30), "\n")

	lines := strings.Split(ansi.Strip(m.Overlay(bg)), "\n")

	require.Len(t, lines, 30)
	require.Equal(t, strings.Repeat(".", 100), lines[0])
	require.Contains(t, strings.Join(lines, "\n"), "Logs")
}

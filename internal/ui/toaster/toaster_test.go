package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New()

	require.False(t, m.Visible())
	require.Empty(t, m.View())
}

func TestShow(t *testing.T) {
	m, cmd := New().Show("saved notes.md", Success, time.Millisecond)

	require.NotNil(t, cmd)
	require.True(t, m.Visible())
	view := m.View()
	require.Contains(t, view, "✓ saved notes.md")
	require.Contains(t, view, "╭")
}

func TestView_Kinds(t *testing.T) {
	tests := []struct {
		kind Kind
		icon string
	}{
		{Success, "✓"},
		{Error, "✗"},
		{Info, "•"},
	}
	for _, tt := range tests {
		m, _ := New().Show("msg", tt.kind, time.Second)
		require.Contains(t, m.View(), tt.icon+" msg")
	}
}

func TestDismiss_HidesMatchingToast(t *testing.T) {
	m, cmd := New().Show("saved", Success, time.Millisecond)

	msg := cmd()
	require.IsType(t, DismissMsg{}, msg)

	m = m.Update(msg.(DismissMsg))
	require.False(t, m.Visible())
}

func TestDismiss_IgnoresStaleToast(t *testing.T) {
	m, first := New().Show("first", Success, time.Millisecond)
	m, _ = m.Show("second", Error, time.Second)

	m = m.Update(first().(DismissMsg))

	require.True(t, m.Visible())
	require.Equal(t, "second", m.Text())
}

func TestOverlay(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 30)+"\n", 8), "\n")

	require.Equal(t, bg, New().Overlay(bg, 30, 8))

	m, _ := New().Show("saved", Success, time.Second)
	lines := strings.Split(ansi.Strip(m.Overlay(bg, 30, 8)), "\n")

	require.Len(t, lines, 8)
	require.Contains(t, lines[5], "saved")
	require.Equal(t, strings.Repeat(".", 30), lines[7])
	require.Equal(t, strings.Repeat(".", 30), lines[0])
}

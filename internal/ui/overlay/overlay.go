// Package overlay composites a foreground block over an already rendered
// screen, keeping the ANSI styling of both.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Anchor says where the foreground sits on the screen.
type Anchor int

const (
	// Center places the block in the middle of the screen.
	Center Anchor = iota
	// Bottom places the block horizontally centered, Margin rows above the last line.
	Bottom
)

// Screen describes the background being drawn over.
type Screen struct {
	Width  int
	Height int
	Anchor Anchor
	Margin int
}

// Place draws fg over bg at the screen's anchor.
func (s Screen) Place(fg, bg string) string {
	x, y := s.origin(lipgloss.Width(fg), lipgloss.Height(fg))
	return Compose(fg, bg, x, y, s.Height)
}

func (s Screen) origin(w, h int) (x, y int) {
	x = (s.Width - w) / 2
	switch s.Anchor {
	case Bottom:
		y = s.Height - h - s.Margin
	default:
		y = (s.Height - h) / 2
	}
	return max(x, 0), max(y, 0)
}

// Compose writes each line of fg into bg starting at column x, row y.
// bg is padded with blank rows up to height.
func Compose(fg, bg string, x, y, height int) string {
	rows := strings.Split(bg, "\n")
	for len(rows) < height {
		rows = append(rows, "")
	}

	for i, line := range strings.Split(fg, "\n") {
		row := y + i
		if row >= len(rows) {
			break
		}
		rows[row] = splice(rows[row], line, x)
	}
	return strings.Join(rows, "\n")
}

// splice replaces the cells of bg under fg, padding bg when it is too short.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}

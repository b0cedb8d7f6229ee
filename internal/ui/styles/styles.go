// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"}

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Gutter
	GutterColor       = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#5C5C5C"}
	GutterActiveColor = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#BBBBBB"}

	// Toolbar buttons
	ButtonTextColor     = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonBgColor       = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#2D3436"}
	ButtonDisabledColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#555555"}

	GutterStyle       = lipgloss.NewStyle().Foreground(GutterColor)
	GutterActiveStyle = lipgloss.NewStyle().Foreground(GutterActiveColor).Bold(true)
	PlaceholderStyle  = lipgloss.NewStyle().Foreground(TextPlaceholderColor).Italic(true)
	MutedStyle        = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorStyle        = lipgloss.NewStyle().Foreground(StatusErrorColor)
	SavedStyle        = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	DirtyStyle        = lipgloss.NewStyle().Foreground(StatusWarningColor)

	ButtonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(ButtonTextColor).
			Background(ButtonBgColor)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(ButtonDisabledColor)
)

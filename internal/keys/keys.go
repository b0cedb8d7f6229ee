// Package keys contains keybinding definitions.
package keys

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/mdpad/internal/insert"
)

// KeyMap defines the keybindings for the editor.
type KeyMap struct {
	// History
	Undo key.Binding
	Redo key.Binding

	// Insertions
	H1    key.Binding
	H2    key.Binding
	H3    key.Binding
	H4    key.Binding
	Image key.Binding
	Link  key.Binding
	Code  key.Binding

	// General
	Save    key.Binding
	Preview key.Binding
	Help    key.Binding
	Logs    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// History
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "redo"),
		),

		// Insertions
		H1: key.NewBinding(
			key.WithKeys("alt+1"),
			key.WithHelp("alt+1", "heading 1"),
		),
		H2: key.NewBinding(
			key.WithKeys("alt+2"),
			key.WithHelp("alt+2", "heading 2"),
		),
		H3: key.NewBinding(
			key.WithKeys("alt+3"),
			key.WithHelp("alt+3", "heading 3"),
		),
		H4: key.NewBinding(
			key.WithKeys("alt+4"),
			key.WithHelp("alt+4", "heading 4"),
		),
		Image: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "image"),
		),
		Link: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "link"),
		),
		Code: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "code"),
		),

		// General
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Preview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "toggle preview"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Logs: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "toggle logs"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// Insertion returns the insertion kind bound to msg, if any.
func (k KeyMap) Insertion(msg tea.KeyMsg) (insert.Kind, bool) {
	for _, b := range []struct {
		binding key.Binding
		kind    insert.Kind
	}{
		{k.H1, insert.H1},
		{k.H2, insert.H2},
		{k.H3, insert.H3},
		{k.H4, insert.H4},
		{k.Image, insert.Image},
		{k.Link, insert.Link},
		{k.Code, insert.Code},
	} {
		if key.Matches(msg, b.binding) {
			return b.kind, true
		}
	}
	return 0, false
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Undo, k.Redo, k.Preview, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Undo, k.Redo},                                   // History
		{k.H1, k.H2, k.H3, k.H4, k.Image, k.Link, k.Code}, // Insert
		{k.Save, k.Preview, k.Help, k.Logs, k.Quit},        // General
	}
}

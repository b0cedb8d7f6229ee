package editor

import "github.com/zjrosen/mdpad/internal/insert"

// Renderer converts Markdown to the form handed to the host.
type Renderer interface {
	Render(markdown string) (string, error)
}

// Surface is the live text input. It owns the cursor; the controller only
// reads the selection at the moment of an insertion and writes back where
// it should land.
type Surface interface {
	Selection() insert.Range
	SetSelection(r insert.Range)
	// SetValue installs a buffer produced outside the surface (insertion,
	// undo, redo, external value change).
	SetValue(text string)
	Focus()
}

// Host receives change and save notifications.
type Host interface {
	OnChange(value, rendered string)
	OnSave(value, rendered string)
}

// HostFuncs adapts plain functions to Host. Nil fields are ignored.
type HostFuncs struct {
	Change func(value, rendered string)
	Save   func(value, rendered string)
}

// OnChange implements Host.
func (h HostFuncs) OnChange(value, rendered string) {
	if h.Change != nil {
		h.Change(value, rendered)
	}
}

// OnSave implements Host.
func (h HostFuncs) OnSave(value, rendered string) {
	if h.Save != nil {
		h.Save(value, rendered)
	}
}

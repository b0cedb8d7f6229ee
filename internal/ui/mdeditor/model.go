// Package mdeditor provides the terminal Markdown editor: a toolbar, a text
// pane with a line number gutter, an optional rendered preview and a status
// bar, all driven by an editor.Controller.
package mdeditor

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/mdpad/internal/editor"
	"github.com/zjrosen/mdpad/internal/history"
	"github.com/zjrosen/mdpad/internal/insert"
	"github.com/zjrosen/mdpad/internal/keys"
	"github.com/zjrosen/mdpad/internal/log"
	"github.com/zjrosen/mdpad/internal/pubsub"
	"github.com/zjrosen/mdpad/internal/render"
	"github.com/zjrosen/mdpad/internal/ui/logpanel"
	"github.com/zjrosen/mdpad/internal/ui/toaster"
)

// PreviewFactory builds the preview renderer for a pane content width.
type PreviewFactory func(width int) (render.Renderer, error)

// Config wires the model to its controller and optional collaborators.
type Config struct {
	// Controller owns the buffer and history. Its surface must be Input.
	Controller *editor.Controller
	Input      *Input
	Keys       keys.KeyMap
	Title      string

	// Preview builds the preview renderer. Nil disables the preview pane.
	Preview     PreviewFactory
	ShowPreview bool

	// HistoryEvents, when set, keeps the status bar in step with debounced commits.
	HistoryEvents *pubsub.Broker[history.Event]

	// Changes signals that the document changed on disk; Load reads it back.
	Changes <-chan struct{}
	Load    func() (string, error)

	// SaveErr reports the outcome of the host's last save.
	SaveErr func() error

	// OnPreviewToggle is told the new preview state, e.g. to persist it.
	OnPreviewToggle func(shown bool) error
}

// ExternalChangeMsg carries the document as reloaded from disk.
type ExternalChangeMsg struct {
	Value string
	Err   error
}

// Model is the editor screen.
type Model struct {
	cfg   Config
	ctrl  *editor.Controller
	input *Input
	keys  keys.KeyMap
	help  help.Model
	logs  logpanel.Model
	toast toaster.Model

	ctx             context.Context
	cancel          context.CancelFunc
	historyListener *pubsub.ContinuousListener[history.Event]
	logListener     *log.LogListener

	preview         viewport.Model
	previewRenderer render.Renderer
	previewWidth    int
	showPreview     bool

	width      int
	height     int
	scrollTop  int
	scrollLeft int

	histPos int
	histLen int

	dirty     bool
	onDisk    string // content last saved or loaded
	quitArmed bool
	status    string
	statusErr bool
	lastLog   string
}

// New creates the editor screen.
func New(cfg Config) Model {
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		cfg:         cfg,
		ctrl:        cfg.Controller,
		input:       cfg.Input,
		keys:        cfg.Keys,
		help:        help.New(),
		logs:        logpanel.New(),
		toast:       toaster.New(),
		ctx:         ctx,
		cancel:      cancel,
		showPreview: cfg.ShowPreview && cfg.Preview != nil,
	}
	m.input.Focus()
	if cfg.HistoryEvents != nil {
		m.historyListener = pubsub.NewContinuousListener(ctx, cfg.HistoryEvents)
	}
	m.logListener = log.NewListener(ctx)

	st := m.ctrl.Status()
	m.histPos, m.histLen = st.Position, st.Len
	m.onDisk = m.ctrl.Value()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.historyListener != nil {
		cmds = append(cmds, m.historyListener.Listen())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	cmds = append(cmds, m.watchCmd())
	return tea.Batch(cmds...)
}

// Close stops the background listeners.
func (m Model) Close() {
	m.cancel()
}

// Value returns the current buffer.
func (m Model) Value() string {
	return m.ctrl.Value()
}

// Dirty reports whether there are unsaved edits.
func (m Model) Dirty() bool {
	return m.dirty
}

// Status returns the current status message.
func (m Model) Status() string {
	return m.status
}

// PreviewShown reports whether the preview pane is visible.
func (m Model) PreviewShown() bool {
	return m.showPreview
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logs.SetSize(msg.Width, msg.Height)
		m.layout()
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case pubsub.Event[history.Event]:
		m.histPos, m.histLen = msg.Payload.Position, msg.Payload.Len
		return m, m.historyListener.Listen()

	case pubsub.Event[string]:
		m.lastLog = strings.TrimSpace(msg.Payload)
		m.logs.Append(msg.Payload)
		return m, m.logListener.Listen()

	case toaster.DismissMsg:
		m.toast = m.toast.Update(msg)
		return m, nil

	case ExternalChangeMsg:
		cmd := m.handleExternalChange(msg)
		return m, tea.Batch(cmd, m.watchCmd())
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		if m.dirty && !m.quitArmed {
			m.quitArmed = true
			m.setStatus("unsaved changes: press ctrl+c again to quit", true)
			return m, nil
		}
		return m, tea.Quit
	}
	m.quitArmed = false

	if key.Matches(msg, m.keys.Logs) {
		m.logs.Toggle()
		return m, nil
	}
	if m.logs.Visible() {
		// The open panel takes every key.
		m.logs, _ = m.logs.Update(msg)
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Save):
		cmd = m.runAction(actionSave)
	case key.Matches(msg, m.keys.Undo):
		cmd = m.runAction(actionUndo)
	case key.Matches(msg, m.keys.Redo):
		cmd = m.runAction(actionRedo)
	case key.Matches(msg, m.keys.Preview):
		m.togglePreview()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	default:
		if kind, ok := m.keys.Insertion(msg); ok {
			m.insert(kind)
		} else {
			m.edit(msg)
		}
	}
	m.ensureVisible()
	return m, cmd
}

// edit applies a typing or navigation key to the input.
func (m *Model) edit(msg tea.KeyMsg) {
	var mutate func() bool
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return
		}
		s := string(msg.Runes)
		mutate = func() bool { m.input.InsertString(s); return true }
	case tea.KeySpace:
		mutate = func() bool { m.input.InsertString(" "); return true }
	case tea.KeyEnter:
		mutate = func() bool { m.input.InsertString("\n"); return true }
	case tea.KeyTab:
		mutate = func() bool { m.input.InsertString("    "); return true }
	case tea.KeyBackspace:
		mutate = m.input.DeleteBackward
	case tea.KeyDelete:
		mutate = m.input.DeleteForward

	case tea.KeyLeft, tea.KeyShiftLeft:
		m.input.MoveLeft(msg.Type == tea.KeyShiftLeft)
	case tea.KeyRight, tea.KeyShiftRight:
		m.input.MoveRight(msg.Type == tea.KeyShiftRight)
	case tea.KeyUp, tea.KeyShiftUp:
		m.input.MoveUp(msg.Type == tea.KeyShiftUp)
	case tea.KeyDown, tea.KeyShiftDown:
		m.input.MoveDown(msg.Type == tea.KeyShiftDown)
	case tea.KeyHome, tea.KeyShiftHome:
		m.input.Home(msg.Type == tea.KeyShiftHome)
	case tea.KeyEnd, tea.KeyShiftEnd:
		m.input.End(msg.Type == tea.KeyShiftEnd)
	case tea.KeyCtrlA:
		m.input.SelectAll()
	}
	if mutate == nil {
		return
	}

	if err := m.editable(); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	if !mutate() {
		return
	}
	if err := m.ctrl.OnUserEdit(m.input.Value()); err != nil {
		m.input.SetValue(m.ctrl.Value())
		m.setStatus(err.Error(), true)
		return
	}
	m.changed("")
}

func (m *Model) insert(kind insert.Kind) {
	if err := m.ctrl.OnInsertAction(kind); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.changed("inserted " + kind.String())
}

// runAction performs a toolbar or shortcut action. The returned command
// dismisses any toast the action raised.
func (m *Model) runAction(action string) tea.Cmd {
	switch action {
	case actionUndo:
		if !m.ctrl.OnUndo() {
			m.setStatus(m.historyRefusal("undo"), false)
			return nil
		}
		m.changed("undo")
	case actionRedo:
		if !m.ctrl.OnRedo() {
			m.setStatus(m.historyRefusal("redo"), false)
			return nil
		}
		m.changed("redo")
	case actionSave:
		return m.save()
	default:
		kind, err := insert.ParseKind(action)
		if err != nil {
			m.setStatus(err.Error(), true)
			return nil
		}
		m.insert(kind)
	}
	return nil
}

func (m *Model) save() tea.Cmd {
	m.ctrl.OnSave()
	if m.cfg.SaveErr != nil {
		if err := m.cfg.SaveErr(); err != nil {
			m.setStatus("save failed: "+err.Error(), true)
			return m.notify("save failed", toaster.Error)
		}
	}
	m.dirty = false
	m.onDisk = m.ctrl.Value()
	m.setStatus("saved", false)
	return m.notify("saved "+m.cfg.Title, toaster.Success)
}

func (m *Model) notify(text string, kind toaster.Kind) tea.Cmd {
	var cmd tea.Cmd
	m.toast, cmd = m.toast.Show(strings.TrimSpace(text), kind, toaster.DefaultDuration)
	return cmd
}

func (m Model) historyRefusal(op string) string {
	if err := m.editable(); err != nil {
		return err.Error()
	}
	return "nothing to " + op
}

// changed records a successful buffer change.
func (m *Model) changed(status string) {
	m.dirty = true
	st := m.ctrl.Status()
	m.histPos, m.histLen = st.Position, st.Len
	m.setStatus(status, false)
	m.refreshPreview()
}

func (m Model) editable() error {
	switch {
	case m.ctrl.ReadOnly():
		return editor.ErrReadOnly
	case m.ctrl.Options().Disabled:
		return editor.ErrDisabled
	default:
		return nil
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) togglePreview() {
	if m.cfg.Preview == nil {
		m.setStatus("preview unavailable", true)
		return
	}
	m.showPreview = !m.showPreview
	m.layout()
	m.ensureVisible()
	if m.cfg.OnPreviewToggle != nil {
		if err := m.cfg.OnPreviewToggle(m.showPreview); err != nil {
			log.ErrorErr(log.CatUI, "persisting preview state failed", err)
			m.setStatus("could not save preview setting", true)
			return
		}
	}
	m.setStatus("", false)
}

func (m *Model) handleExternalChange(msg ExternalChangeMsg) tea.Cmd {
	if msg.Err != nil {
		m.setStatus("reload failed: "+msg.Err.Error(), true)
		return nil
	}
	if msg.Value == m.ctrl.Value() || msg.Value == m.onDisk {
		// Our own save (or a touch) coming back through the watcher.
		return nil
	}
	if m.dirty {
		m.setStatus("changed on disk: save to overwrite", true)
		return m.notify("changed on disk", toaster.Error)
	}
	m.ctrl.SetValue(msg.Value)
	m.onDisk = msg.Value
	m.ensureVisible()
	m.refreshPreview()
	m.setStatus("reloaded from disk", false)
	return m.notify("reloaded from disk", toaster.Info)
}

func (m Model) watchCmd() tea.Cmd {
	changes, load, ctx := m.cfg.Changes, m.cfg.Load, m.ctx
	if changes == nil || load == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			value, err := load()
			return ExternalChangeMsg{Value: value, Err: err}
		}
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		if m.showPreview {
			if z := zone.Get(zonePreview); z != nil && z.InBounds(msg) {
				var cmd tea.Cmd
				m.preview, cmd = m.preview.Update(msg)
				return m, cmd
			}
		}
		return m, nil
	}

	for _, b := range toolbar {
		if z := zone.Get(buttonZoneID(b.action)); z != nil && z.InBounds(msg) {
			m.quitArmed = false
			cmd := m.runAction(b.action)
			m.ensureVisible()
			return m, cmd
		}
	}

	if z := zone.Get(zoneText); z != nil && z.InBounds(msg) {
		x, y := z.Pos(msg)
		// Skip the pane border and gutter.
		row, col := y-1, x-1-m.gutterWidth()
		if row >= 0 && col >= 0 {
			m.input.MoveToCell(m.scrollTop+row, m.scrollLeft+col)
			m.input.Focus()
		}
	}
	return m, nil
}

// layout sizes the preview for the current window.
func (m *Model) layout() {
	if !m.showPreview || m.width == 0 {
		return
	}
	w := max(m.paneWidthPreview()-2, 1)
	h := max(m.bodyHeight()-2, 1)
	if m.previewRenderer == nil || m.previewWidth != w {
		r, err := m.cfg.Preview(w)
		if err != nil {
			log.ErrorErr(log.CatRender, "creating preview renderer failed", err, "width", w)
			r = nil
		}
		m.previewRenderer = r
		m.previewWidth = w
	}
	if m.preview.Width == 0 {
		m.preview = viewport.New(w, h)
	}
	m.preview.Width = w
	m.preview.Height = h
	m.refreshPreview()
}

func (m *Model) refreshPreview() {
	if !m.showPreview || m.preview.Width == 0 {
		return
	}
	value := m.ctrl.Value()
	if m.previewRenderer == nil {
		m.preview.SetContent(value)
		return
	}
	out, err := m.previewRenderer.Render(value)
	if err != nil {
		log.ErrorErr(log.CatRender, "preview render failed", err)
		out = value
	}
	m.preview.SetContent(strings.TrimRight(out, "\n"))
}

// ensureVisible scrolls the text pane so the cursor is on screen.
func (m *Model) ensureVisible() {
	if m.height == 0 {
		return
	}
	lines := m.input.Lines()
	line, col := m.input.LineCol(m.input.Cursor())

	h := max(m.bodyHeight()-2, 1)
	if line < m.scrollTop {
		m.scrollTop = line
	} else if line >= m.scrollTop+h {
		m.scrollTop = line - h + 1
	}
	m.scrollTop = max(0, min(m.scrollTop, len(lines)-1))

	w := max(m.textWidth(), 1)
	x := runewidth.StringWidth(string([]rune(lines[line])[:col]))
	if x < m.scrollLeft {
		m.scrollLeft = x
	} else if x >= m.scrollLeft+w {
		m.scrollLeft = x - w + 1
	}
}


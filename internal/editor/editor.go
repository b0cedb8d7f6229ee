// Package editor orchestrates the Markdown editor: it owns the buffer,
// routes typed edits and toolbar insertions into history, replays undo and
// redo, and notifies the host with the buffer and its rendered form.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/mdpad/internal/changes"
	"github.com/zjrosen/mdpad/internal/history"
	"github.com/zjrosen/mdpad/internal/insert"
	"github.com/zjrosen/mdpad/internal/log"
	"github.com/zjrosen/mdpad/internal/render"
	"github.com/zjrosen/mdpad/internal/tracing"
)

var (
	// ErrReadOnly is returned for edits while DefaultValue fixes the buffer.
	ErrReadOnly = errors.New("editor is read-only")
	// ErrDisabled is returned for edits while the editor is disabled.
	ErrDisabled = errors.New("editor is disabled")
)

// Status is a snapshot for status bars.
type Status struct {
	Lines    int
	Position int
	Len      int
	CanUndo  bool
	CanRedo  bool
	Pending  bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithHistoryConfig overrides history limits.
func WithHistoryConfig(cfg history.Config) Option {
	return func(c *Controller) { c.historyCfg = cfg }
}

// WithHistoryOptions passes options (clock, broker) to the history.
func WithHistoryOptions(opts ...history.Option) Option {
	return func(c *Controller) { c.historyOpts = append(c.historyOpts, opts...) }
}

// WithTracer records a span per operation.
func WithTracer(t trace.Tracer) Option {
	return func(c *Controller) { c.tracer = t }
}

// Controller owns the buffer and its history.
type Controller struct {
	mu       sync.Mutex
	id       string
	opts     Options
	buffer   string
	renderer Renderer
	surface  Surface
	host     Host

	history     *history.History
	historyCfg  history.Config
	historyOpts []history.Option
	tracer      trace.Tracer
}

// New creates a controller. The buffer starts as DefaultValue when set,
// otherwise Value, which also seeds the history.
func New(opts Options, r Renderer, s Surface, h Host, options ...Option) *Controller {
	c := &Controller{
		id:         uuid.NewString(),
		opts:       opts,
		renderer:   r,
		surface:    s,
		host:       h,
		historyCfg: history.DefaultConfig(),
		tracer:     noop.NewTracerProvider().Tracer("noop"),
	}
	for _, opt := range options {
		opt(c)
	}
	if c.host == nil {
		c.host = HostFuncs{}
	}

	c.history = history.New(c.historyCfg, c.historyOpts...)
	if opts.ReadOnly() {
		c.buffer = opts.DefaultValue
	} else {
		c.buffer = opts.Value
		c.history.Seed(opts.Value)
	}
	c.history.SetLines(c.buffer)

	log.Debug(log.CatEditor, "editor created",
		"id", c.id, "readOnly", opts.ReadOnly(), "disabled", opts.Disabled,
		"lines", c.history.Lines())
	return c
}

// SetValue installs a value pushed by the host. It refreshes the line count
// and retries the one-shot history seed, but does not notify the host.
func (c *Controller) SetValue(value string) {
	c.mu.Lock()
	if c.opts.ReadOnly() {
		c.mu.Unlock()
		log.Debug(log.CatEditor, "ignoring external value on read-only editor", "id", c.id)
		return
	}
	changed := c.buffer != value
	c.buffer = value
	c.mu.Unlock()

	c.history.SetLines(value)
	seeded := c.history.Seed(value)
	if changed && c.surface != nil {
		c.surface.SetValue(value)
	}
	log.Debug(log.CatEditor, "external value", "id", c.id, "changed", changed, "seeded", seeded)
}

// OnUserEdit accepts free-typed text from the surface.
func (c *Controller) OnUserEdit(text string) error {
	span := c.start(tracing.SpanUserEdit)
	defer span.End()

	if err := c.editable(); err != nil {
		recordError(span, err)
		return err
	}
	c.apply(text, span)
	return nil
}

// OnInsertAction applies a Markdown insertion at the surface's selection.
func (c *Controller) OnInsertAction(kind insert.Kind) error {
	span := c.start(tracing.SpanInsert, attribute.String(tracing.AttrMarkupKind, kind.String()))
	defer span.End()

	if err := c.editable(); err != nil {
		recordError(span, err)
		return err
	}

	c.mu.Lock()
	buffer := c.buffer
	c.mu.Unlock()

	sel := insert.Range{Start: utf8.RuneCountInString(buffer), End: utf8.RuneCountInString(buffer)}
	if c.surface != nil {
		sel = c.surface.Selection()
	}

	res, err := insert.Transform(buffer, sel, kind)
	if err != nil {
		log.ErrorErr(log.CatInsert, "insert failed", err, "id", c.id, "kind", kind)
		recordError(span, err)
		return fmt.Errorf("insert %s: %w", kind, err)
	}
	log.Debug(log.CatInsert, "insert", "id", c.id, "kind", kind,
		"from", fmt.Sprintf("%d-%d", sel.Start, sel.End),
		"to", fmt.Sprintf("%d-%d", res.Selection.Start, res.Selection.End))

	if c.surface != nil {
		c.surface.SetValue(res.Buffer)
		c.surface.SetSelection(res.Selection)
		c.surface.Focus()
	}
	c.apply(res.Buffer, span)
	return nil
}

// apply installs text as the buffer, schedules a history commit and notifies the host.
func (c *Controller) apply(text string, span trace.Span) {
	c.mu.Lock()
	prev := c.buffer
	c.buffer = text
	c.mu.Unlock()

	c.history.Commit(text)

	span.SetAttributes(
		attribute.Int(tracing.AttrBufferRunes, utf8.RuneCountInString(text)),
		attribute.Int(tracing.AttrBufferLines, c.history.Lines()),
	)
	if log.Enabled(log.LevelDebug) {
		log.Debug(log.CatEditor, "edit", "id", c.id, "delta", changes.Between(prev, text), "lines", c.history.Lines())
	}

	c.notifyChange(text)
}

// OnUndo steps back one history entry. Returns false when there is nothing
// to undo or the editor does not accept edits.
func (c *Controller) OnUndo() bool {
	return c.step(tracing.SpanUndo, c.history.Undo)
}

// OnRedo steps forward one history entry.
func (c *Controller) OnRedo() bool {
	return c.step(tracing.SpanRedo, c.history.Redo)
}

func (c *Controller) step(name string, move func() (string, bool)) bool {
	span := c.start(name)
	defer span.End()

	if err := c.editable(); err != nil {
		recordError(span, err)
		return false
	}

	// A typed edit still inside its debounce window becomes the newest
	// entry first, so undo returns to the state before it. Flush lands that
	// edit's own scheduled commit early; it never adds an entry of its own.
	c.history.Flush()

	value, ok := move()
	span.SetAttributes(
		attribute.Bool(tracing.AttrHistoryMoved, ok),
		attribute.Int(tracing.AttrHistoryPosition, c.history.Position()),
		attribute.Int(tracing.AttrHistoryLen, c.history.Len()),
	)
	if !ok {
		return false
	}

	c.mu.Lock()
	c.buffer = value
	c.mu.Unlock()

	if c.surface != nil {
		c.surface.SetValue(value)
	}
	c.notifyChange(value)
	return true
}

// OnSave hands the current buffer to the host. History is not touched.
func (c *Controller) OnSave() {
	span := c.start(tracing.SpanSave)
	defer span.End()

	value := c.Value()
	span.SetAttributes(attribute.Int(tracing.AttrBufferRunes, utf8.RuneCountInString(value)))
	log.Info(log.CatEditor, "save", "id", c.id, "bytes", len(value))
	c.host.OnSave(value, c.render(value))
}

func (c *Controller) notifyChange(value string) {
	c.host.OnChange(value, c.render(value))
}

func (c *Controller) render(value string) string {
	if c.renderer == nil {
		return render.Fallback(value)
	}
	return render.Must(c.renderer, value)
}

func (c *Controller) editable() error {
	switch {
	case c.opts.ReadOnly():
		return ErrReadOnly
	case c.opts.Disabled:
		return ErrDisabled
	default:
		return nil
	}
}

func (c *Controller) start(name string, attrs ...attribute.KeyValue) trace.Span {
	attrs = append(attrs, attribute.String(tracing.AttrEditorID, c.id))
	_, span := c.tracer.Start(context.Background(), name, trace.WithAttributes(attrs...))
	return span
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String(tracing.AttrErrorMessage, err.Error()))
}

// Value returns the current buffer.
func (c *Controller) Value() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer
}

// Lines returns the gutter line count.
func (c *Controller) Lines() int {
	return c.history.Lines()
}

// Status returns a snapshot of the history position and line count.
func (c *Controller) Status() Status {
	return Status{
		Lines:    c.history.Lines(),
		Position: c.history.Position(),
		Len:      c.history.Len(),
		CanUndo:  c.history.CanUndo(),
		CanRedo:  c.history.CanRedo(),
		Pending:  c.history.Pending(),
	}
}

// ReadOnly reports whether the buffer is fixed.
func (c *Controller) ReadOnly() bool {
	return c.opts.ReadOnly()
}

// Options returns the options the controller was created with.
func (c *Controller) Options() Options {
	return c.opts
}

// History exposes the underlying history.
func (c *Controller) History() *history.History {
	return c.history
}

// ID returns the instance identifier used in logs and spans.
func (c *Controller) ID() string {
	return c.id
}

// Close cancels any pending history commit. The controller must not be
// used afterwards.
func (c *Controller) Close() {
	c.history.Close()
	log.Debug(log.CatEditor, "editor closed", "id", c.id)
}

// Package history implements the editor's bounded undo/redo log.
//
// Commits are debounced: each Commit restarts a quiet-period timer and only
// the last value written before the timer fires becomes a history entry.
// A commit made after undoing discards the abandoned redo branch, and once
// the log is full the oldest entry is evicted.
package history

import (
	"sync"
	"time"

	"github.com/zjrosen/mdpad/internal/lineindex"
	"github.com/zjrosen/mdpad/internal/log"
	"github.com/zjrosen/mdpad/internal/pubsub"
)

// Defaults used when Config fields are zero.
const (
	DefaultMaxEntries = 20
	DefaultDebounce   = 500 * time.Millisecond
)

// Config holds history limits.
type Config struct {
	// MaxEntries bounds the number of snapshots kept.
	MaxEntries int `mapstructure:"max_entries"`
	// Debounce is the quiet period before an edit is checkpointed.
	Debounce time.Duration `mapstructure:"debounce"`
}

// DefaultConfig returns the editor's standard history limits.
func DefaultConfig() Config {
	return Config{
		MaxEntries: DefaultMaxEntries,
		Debounce:   DefaultDebounce,
	}
}

// Event is the payload published on history changes.
type Event struct {
	Position int
	Len      int
	Value    string
}

// Option configures a History.
type Option func(*History)

// WithClock overrides the timer source.
func WithClock(c Clock) Option {
	return func(h *History) { h.clock = c }
}

// WithBroker publishes Seeded/Committed/Undone/Redone events to b.
func WithBroker(b *pubsub.Broker[Event]) Option {
	return func(h *History) { h.broker = b }
}

// History is an ordered log of buffer snapshots with a current position.
// It is safe for concurrent use; the debounce timer fires on its own goroutine.
type History struct {
	mu       sync.Mutex
	cfg      Config
	clock    Clock
	broker   *pubsub.Broker[Event]
	entries  []string
	position int
	lines    int

	timer   Timer
	pending *string
	gen     uint64 // bumped on every schedule/cancel; stale timer bodies compare against it
	closed  bool
}

// New creates an empty history.
func New(cfg Config, opts ...Option) *History {
	if cfg.MaxEntries < 1 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	h := &History{
		cfg:   cfg,
		clock: RealClock{},
		lines: 1,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Seed installs value as the first entry. It only acts while the log is
// empty and value is non-empty, so it may be retried on every external
// value change. Returns whether it seeded.
func (h *History) Seed(value string) bool {
	h.mu.Lock()
	if len(h.entries) > 0 || value == "" {
		h.mu.Unlock()
		return false
	}
	h.entries = append(h.entries, value)
	h.position = 0
	h.lines = lineindex.Count(value)
	ev := h.eventLocked()
	h.mu.Unlock()

	log.Debug(log.CatHistory, "seeded", "lines", lineindex.Count(value))
	h.publish(pubsub.SeededEvent, ev)
	return true
}

// Commit schedules value to become a new entry once the debounce window
// passes without another Commit. The line count updates immediately.
func (h *History) Commit(value string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lines = lineindex.Count(value)
	if h.closed {
		return
	}

	h.stopLocked()
	h.pending = &value
	gen := h.gen
	h.timer = h.clock.AfterFunc(h.cfg.Debounce, func() { h.fire(gen) })
}

// fire runs the scheduled commit unless it was superseded or cancelled.
func (h *History) fire(gen uint64) {
	h.mu.Lock()
	if h.closed || gen != h.gen || h.pending == nil {
		h.mu.Unlock()
		return
	}
	ev := h.applyLocked()
	h.mu.Unlock()

	h.publish(pubsub.CommittedEvent, ev)
}

// Flush applies a pending commit right away. Returns whether one was pending.
func (h *History) Flush() bool {
	h.mu.Lock()
	if h.closed || h.pending == nil {
		h.mu.Unlock()
		return false
	}
	h.stopLocked()
	ev := h.applyLocked()
	h.mu.Unlock()

	h.publish(pubsub.CommittedEvent, ev)
	return true
}

// applyLocked performs the debounced commit: truncate the future branch,
// evict the oldest entry when full, append, move to the tail.
func (h *History) applyLocked() Event {
	value := *h.pending
	h.pending = nil
	h.timer = nil

	truncated := 0
	if h.position < len(h.entries)-1 {
		truncated = len(h.entries) - (h.position + 1)
		h.entries = h.entries[:h.position+1]
	}
	evicted := false
	if len(h.entries) >= h.cfg.MaxEntries {
		h.entries = append(h.entries[:0:0], h.entries[1:]...)
		h.position--
		evicted = true
	}
	h.entries = append(h.entries, value)
	h.position = len(h.entries) - 1

	log.Debug(log.CatHistory, "committed",
		"position", h.position, "len", len(h.entries),
		"truncated", truncated, "evicted", evicted)
	return h.eventLocked()
}

// stopLocked cancels the pending timer. The pending value is kept.
func (h *History) stopLocked() {
	h.gen++
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

// Undo steps back one entry. Returns false at the oldest entry.
func (h *History) Undo() (string, bool) {
	return h.step(-1, pubsub.UndoneEvent)
}

// Redo steps forward one entry. Returns false at the newest entry.
func (h *History) Redo() (string, bool) {
	return h.step(1, pubsub.RedoneEvent)
}

func (h *History) step(delta int, eventType pubsub.EventType) (string, bool) {
	h.mu.Lock()
	next := h.position + delta
	if next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		log.Debug(log.CatHistory, "history exhausted", "event", eventType, "position", h.position)
		return "", false
	}
	h.position = next
	value := h.entries[next]
	h.lines = lineindex.Count(value)
	ev := h.eventLocked()
	h.mu.Unlock()

	log.Debug(log.CatHistory, string(eventType), "position", ev.Position, "len", ev.Len)
	h.publish(eventType, ev)
	return value, true
}

// Close cancels any pending commit. Later commits are ignored.
func (h *History) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopLocked()
	h.pending = nil
	h.closed = true
}

// Lines returns the line count of the most recently observed value.
func (h *History) Lines() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lines
}

// SetLines records the line count for a value installed outside history.
func (h *History) SetLines(value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = lineindex.Count(value)
}

// Position returns the index of the displayed entry.
func (h *History) Position() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.position
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Entries returns a copy of the log.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Pending reports whether a commit is waiting for its debounce window.
func (h *History) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending != nil
}

// CanUndo reports whether Undo would move.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.position > 0
}

// CanRedo reports whether Redo would move.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.position < len(h.entries)-1
}

// Config returns the effective limits.
func (h *History) Config() Config {
	return h.cfg
}

func (h *History) eventLocked() Event {
	ev := Event{Position: h.position, Len: len(h.entries)}
	if h.position >= 0 && h.position < len(h.entries) {
		ev.Value = h.entries[h.position]
	}
	return ev
}

func (h *History) publish(eventType pubsub.EventType, ev Event) {
	if h.broker != nil {
		h.broker.Publish(eventType, ev)
	}
}

package tracing

// Span attribute keys for editor operations.
const (
	AttrEditorID        = "editor.id"
	AttrMarkupKind      = "editor.markup_kind"
	AttrBufferRunes     = "editor.buffer.runes"
	AttrBufferLines     = "editor.buffer.lines"
	AttrHistoryPosition = "history.position"
	AttrHistoryLen      = "history.len"
	AttrHistoryMoved    = "history.moved"
	AttrErrorMessage    = "error.message"
)

// Span names.
const (
	SpanUserEdit = "editor.user_edit"
	SpanInsert   = "editor.insert"
	SpanUndo     = "editor.undo"
	SpanRedo     = "editor.redo"
	SpanSave     = "editor.save"
)

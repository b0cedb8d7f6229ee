package mdeditor

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/mdpad/internal/insert"
)

// Input is the live text surface behind the editor pane. Offsets are rune
// indices into the buffer, matching insert.Range. The selection runs from
// anchor to cursor and is empty when they coincide.
//
// Input implements editor.Surface. It is only touched from the Bubble Tea
// update loop and needs no locking.
type Input struct {
	text    []rune
	cursor  int
	anchor  int
	focused bool

	// preferredCol is the display column kept across vertical moves, -1 when unset.
	preferredCol int
}

// NewInput creates an input holding value with the cursor at the end.
func NewInput(value string) *Input {
	in := &Input{text: []rune(value), preferredCol: -1}
	in.cursor = len(in.text)
	in.anchor = in.cursor
	return in
}

// Value returns the buffer.
func (in *Input) Value() string {
	return string(in.text)
}

// Len returns the buffer length in runes.
func (in *Input) Len() int {
	return len(in.text)
}

// Cursor returns the cursor offset.
func (in *Input) Cursor() int {
	return in.cursor
}

// Selection returns the ordered selection range.
func (in *Input) Selection() insert.Range {
	return insert.Range{Start: min(in.anchor, in.cursor), End: max(in.anchor, in.cursor)}
}

// HasSelection reports whether any text is selected.
func (in *Input) HasSelection() bool {
	return in.anchor != in.cursor
}

// SetSelection selects r, leaving the cursor at r.End.
func (in *Input) SetSelection(r insert.Range) {
	r = r.Clamp(len(in.text))
	in.anchor = r.Start
	in.cursor = r.End
	in.preferredCol = -1
}

// SetValue replaces the buffer, keeping the cursor and anchor in range.
func (in *Input) SetValue(text string) {
	in.text = []rune(text)
	in.cursor = min(in.cursor, len(in.text))
	in.anchor = min(in.anchor, len(in.text))
	in.preferredCol = -1
}

// Focus gives the input keyboard focus.
func (in *Input) Focus() {
	in.focused = true
}

// Blur removes keyboard focus.
func (in *Input) Blur() {
	in.focused = false
}

// Focused reports whether the input has focus.
func (in *Input) Focused() bool {
	return in.focused
}

// InsertString replaces the selection with s and places the cursor after it.
func (in *Input) InsertString(s string) {
	sel := in.Selection()
	ins := []rune(s)
	text := make([]rune, 0, len(in.text)-sel.Len()+len(ins))
	text = append(text, in.text[:sel.Start]...)
	text = append(text, ins...)
	text = append(text, in.text[sel.End:]...)
	in.text = text
	in.cursor = sel.Start + len(ins)
	in.anchor = in.cursor
	in.preferredCol = -1
}

// DeleteBackward removes the selection, or the grapheme before the cursor.
// Returns false when nothing was removed.
func (in *Input) DeleteBackward() bool {
	if in.HasSelection() {
		in.InsertString("")
		return true
	}
	if in.cursor == 0 {
		return false
	}
	in.anchor = in.prevBoundary(in.cursor)
	in.InsertString("")
	return true
}

// DeleteForward removes the selection, or the grapheme after the cursor.
func (in *Input) DeleteForward() bool {
	if in.HasSelection() {
		in.InsertString("")
		return true
	}
	if in.cursor == len(in.text) {
		return false
	}
	in.anchor = in.nextBoundary(in.cursor)
	in.InsertString("")
	return true
}

// SelectAll selects the whole buffer.
func (in *Input) SelectAll() {
	in.anchor = 0
	in.cursor = len(in.text)
	in.preferredCol = -1
}

// MoveLeft moves one grapheme left. With extend the anchor stays put;
// without it an active selection collapses to its start.
func (in *Input) MoveLeft(extend bool) {
	if !extend && in.HasSelection() {
		in.moveTo(in.Selection().Start, false)
		return
	}
	in.moveTo(in.prevBoundary(in.cursor), extend)
}

// MoveRight moves one grapheme right.
func (in *Input) MoveRight(extend bool) {
	if !extend && in.HasSelection() {
		in.moveTo(in.Selection().End, false)
		return
	}
	in.moveTo(in.nextBoundary(in.cursor), extend)
}

// MoveUp moves to the previous line, keeping the display column.
func (in *Input) MoveUp(extend bool) {
	in.moveVertical(-1, extend)
}

// MoveDown moves to the next line, keeping the display column.
func (in *Input) MoveDown(extend bool) {
	in.moveVertical(1, extend)
}

// Home moves to the start of the current line.
func (in *Input) Home(extend bool) {
	line, _ := in.LineCol(in.cursor)
	in.moveTo(in.Offset(line, 0), extend)
}

// End moves to the end of the current line.
func (in *Input) End(extend bool) {
	line, _ := in.LineCol(in.cursor)
	in.moveTo(in.lineEnd(line), extend)
}

func (in *Input) moveTo(offset int, extend bool) {
	in.cursor = max(0, min(offset, len(in.text)))
	if !extend {
		in.anchor = in.cursor
	}
	in.preferredCol = -1
}

func (in *Input) moveVertical(delta int, extend bool) {
	line, col := in.LineCol(in.cursor)
	target := line + delta
	lines := in.Lines()
	if target < 0 {
		in.moveTo(0, extend)
		return
	}
	if target >= len(lines) {
		in.moveTo(len(in.text), extend)
		return
	}

	want := in.preferredCol
	if want < 0 {
		want = runewidth.StringWidth(string([]rune(lines[line])[:col]))
	}
	in.moveTo(in.Offset(target, ColumnAt(lines[target], want)), extend)
	in.preferredCol = want
}

// MoveToCell places the cursor at a display position, as for a mouse click.
func (in *Input) MoveToCell(line, displayCol int) {
	lines := in.Lines()
	line = max(0, min(line, len(lines)-1))
	in.moveTo(in.Offset(line, ColumnAt(lines[line], displayCol)), false)
}

// Lines splits the buffer on newlines. An empty buffer is one empty line.
func (in *Input) Lines() []string {
	return strings.Split(string(in.text), "\n")
}

// LineCol converts an offset to a zero-based line and rune column.
func (in *Input) LineCol(offset int) (line, col int) {
	offset = max(0, min(offset, len(in.text)))
	start := 0
	for i := 0; i < offset; i++ {
		if in.text[i] == '\n' {
			line++
			start = i + 1
		}
	}
	return line, offset - start
}

// Offset converts a line and rune column to an offset, clamping the column
// to the line length.
func (in *Input) Offset(line, col int) int {
	start := 0
	for l := 0; l < line; l++ {
		i := start
		for i < len(in.text) && in.text[i] != '\n' {
			i++
		}
		if i == len(in.text) {
			return len(in.text)
		}
		start = i + 1
	}
	end := start
	for end < len(in.text) && in.text[end] != '\n' {
		end++
	}
	return start + max(0, min(col, end-start))
}

func (in *Input) lineEnd(line int) int {
	return in.Offset(line, len(in.text))
}

// prevBoundary returns the offset of the grapheme boundary before offset.
func (in *Input) prevBoundary(offset int) int {
	if offset <= 0 {
		return 0
	}
	line, col := in.LineCol(offset)
	if col == 0 {
		return offset - 1 // the newline
	}
	lineStart := offset - col
	prev := 0
	for _, b := range graphemeStarts(in.Lines()[line]) {
		if b >= col {
			break
		}
		prev = b
	}
	return lineStart + prev
}

// nextBoundary returns the offset of the grapheme boundary after offset.
func (in *Input) nextBoundary(offset int) int {
	if offset >= len(in.text) {
		return len(in.text)
	}
	if in.text[offset] == '\n' {
		return offset + 1
	}
	line, col := in.LineCol(offset)
	lineStart := offset - col
	lineText := in.Lines()[line]
	for _, b := range graphemeStarts(lineText) {
		if b > col {
			return lineStart + b
		}
	}
	return lineStart + len([]rune(lineText))
}

// graphemeStarts returns the rune offset at which each grapheme cluster in s starts.
func graphemeStarts(s string) []int {
	var starts []int
	pos := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		starts = append(starts, pos)
		pos += len([]rune(cluster))
		s = rest
		state = newState
	}
	return starts
}

// ColumnAt returns the rune column in line whose display position is closest
// to displayCol without passing it. Wide graphemes are never split.
func ColumnAt(line string, displayCol int) int {
	width := 0
	col := 0
	state := -1
	for len(line) > 0 {
		cluster, rest, _, newState := uniseg.StepString(line, state)
		w := runewidth.StringWidth(cluster)
		if width+w > displayCol {
			break
		}
		width += w
		col += len([]rune(cluster))
		line = rest
		state = newState
	}
	return col
}

package mdeditor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/mdpad/internal/insert"
)

func TestNewInput_CursorAtEnd(t *testing.T) {
	in := NewInput("héllo")

	require.Equal(t, "héllo", in.Value())
	require.Equal(t, 5, in.Len())
	require.Equal(t, 5, in.Cursor())
	require.False(t, in.HasSelection())
	require.Equal(t, insert.Range{Start: 5, End: 5}, in.Selection())
}

func TestInput_SetSelectionClampsAndOrders(t *testing.T) {
	in := NewInput("abc")

	in.SetSelection(insert.Range{Start: 1, End: 99})
	require.Equal(t, insert.Range{Start: 1, End: 3}, in.Selection())
	require.Equal(t, 3, in.Cursor())

	in.SetSelection(insert.Range{Start: 2, End: 0})
	require.Equal(t, insert.Range{Start: 0, End: 2}, in.Selection())
}

func TestInput_SetValueClampsCursor(t *testing.T) {
	in := NewInput("a longer value")
	in.SetValue("short")

	require.Equal(t, "short", in.Value())
	require.Equal(t, 5, in.Cursor())
}

func TestInput_InsertStringReplacesSelection(t *testing.T) {
	in := NewInput("hello world")
	in.SetSelection(insert.Range{Start: 6, End: 11})

	in.InsertString("there")

	require.Equal(t, "hello there", in.Value())
	require.Equal(t, 11, in.Cursor())
	require.False(t, in.HasSelection())
}

func TestInput_DeleteBackwardRemovesWholeGrapheme(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"ascii", "abc", "ab"},
		{"combining accent", "cafe\u0301", "caf"},
		{"flag", "go 🇺🇸", "go "},
		{"newline", "a\n", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInput(tt.value)
			require.True(t, in.DeleteBackward())
			require.Equal(t, tt.want, in.Value())
		})
	}
}

func TestInput_DeleteAtEdges(t *testing.T) {
	in := NewInput("ab")
	in.SetSelection(insert.Range{})
	require.False(t, in.DeleteBackward())
	require.True(t, in.DeleteForward())
	require.Equal(t, "b", in.Value())

	in = NewInput("ab")
	require.False(t, in.DeleteForward())
}

func TestInput_DeleteSelection(t *testing.T) {
	in := NewInput("abcdef")
	in.SetSelection(insert.Range{Start: 1, End: 4})

	require.True(t, in.DeleteForward())
	require.Equal(t, "aef", in.Value())
	require.Equal(t, 1, in.Cursor())
}

func TestInput_HorizontalMovement(t *testing.T) {
	in := NewInput("ab\ncd")

	in.MoveLeft(false)
	require.Equal(t, 4, in.Cursor())
	in.MoveLeft(false)
	in.MoveLeft(false)
	require.Equal(t, 2, in.Cursor(), "crossing the newline")

	in.MoveRight(true)
	require.Equal(t, insert.Range{Start: 2, End: 3}, in.Selection())

	// Moving without extend collapses the selection to its edge
	in.MoveLeft(false)
	require.Equal(t, 2, in.Cursor())
	require.False(t, in.HasSelection())
}

func TestInput_MoveRightOverGrapheme(t *testing.T) {
	in := NewInput("e\u0301x")
	in.SetSelection(insert.Range{})

	in.MoveRight(false)
	require.Equal(t, 2, in.Cursor())
}

func TestInput_VerticalMovementKeepsColumn(t *testing.T) {
	in := NewInput("long line\nab\nanother line")
	in.SetSelection(insert.Range{Start: 7, End: 7}) // "long li|ne"

	in.MoveDown(false)
	require.Equal(t, 12, in.Cursor(), "clamped to end of short line")

	in.MoveDown(false)
	line, col := in.LineCol(in.Cursor())
	require.Equal(t, 2, line)
	require.Equal(t, 7, col, "preferred column restored")

	in.MoveDown(false)
	require.Equal(t, in.Len(), in.Cursor(), "past the last line goes to the end")

	in.MoveUp(false)
	in.MoveUp(false)
	in.MoveUp(false)
	in.MoveUp(false)
	require.Equal(t, 0, in.Cursor())
}

func TestInput_VerticalMovementUsesDisplayWidth(t *testing.T) {
	in := NewInput("日本語\nabcdef")
	in.SetSelection(insert.Range{Start: 2, End: 2}) // two wide runes = 4 columns

	in.MoveDown(false)
	_, col := in.LineCol(in.Cursor())
	require.Equal(t, 4, col)
}

func TestInput_HomeEndSelect(t *testing.T) {
	in := NewInput("one\ntwo")

	in.Home(true)
	require.Equal(t, insert.Range{Start: 4, End: 7}, in.Selection())

	in.End(false)
	require.Equal(t, 7, in.Cursor())
	require.False(t, in.HasSelection())

	in.SelectAll()
	require.Equal(t, insert.Range{Start: 0, End: 7}, in.Selection())
}

func TestInput_MoveToCell(t *testing.T) {
	in := NewInput("first\n日本語")

	in.MoveToCell(1, 3) // middle of 本 snaps left
	require.Equal(t, 7, in.Cursor())

	in.MoveToCell(9, 0)
	require.Equal(t, 6, in.Cursor(), "row past the end clamps to the last line")
}

func TestInput_FocusBlur(t *testing.T) {
	in := NewInput("")
	require.False(t, in.Focused())
	in.Focus()
	require.True(t, in.Focused())
	in.Blur()
	require.False(t, in.Focused())
}

func TestInput_LineColOffsetRoundTrip(t *testing.T) {
	in := NewInput("ab\n\ncde")
	for off := 0; off <= in.Len(); off++ {
		line, col := in.LineCol(off)
		require.Equal(t, off, in.Offset(line, col), "offset %d", off)
	}
	require.Equal(t, in.Len(), in.Offset(10, 0))
}

func TestColumnAt(t *testing.T) {
	require.Equal(t, 0, ColumnAt("abc", 0))
	require.Equal(t, 2, ColumnAt("abc", 2))
	require.Equal(t, 3, ColumnAt("abc", 10))
	require.Equal(t, 1, ColumnAt("日本", 3))
	require.Equal(t, 2, ColumnAt("e\u0301x", 1), "combining mark stays with its base")
}

func TestInput_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := NewInput(rapid.StringMatching(`[a-z\n é]{0,30}`).Draw(t, "value"))

		ops := rapid.SliceOfN(rapid.IntRange(0, 9), 0, 40).Draw(t, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				in.InsertString(rapid.StringMatching(`[a-z\n]{0,3}`).Draw(t, "text"))
			case 1:
				in.DeleteBackward()
			case 2:
				in.DeleteForward()
			case 3:
				in.MoveLeft(rapid.Bool().Draw(t, "extend"))
			case 4:
				in.MoveRight(rapid.Bool().Draw(t, "extend"))
			case 5:
				in.MoveUp(rapid.Bool().Draw(t, "extend"))
			case 6:
				in.MoveDown(rapid.Bool().Draw(t, "extend"))
			case 7:
				in.Home(rapid.Bool().Draw(t, "extend"))
			case 8:
				in.End(rapid.Bool().Draw(t, "extend"))
			case 9:
				start := rapid.IntRange(-5, in.Len()+5).Draw(t, "start")
				end := rapid.IntRange(-5, in.Len()+5).Draw(t, "end")
				in.SetSelection(insert.Range{Start: start, End: end})
			}

			sel := in.Selection()
			if sel.Start < 0 || sel.Start > sel.End || sel.End > in.Len() {
				t.Fatalf("selection %+v out of range for length %d", sel, in.Len())
			}
			if in.Cursor() != sel.Start && in.Cursor() != sel.End {
				t.Fatalf("cursor %d is not an end of %+v", in.Cursor(), sel)
			}
		}
	})
}

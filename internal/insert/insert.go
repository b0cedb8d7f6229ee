// Package insert computes Markdown insertions around a cursor or selection.
//
// Offsets are rune indices into the buffer. Transform is pure: it never
// touches the live input surface, it only reports where the selection
// should land so the caller can re-apply it.
package insert

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Placeholders inserted when the selection is empty.
const (
	altPlaceholder  = "alt"
	textPlaceholder = "text"
	urlPlaceholder  = "url"
	codePlaceholder = "code"
	fence           = "```"
)

// Range is a cursor (Start == End) or selection in rune offsets.
type Range struct {
	Start int
	End   int
}

// Empty reports whether r is a bare cursor.
func (r Range) Empty() bool { return r.Start == r.End }

// Len returns the number of selected runes.
func (r Range) Len() int { return r.End - r.Start }

// Clamp orders r and limits both ends to [0, n].
func (r Range) Clamp(n int) Range {
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}
	r.Start = clamp(r.Start, 0, n)
	r.End = clamp(r.End, 0, n)
	return r
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Result is the buffer and selection after an insertion.
type Result struct {
	Buffer    string
	Selection Range
}

// Transform applies kind to buffer at sel.
func Transform(buffer string, sel Range, kind Kind) (Result, error) {
	if !kind.Valid() {
		return Result{}, fmt.Errorf("transform: %w: %s", ErrUnsupportedKind, kind)
	}

	runes := []rune(buffer)
	sel = sel.Clamp(len(runes))

	if level := kind.headingLevel(); level > 0 {
		return toggleHeading(runes, sel, level), nil
	}

	before := string(runes[:sel.Start])
	selected := string(runes[sel.Start:sel.End])
	after := string(runes[sel.End:])

	switch kind {
	case Image:
		return wrapURL(before, selected, after, "![", altPlaceholder), nil
	case Link:
		return wrapURL(before, selected, after, "[", textPlaceholder), nil
	default:
		return wrapCode(before, selected, after), nil
	}
}

// toggleHeading adds or removes the exact "#"*level prefix on the line
// holding sel.Start.
func toggleHeading(runes []rune, sel Range, level int) Result {
	prefix := []rune(strings.Repeat("#", level) + " ")
	start, end := lineBounds(runes, sel.Start)
	line := runes[start:end]

	if hasPrefix(line, prefix) {
		out := make([]rune, 0, len(runes)-len(prefix))
		out = append(out, runes[:start]...)
		out = append(out, runes[start+len(prefix):]...)
		shift := func(off int) int {
			switch {
			case off < start:
				return off
			case off < start+len(prefix):
				return start
			default:
				return off - len(prefix)
			}
		}
		return Result{
			Buffer:    string(out),
			Selection: Range{Start: shift(sel.Start), End: shift(sel.End)},
		}
	}

	out := make([]rune, 0, len(runes)+len(prefix))
	out = append(out, runes[:start]...)
	out = append(out, prefix...)
	out = append(out, runes[start:]...)
	shift := func(off int) int {
		if off < start {
			return off
		}
		return off + len(prefix)
	}
	return Result{
		Buffer:    string(out),
		Selection: Range{Start: shift(sel.Start), End: shift(sel.End)},
	}
}

// lineBounds returns the [start, end) rune span of the line containing off.
func lineBounds(runes []rune, off int) (int, int) {
	start := off
	for start > 0 && runes[start-1] != '\n' {
		start--
	}
	end := off
	for end < len(runes) && runes[end] != '\n' {
		end++
	}
	return start, end
}

func hasPrefix(line, prefix []rune) bool {
	if len(line) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if line[i] != r {
			return false
		}
	}
	return true
}

// wrapURL renders open + label + "](url)" and selects the url placeholder.
func wrapURL(before, selected, after, open, placeholder string) Result {
	label := selected
	if label == "" {
		label = placeholder
	}
	head := before + open + label + "]("
	urlStart := utf8.RuneCountInString(head)
	return Result{
		Buffer:    head + urlPlaceholder + ")" + after,
		Selection: Range{Start: urlStart, End: urlStart + utf8.RuneCountInString(urlPlaceholder)},
	}
}

// wrapCode wraps a single-line selection in backticks and anything else
// in a fenced block on its own lines.
func wrapCode(before, selected, after string) Result {
	if selected != "" && !strings.Contains(selected, "\n") {
		start := utf8.RuneCountInString(before) + 1
		return Result{
			Buffer:    before + "`" + selected + "`" + after,
			Selection: Range{Start: start, End: start + utf8.RuneCountInString(selected)},
		}
	}

	body := selected
	if body == "" {
		body = codePlaceholder
	}
	lead := ""
	if before != "" && !strings.HasSuffix(before, "\n") {
		lead = "\n"
	}
	trail := ""
	if after != "" && !strings.HasPrefix(after, "\n") {
		trail = "\n"
	}

	head := before + lead + fence + "\n"
	start := utf8.RuneCountInString(head)
	return Result{
		Buffer:    head + body + "\n" + fence + trail + after,
		Selection: Range{Start: start, End: start + utf8.RuneCountInString(body)},
	}
}

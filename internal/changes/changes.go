// Package changes summarizes the difference between two buffer values.
package changes

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffTimeout bounds diff computation for very large buffers.
const diffTimeout = 50 * time.Millisecond

// Summary counts runes inserted and deleted between two values.
type Summary struct {
	Inserted int
	Deleted  int
}

// Empty reports whether the values were identical.
func (s Summary) Empty() bool {
	return s.Inserted == 0 && s.Deleted == 0
}

// String renders the summary as "+ins -del".
func (s Summary) String() string {
	return fmt.Sprintf("+%d -%d", s.Inserted, s.Deleted)
}

// Between diffs before and after.
func Between(before, after string) Summary {
	if before == after {
		return Summary{}
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = diffTimeout
	diffs := dmp.DiffMain(before, after, false)

	var s Summary
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			s.Inserted += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			s.Deleted += utf8.RuneCountInString(d.Text)
		}
	}
	return s
}

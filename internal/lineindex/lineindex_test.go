package lineindex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 1},
		{"single line", "# Title", 1},
		{"three lines", "a\nb\nc", 3},
		{"trailing newlines", "a\n\n", 3},
		{"only newline", "\n", 2},
		{"crlf counts lf", "a\r\nb", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Count(tt.text))
		})
	}
}

func TestCount_MatchesSplit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-z\n ]{0,40}`).Draw(t, "text")
		require.Equal(t, len(strings.Split(text, "\n")), Count(text))
	})
}

func TestNumbers(t *testing.T) {
	require.Equal(t, []int{1, 2, 3}, Numbers(3))
	require.Equal(t, []int{1}, Numbers(0))
}

// Package lineindex derives gutter line numbers from buffer text.
package lineindex

import "strings"

// Count returns the 1-based number of lines in text.
// An empty buffer is a single empty line.
func Count(text string) int {
	if text == "" {
		return 1
	}
	return strings.Count(text, "\n") + 1
}

// Numbers returns the gutter labels 1..count.
func Numbers(count int) []int {
	if count < 1 {
		count = 1
	}
	nums := make([]int, count)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

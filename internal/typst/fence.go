package typst

import "strings"

// Minimum fence lengths.
const (
	BlockFenceMin  = 3
	InlineFenceMin = 1
)

// Fence returns the shortest backtick run that cannot collide with content:
// one longer than the longest backtick run inside it, and at least minLen long.
func Fence(content string, minLen int) string {
	longest, run := 0, 0
	for i := 0; i < len(content); i++ {
		if content[i] != '`' {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return strings.Repeat("`", max(longest+1, minLen))
}

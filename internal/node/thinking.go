package node

import (
	"regexp"
	"strings"
)

// Spans match across newlines, non-greedy so multiple spans are removed
// independently.
var thinkingSpan = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripThinking removes every <think>...</think> span (tags included) from
// text and trims leading/trailing whitespace. Text without spans is returned
// trimmed but otherwise unchanged.
func StripThinking(text string) string {
	return strings.TrimSpace(thinkingSpan.ReplaceAllString(text, ""))
}

package node

import (
	"fmt"

	"lmstudio-node/internal/lmstudio"
)

// DefaultStats is the canonical zeroed statistics text returned whenever a
// call fails before usage figures are known.
const DefaultStats = "Tokens per Second: 0.00\nInput Tokens: 0\nOutput Tokens: 0"

// FormatStats renders token statistics as the fixed three-line text the
// graph host displays.
func FormatStats(tokensPerSec float64, inputTokens, outputTokens int) string {
	return fmt.Sprintf(
		"Tokens per Second: %.2f\nInput Tokens: %d\nOutput Tokens: %d",
		tokensPerSec, inputTokens, outputTokens,
	)
}

func formatTokenStats(s lmstudio.TokenStats) string {
	return FormatStats(s.TokensPerSecond, s.PromptTokens, s.CompletionTokens)
}

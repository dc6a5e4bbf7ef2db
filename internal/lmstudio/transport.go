// Package lmstudio implements the two LM Studio transports behind a single
// chat-completion interface: the SDK binding (OpenAI-compatible client) and
// the raw REST API under /api/v0.
package lmstudio

import "context"

// Request carries one chat completion: a system prompt, a single user turn
// and generation parameters. ImagePath, when set, points at a prepared JPEG
// attached to the user turn by transports that support images.
type Request struct {
	SystemPrompt  string
	UserMessage   string
	Model         string
	ServerAddress string
	Temperature   float64
	MaxTokens     int
	ImagePath     string
}

// TokenStats are the normalized usage statistics of one completion. Fields
// the server does not report stay zero.
type TokenStats struct {
	TokensPerSecond  float64
	PromptTokens     int
	CompletionTokens int
}

// Completion is the result of one chat completion.
type Completion struct {
	Content string
	Stats   TokenStats
}

// Transport sends a single chat completion to LM Studio. Implementations
// block for the full duration of model inference; cancellation happens
// through the context.
type Transport interface {
	Complete(ctx context.Context, req Request) (*Completion, error)

	// SupportsImages reports whether the transport can attach an image
	// to the user turn.
	SupportsImages() bool
}

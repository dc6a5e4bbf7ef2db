package lmstudio

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
)

// SDKTransport drives LM Studio through its OpenAI-compatible SDK endpoint.
// Unlike the REST transport it can attach an image to the user turn, and it
// enforces no timeout of its own: bounding the call is the binding's job.
type SDKTransport struct {
	client openai.Client
}

func NewSDKTransport(client openai.Client) *SDKTransport {
	return &SDKTransport{client: client}
}

func (t *SDKTransport) SupportsImages() bool { return true }

func (t *SDKTransport) Complete(ctx context.Context, req Request) (*Completion, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(req.SystemPrompt),
	}

	if req.ImagePath != "" {
		raw, err := os.ReadFile(req.ImagePath)
		if err != nil {
			return nil, &Error{Kind: KindBinding, Addr: req.ServerAddress, Err: fmt.Errorf("reading image file: %w", err)}
		}
		imageData := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)
		messages = append(messages, openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(req.UserMessage),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: imageData,
			}),
		}))
	} else {
		messages = append(messages, openai.UserMessage(req.UserMessage))
	}

	params := openai.ChatCompletionNewParams{
		Model:               shared.ChatModel(req.Model),
		Messages:            messages,
		Temperature:         openai.Float(req.Temperature),
		MaxCompletionTokens: openai.Int(int64(req.MaxTokens)),
	}

	start := time.Now()
	resp, err := t.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &Error{Kind: KindBinding, Addr: req.ServerAddress, Err: err}
	}
	elapsed := time.Since(start)

	if len(resp.Choices) == 0 {
		return nil, &Error{Kind: KindBinding, Addr: req.ServerAddress, Err: fmt.Errorf("no choices in response")}
	}

	stats := TokenStats{
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
	}
	// The OpenAI-compatible response carries no tokens-per-second figure,
	// so derive it from wall-clock generation time.
	if secs := elapsed.Seconds(); secs > 0 {
		stats.TokensPerSecond = float64(stats.CompletionTokens) / secs
	}

	return &Completion{
		Content: resp.Choices[0].Message.Content,
		Stats:   stats,
	}, nil
}

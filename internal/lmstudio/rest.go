package lmstudio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

const (
	completionsPath = "/api/v0/chat/completions"

	// Generous because LM Studio may load the model on first request.
	requestTimeout = 120 * time.Second
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionRequest is the /api/v0 request body. Temperature and Stream
// are always serialized, matching what the server expects for a
// non-streaming call.
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Stats struct {
		TokensPerSecond float64 `json:"tokens_per_second"`
	} `json:"stats"`
}

// RESTTransport talks to the LM Studio REST API. Text-only: the /api/v0
// chat endpoint carries no image content.
type RESTTransport struct {
	client *http.Client
}

func NewRESTTransport() *RESTTransport {
	return &RESTTransport{
		client: &http.Client{Timeout: requestTimeout},
	}
}

// NewRESTTransportWithClient allows injecting the HTTP client, primarily
// so tests can shorten the timeout.
func NewRESTTransportWithClient(client *http.Client) *RESTTransport {
	return &RESTTransport{client: client}
}

func (t *RESTTransport) SupportsImages() bool { return false }

func (t *RESTTransport) Complete(ctx context.Context, req Request) (*Completion, error) {
	body := chatCompletionRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserMessage},
		},
		Temperature: req.Temperature,
		Stream:      false,
	}

	data, err := sonic.Marshal(body)
	if err != nil {
		return nil, &Error{Kind: KindProtocol, Addr: req.ServerAddress, Err: fmt.Errorf("encoding request: %w", err)}
	}

	url := strings.TrimRight(req.ServerAddress, "/") + completionsPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Kind: KindProtocol, Addr: req.ServerAddress, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, classifyTransport(err, req.ServerAddress)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(err, req.ServerAddress)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &Error{
			Kind: KindProtocol,
			Addr: req.ServerAddress,
			Err:  fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	var parsed chatCompletionResponse
	if err := sonic.Unmarshal(respBody, &parsed); err != nil {
		return nil, &Error{Kind: KindProtocol, Addr: req.ServerAddress, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return nil, &Error{Kind: KindProtocol, Addr: req.ServerAddress, Err: fmt.Errorf("no choices in response")}
	}

	return &Completion{
		Content: parsed.Choices[0].Message.Content,
		Stats: TokenStats{
			TokensPerSecond:  parsed.Stats.TokensPerSecond,
			PromptTokens:     parsed.Usage.PromptTokens,
			CompletionTokens: parsed.Usage.CompletionTokens,
		},
	}, nil
}

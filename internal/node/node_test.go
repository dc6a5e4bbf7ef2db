package node

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lmstudio-node/internal/lmstudio"
	"lmstudio-node/internal/models"
)

// fakeTransport records every request and replays a canned completion or
// error.
type fakeTransport struct {
	images   bool
	requests []lmstudio.Request
	comp     *lmstudio.Completion
	err      error
}

func (f *fakeTransport) SupportsImages() bool { return f.images }

func (f *fakeTransport) Complete(_ context.Context, req lmstudio.Request) (*lmstudio.Completion, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.comp, nil
}

func okCompletion(content string) *lmstudio.Completion {
	return &lmstudio.Completion{
		Content: content,
		Stats:   lmstudio.TokenStats{TokensPerSecond: 3.0, PromptTokens: 5, CompletionTokens: 2},
	}
}

func baseRequest() *models.InvokeRequest {
	return &models.InvokeRequest{
		SystemPrompt:   "You are a helpful assistant.",
		UserMessage:    "hello",
		ModelID:        "test-model",
		ServerAddress:  "http://127.0.0.1:1234",
		Temperature:    0.7,
		MaxTokens:      100,
		ThinkingTokens: true,
		UseSDK:         true,
	}
}

func TestInvokeRoutesToRESTWhenBindingAbsent(t *testing.T) {
	rest := &fakeTransport{comp: okCompletion("Hello")}
	n := New(log.Default(), nil, rest)

	req := baseRequest()
	req.UseSDK = true

	res := n.Invoke(context.Background(), req)
	assert.Equal(t, "Hello", res.Response)
	require.Len(t, rest.requests, 1)
}

func TestInvokeRoutesToSDKWhenPreferred(t *testing.T) {
	sdk := &fakeTransport{images: true, comp: okCompletion("Hi")}
	rest := &fakeTransport{comp: okCompletion("nope")}
	n := New(log.Default(), sdk, rest)

	res := n.Invoke(context.Background(), baseRequest())
	assert.Equal(t, "Hi", res.Response)
	assert.Len(t, sdk.requests, 1)
	assert.Empty(t, rest.requests)
}

func TestInvokeRoutesToRESTWhenSDKNotPreferred(t *testing.T) {
	sdk := &fakeTransport{images: true, comp: okCompletion("nope")}
	rest := &fakeTransport{comp: okCompletion("Hello")}
	n := New(log.Default(), sdk, rest)

	req := baseRequest()
	req.UseSDK = false
	req.Image = testImage(2, 2)

	res := n.Invoke(context.Background(), req)
	assert.Equal(t, "Hello", res.Response)
	assert.Empty(t, sdk.requests)
	require.Len(t, rest.requests, 1)
	// Image is silently dropped on the REST path.
	assert.Empty(t, rest.requests[0].ImagePath)
}

func TestInvokeForwardsImageOnSDKPath(t *testing.T) {
	sdk := &fakeTransport{images: true, comp: okCompletion("saw it")}
	n := New(log.Default(), sdk, &fakeTransport{})

	req := baseRequest()
	req.Image = testImage(2, 3)

	res := n.Invoke(context.Background(), req)
	assert.Equal(t, "saw it", res.Response)
	require.Len(t, sdk.requests, 1)
	assert.NotEmpty(t, sdk.requests[0].ImagePath)
}

func TestInvokeRemovesTempImageFile(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "success", err: nil},
		{name: "transport failure", err: &lmstudio.Error{Kind: lmstudio.KindBinding, Err: errors.New("boom")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sdk := &fakeTransport{images: true, comp: okCompletion("ok"), err: tt.err}
			n := New(log.Default(), sdk, &fakeTransport{})

			req := baseRequest()
			req.Image = testImage(2, 2)

			n.Invoke(context.Background(), req)

			require.Len(t, sdk.requests, 1)
			path := sdk.requests[0].ImagePath
			require.NotEmpty(t, path)
			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr), "temp image %s still exists", path)
		})
	}
}

func TestInvokeFallsBackToTextOnImagePrepFailure(t *testing.T) {
	sdk := &fakeTransport{images: true, comp: okCompletion("text only")}
	n := New(log.Default(), sdk, &fakeTransport{})

	req := baseRequest()
	req.Image = &models.Image{Height: 2, Width: 2, Data: []float32{0}} // wrong length

	res := n.Invoke(context.Background(), req)
	assert.Equal(t, "text only", res.Response)
	require.Len(t, sdk.requests, 1)
	assert.Empty(t, sdk.requests[0].ImagePath)
}

func TestInvokeStripsThinkingSpans(t *testing.T) {
	rest := &fakeTransport{comp: okCompletion("<think>hidden</think>visible")}
	n := New(log.Default(), nil, rest)

	req := baseRequest()
	req.ThinkingTokens = false
	req.UserMessage = "<think>draft</think>real question"

	res := n.Invoke(context.Background(), req)
	require.Len(t, rest.requests, 1)
	assert.Equal(t, "real question", rest.requests[0].UserMessage)
	assert.Equal(t, "visible", res.Response)
}

func TestInvokeKeepsThinkingSpansWhenRequested(t *testing.T) {
	rest := &fakeTransport{comp: okCompletion("<think>hidden</think>visible")}
	n := New(log.Default(), nil, rest)

	req := baseRequest()
	req.ThinkingTokens = true
	req.UserMessage = "<think>draft</think>real question"

	res := n.Invoke(context.Background(), req)
	require.Len(t, rest.requests, 1)
	assert.Equal(t, "<think>draft</think>real question", rest.requests[0].UserMessage)
	assert.Equal(t, "<think>hidden</think>visible", res.Response)
}

func TestInvokeFormatsStats(t *testing.T) {
	rest := &fakeTransport{comp: okCompletion("Hello")}
	n := New(log.Default(), nil, rest)

	res := n.Invoke(context.Background(), baseRequest())
	assert.Equal(t, "Hello", res.Response)
	assert.Equal(t, "Tokens per Second: 3.00\nInput Tokens: 5\nOutput Tokens: 2", res.Stats)
}

func TestInvokeErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantResponse string
	}{
		{
			name:         "connection",
			err:          &lmstudio.Error{Kind: lmstudio.KindConnection, Addr: "http://127.0.0.1:1234", Err: errors.New("dial refused")},
			wantResponse: "Connection error - is LM Studio running at http://127.0.0.1:1234?",
		},
		{
			name:         "timeout",
			err:          &lmstudio.Error{Kind: lmstudio.KindTimeout, Err: errors.New("deadline exceeded")},
			wantResponse: "Request timed out - try increasing timeout duration",
		},
		{
			name:         "protocol",
			err:          &lmstudio.Error{Kind: lmstudio.KindProtocol, Err: errors.New("unexpected status 500: oops")},
			wantResponse: "Error: unexpected status 500: oops",
		},
		{
			name:         "unclassified",
			err:          errors.New("mystery"),
			wantResponse: "Error: mystery",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest := &fakeTransport{err: tt.err}
			n := New(log.Default(), nil, rest)

			res := n.Invoke(context.Background(), baseRequest())
			assert.Equal(t, tt.wantResponse, res.Response)
			assert.Equal(t, DefaultStats, res.Stats)
		})
	}
}

func TestInvokeBindingErrorMessage(t *testing.T) {
	sdk := &fakeTransport{images: true, err: &lmstudio.Error{Kind: lmstudio.KindBinding, Err: errors.New("model not found")}}
	n := New(log.Default(), sdk, &fakeTransport{})

	res := n.Invoke(context.Background(), baseRequest())
	assert.Equal(t, "Error processing with LM Studio SDK: model not found", res.Response)
	assert.Equal(t, DefaultStats, res.Stats)
}

type mapCache struct {
	data map[string]string
}

func (m *mapCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapCache) Set(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func TestInvokeServesFromCache(t *testing.T) {
	rest := &fakeTransport{comp: okCompletion("Hello")}
	n := New(log.Default(), nil, rest)
	n.SetCacheClient(&mapCache{data: map[string]string{}})

	first := n.Invoke(context.Background(), baseRequest())
	second := n.Invoke(context.Background(), baseRequest())

	assert.Equal(t, first, second)
	assert.Len(t, rest.requests, 1, "second call should not reach the transport")
}

func TestInvokeDoesNotCacheFailures(t *testing.T) {
	rest := &fakeTransport{err: errors.New("boom")}
	n := New(log.Default(), nil, rest)
	n.SetCacheClient(&mapCache{data: map[string]string{}})

	n.Invoke(context.Background(), baseRequest())
	n.Invoke(context.Background(), baseRequest())

	assert.Len(t, rest.requests, 2)
}

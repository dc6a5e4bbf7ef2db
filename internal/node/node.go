// Package node implements the LM Studio chat node: one synchronous
// chat-completion call dispatched over the SDK binding or the REST API,
// returning a (response, stats) pair and never an error.
package node

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/bytedance/sonic"

	"lmstudio-node/internal/lmstudio"
	"lmstudio-node/internal/metrics"
	"lmstudio-node/internal/models"
)

type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

// Node dispatches chat completions for the graph host. The SDK transport is
// nil when the binding is absent; presence is decided once at process start
// and never re-checked.
type Node struct {
	logger *log.Logger
	sdk    lmstudio.Transport
	rest   lmstudio.Transport
	cache  Cache
}

func New(logger *log.Logger, sdk, rest lmstudio.Transport) *Node {
	return &Node{
		logger: logger,
		sdk:    sdk,
		rest:   rest,
	}
}

func (n *Node) SetCacheClient(cache Cache) {
	n.cache = cache
}

// Invoke runs one chat completion. Every failure mode is converted into a
// human-readable response text paired with the zeroed stats text; no error
// crosses this boundary.
func (n *Node) Invoke(ctx context.Context, req *models.InvokeRequest) *models.InvokeResult {
	userMessage := req.UserMessage
	if !req.ThinkingTokens {
		userMessage = StripThinking(userMessage)
	}

	if req.Debug {
		n.logger.Printf("debug: model=%s use_sdk=%t has_image=%t\n", req.ModelID, req.UseSDK, req.Image != nil)
	}

	if n.cache != nil {
		if res, found := n.cacheLookup(ctx, req); found {
			return res
		}
	}

	useSDK := n.sdk != nil && req.UseSDK

	var (
		transport string
		res       *models.InvokeResult
		ok        bool
	)
	start := time.Now()
	if useSDK {
		transport = "sdk"
		res, ok = n.invokeSDK(ctx, req, userMessage)
	} else {
		transport = "rest"
		if req.Image != nil && req.Debug && !n.rest.SupportsImages() {
			n.logger.Println("warning: image input is not supported in API mode, dropping image")
		}
		res, ok = n.invokeREST(ctx, req, userMessage)
	}

	status := "ok"
	if !ok {
		status = "error"
	}
	metrics.NodeInvocation(transport, status, time.Since(start))

	if ok && n.cache != nil {
		n.cacheStore(ctx, req, res)
	}
	return res
}

func (n *Node) invokeSDK(ctx context.Context, req *models.InvokeRequest, userMessage string) (*models.InvokeResult, bool) {
	tr := lmstudio.Request{
		SystemPrompt:  req.SystemPrompt,
		UserMessage:   userMessage,
		Model:         req.ModelID,
		ServerAddress: req.ServerAddress,
		Temperature:   req.Temperature,
		MaxTokens:     req.MaxTokens,
	}

	if req.Image != nil && n.sdk.SupportsImages() {
		if path, ok := n.prepareImage(req.Image, req.Debug); ok {
			tr.ImagePath = path
			// The temp file is owned by this call and removed on every
			// exit, success or failure.
			defer func() {
				if err := os.Remove(path); err != nil {
					n.logger.Printf("failed to remove temp image %s: %v\n", path, err)
				} else if req.Debug {
					n.logger.Printf("debug: removed temporary file: %s\n", path)
				}
			}()
		}
	}

	comp, err := n.sdk.Complete(ctx, tr)
	if err != nil {
		return n.errorResult(err, req.ServerAddress), false
	}

	content := comp.Content
	if !req.ThinkingTokens {
		content = StripThinking(content)
	}

	metrics.NodeTokens(comp.Stats.PromptTokens, comp.Stats.CompletionTokens)
	return &models.InvokeResult{
		Response: content,
		Stats:    formatTokenStats(comp.Stats),
	}, true
}

func (n *Node) invokeREST(ctx context.Context, req *models.InvokeRequest, userMessage string) (*models.InvokeResult, bool) {
	tr := lmstudio.Request{
		SystemPrompt:  req.SystemPrompt,
		UserMessage:   userMessage,
		Model:         req.ModelID,
		ServerAddress: req.ServerAddress,
		Temperature:   req.Temperature,
		MaxTokens:     req.MaxTokens,
	}

	comp, err := n.rest.Complete(ctx, tr)
	if err != nil {
		return n.errorResult(err, req.ServerAddress), false
	}

	content := comp.Content
	if !req.ThinkingTokens {
		content = StripThinking(content)
	}

	metrics.NodeTokens(comp.Stats.PromptTokens, comp.Stats.CompletionTokens)
	return &models.InvokeResult{
		Response: content,
		Stats:    formatTokenStats(comp.Stats),
	}, true
}

// errorResult maps a classified transport failure to the user-facing
// response text, always paired with the zeroed stats.
func (n *Node) errorResult(err error, serverAddress string) *models.InvokeResult {
	var response string
	switch lmstudio.KindOf(err) {
	case lmstudio.KindConnection:
		response = fmt.Sprintf("Connection error - is LM Studio running at %s?", serverAddress)
	case lmstudio.KindTimeout:
		response = "Request timed out - try increasing timeout duration"
	case lmstudio.KindBinding:
		response = fmt.Sprintf("Error processing with LM Studio SDK: %v", unwrapped(err))
	default:
		response = fmt.Sprintf("Error: %v", unwrapped(err))
	}

	n.logger.Println(response)
	return &models.InvokeResult{
		Response: response,
		Stats:    DefaultStats,
	}
}

// unwrapped strips the transport's classification wrapper so messages show
// the underlying cause.
func unwrapped(err error) error {
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		if inner := u.Unwrap(); inner != nil {
			return inner
		}
	}
	return err
}

func (n *Node) cacheLookup(ctx context.Context, req *models.InvokeRequest) (*models.InvokeResult, bool) {
	cached, found, err := n.cache.Get(ctx, cacheKey(req))
	if err != nil {
		n.logger.Printf("cache get error: %v\n", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var res models.InvokeResult
	if err := sonic.Unmarshal([]byte(cached), &res); err != nil {
		n.logger.Printf("cache decode error: %v\n", err)
		return nil, false
	}
	if req.Debug {
		n.logger.Println("debug: served from cache")
	}
	return &res, true
}

func (n *Node) cacheStore(ctx context.Context, req *models.InvokeRequest, res *models.InvokeResult) {
	data, err := sonic.Marshal(res)
	if err != nil {
		n.logger.Printf("cache encode error: %v\n", err)
		return
	}
	if err := n.cache.Set(ctx, cacheKey(req), string(data)); err != nil {
		n.logger.Printf("failed to set cache: %v\n", err)
	}
}

// cacheKey hashes every field that influences the completion, including the
// raw image pixels when present.
func cacheKey(req *models.InvokeRequest) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s\x00%f\x00%d\x00%t\x00%t",
		req.SystemPrompt, req.UserMessage, req.ModelID, req.ServerAddress,
		req.Temperature, req.MaxTokens, req.ThinkingTokens, req.UseSDK,
	)
	if req.Image != nil {
		fmt.Fprintf(h, "\x00%dx%d", req.Image.Width, req.Image.Height)
		buf := make([]byte, 4)
		for _, v := range req.Image.Data {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
			h.Write(buf)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

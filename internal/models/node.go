package models

import "fmt"

const (
	MinTemperature = 0.0
	MaxTemperature = 1.0
	MinMaxTokens   = 1
	MaxMaxTokens   = 4096
)

// InvokeRequest represents a single chat-completion call against the node.
// Field names and ranges mirror the input schema served to the graph host.
type InvokeRequest struct {
	SystemPrompt  string  `json:"system_prompt" example:"You are a helpful assistant."`
	UserMessage   string  `json:"user_message" example:"Explain quantum computing in simple terms"`
	ModelID       string  `json:"model_id" validate:"required" example:"TheBloke/Mistral-7B-Instruct-v0.2-GGUF"`
	ServerAddress string  `json:"server_address" validate:"required" example:"http://127.0.0.1:1234"`
	Temperature   float64 `json:"temperature" example:"0.7"`
	MaxTokens     int     `json:"max_tokens" example:"1000"`

	// ThinkingTokens keeps <think>...</think> spans in both the user
	// message and the model output when true.
	ThinkingTokens bool `json:"thinking_tokens" example:"true"`

	// UseSDK prefers the SDK binding over the raw REST API when the
	// binding is available in the process.
	UseSDK bool `json:"use_sdk" example:"true"`

	// Optional single-image batch attached to the user turn (SDK path only).
	Image *Image `json:"image,omitempty"`

	Debug bool `json:"debug,omitempty"`
}

func (r InvokeRequest) Validate() error {
	if r.ModelID == "" {
		return fmt.Errorf("model_id is empty")
	}
	if r.ServerAddress == "" {
		return fmt.Errorf("server_address is empty")
	}
	if r.Temperature < MinTemperature || r.Temperature > MaxTemperature {
		return fmt.Errorf("temperature %.2f out of range [%.1f, %.1f]", r.Temperature, MinTemperature, MaxTemperature)
	}
	if r.MaxTokens < MinMaxTokens || r.MaxTokens > MaxMaxTokens {
		return fmt.Errorf("max_tokens %d out of range [%d, %d]", r.MaxTokens, MinMaxTokens, MaxMaxTokens)
	}
	if r.Image != nil {
		if err := r.Image.Validate(); err != nil {
			return fmt.Errorf("image: %w", err)
		}
	}
	return nil
}

// InvokeResult is the fixed two-field node output: the response text and a
// three-line token-statistics text. Stats is well-formed even on failure.
type InvokeResult struct {
	Response string `json:"response"`
	Stats    string `json:"stats"`
}

// Image is a single-image batch in [1, H, W, 3] layout with RGB channel
// values in [0, 1]. Data is the flattened H*W*3 pixel array.
type Image struct {
	Height int       `json:"height"`
	Width  int       `json:"width"`
	Data   []float32 `json:"data"`
}

func (i Image) Validate() error {
	if i.Height <= 0 || i.Width <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", i.Width, i.Height)
	}
	if want := i.Height * i.Width * 3; len(i.Data) != want {
		return fmt.Errorf("data length %d does not match %dx%dx3 (%d)", len(i.Data), i.Height, i.Width, want)
	}
	return nil
}

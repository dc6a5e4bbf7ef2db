package models

// InputSpec describes one node input for the graph host: its widget type,
// default value and, for numeric inputs, the allowed range and step.
type InputSpec struct {
	Type      string   `json:"type"`
	Default   any      `json:"default,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Step      *float64 `json:"step,omitempty"`
	Multiline bool     `json:"multiline,omitempty"`
	Label     string   `json:"label,omitempty"`
}

// NodeSchema is the host-facing declaration of the node: required and
// optional inputs plus the named outputs the host wires into the graph.
type NodeSchema struct {
	DisplayName string               `json:"display_name"`
	Category    string               `json:"category"`
	Function    string               `json:"function"`
	Required    map[string]InputSpec `json:"required"`
	Optional    map[string]InputSpec `json:"optional"`
	ReturnTypes []string             `json:"return_types"`
	ReturnNames []string             `json:"return_names"`
}

func floatPtr(v float64) *float64 { return &v }

// Schema returns the input/output declaration consumed by the graph host to
// render the node's widgets.
func Schema() NodeSchema {
	return NodeSchema{
		DisplayName: "LM Studio Chat Interface",
		Category:    "LM Studio",
		Function:    "invoke",
		Required: map[string]InputSpec{
			"system_prompt": {
				Type:      "STRING",
				Multiline: true,
				Default:   "You are a helpful assistant.",
			},
			"user_message": {
				Type:      "STRING",
				Multiline: true,
				Default:   "Explain quantum computing in simple terms",
			},
			"model_id": {
				Type:    "STRING",
				Default: "TheBloke/Mistral-7B-Instruct-v0.2-GGUF",
			},
			"server_address": {
				Type:    "STRING",
				Default: "http://127.0.0.1:1234",
			},
			"temperature": {
				Type:    "FLOAT",
				Default: 0.7,
				Min:     floatPtr(MinTemperature),
				Max:     floatPtr(MaxTemperature),
				Step:    floatPtr(0.01),
			},
			"max_tokens": {
				Type:    "INT",
				Default: 1000,
				Min:     floatPtr(MinMaxTokens),
				Max:     floatPtr(MaxMaxTokens),
				Step:    floatPtr(1),
			},
			"thinking_tokens": {
				Type:    "BOOLEAN",
				Default: true,
				Label:   "Include thinking tokens",
			},
			"use_sdk": {
				Type:    "BOOLEAN",
				Default: true,
				Label:   "Use SDK (if available)",
			},
		},
		Optional: map[string]InputSpec{
			"image": {
				Type: "IMAGE",
			},
			"debug": {
				Type:    "BOOLEAN",
				Default: false,
			},
		},
		ReturnTypes: []string{"STRING", "STRING"},
		ReturnNames: []string{"response", "stats"},
	}
}

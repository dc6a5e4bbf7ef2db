package main

import "time"

type InvokeRequest struct {
	SystemPrompt   string  `json:"system_prompt"`
	UserMessage    string  `json:"user_message"`
	ModelID        string  `json:"model_id"`
	ServerAddress  string  `json:"server_address"`
	Temperature    float64 `json:"temperature"`
	MaxTokens      int     `json:"max_tokens"`
	ThinkingTokens bool    `json:"thinking_tokens"`
	UseSDK         bool    `json:"use_sdk"`
}

type InvokeResult struct {
	Response string `json:"response"`
	Stats    string `json:"stats"`
}

type BenchResult struct {
	File         string
	Transport    string
	Duration     time.Duration
	OutputTokens int
	Err          error
}

type Agg struct {
	Count       int
	Total       time.Duration
	TotalTokens int
}

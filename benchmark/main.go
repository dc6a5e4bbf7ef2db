package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	defaultTemperature = 0.7
	defaultMaxTokens   = 512
	backendEndpoint    = "http://localhost:8080/invoke"
	serverAddress      = "http://127.0.0.1:1234"
	modelID            = "TheBloke/Mistral-7B-Instruct-v0.2-GGUF"

	transports = []string{"sdk", "rest"}
)

func main() {
	ctx := context.Background()

	prompts, _ := os.ReadDir(filepath.Join(".", "data", "prompts"))

	var results []BenchResult
	for _, transport := range transports {
		for _, prompt := range prompts {
			filePath := filepath.Join(".", "data", "prompts", prompt.Name())
			res := benchmarkPrompt(ctx, filePath, transport)

			if res.Err != nil {
				log.Println("ERR:", res.Err)
			} else {
				log.Printf("OK %s/%s %v", res.Transport, res.File, res.Duration)
			}

			results = append(results, res)
		}
	}

	printMarkdown(results)
}

func benchmarkPrompt(ctx context.Context, filePath, transport string) BenchResult {
	start := time.Now()

	promptRaw, err := os.ReadFile(filePath)
	if err != nil {
		return BenchResult{File: filePath, Transport: transport, Err: err}
	}

	req := InvokeRequest{
		SystemPrompt:   "You are a helpful assistant.",
		UserMessage:    strings.TrimSpace(string(promptRaw)),
		ModelID:        modelID,
		ServerAddress:  serverAddress,
		Temperature:    defaultTemperature,
		MaxTokens:      defaultMaxTokens,
		ThinkingTokens: true,
		UseSDK:         transport == "sdk",
	}

	res, err := sendInvoke(ctx, req)
	if err != nil {
		return BenchResult{File: filepath.Base(filePath), Transport: transport, Err: err}
	}

	return BenchResult{
		File:         filepath.Base(filePath),
		Transport:    transport,
		Duration:     time.Since(start),
		OutputTokens: outputTokens(res.Stats),
		Err:          nil,
	}
}

func sendInvoke(ctx context.Context, req InvokeRequest) (*InvokeResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal req: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, backendEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s",
			resp.StatusCode,
			strings.TrimSpace(string(b)),
		)
	}

	var res InvokeResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

// outputTokens parses the "Output Tokens: N" line of the stats text.
func outputTokens(stats string) int {
	for _, line := range strings.Split(stats, "\n") {
		var n int
		if _, err := fmt.Sscanf(line, "Output Tokens: %d", &n); err == nil {
			return n
		}
	}
	return 0
}

func aggregate(results []BenchResult) map[string]Agg {
	m := map[string]Agg{}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		a := m[r.Transport]
		a.Count++
		a.Total += r.Duration
		a.TotalTokens += r.OutputTokens
		m[r.Transport] = a
	}
	return m
}

func printMarkdown(results []BenchResult) {
	fmt.Println("\n## Benchmark Results\n")
	fmt.Println("| Transport | Requests | Avg Time | Total Time | Avg Output Tokens |")
	fmt.Println("|-----------|----------|----------|------------|-------------------|")

	agg := aggregate(results)

	var (
		totalCount    int
		totalDuration time.Duration
		totalTokens   int
	)

	for transport, a := range agg {
		avg := a.Total / time.Duration(a.Count)
		fmt.Printf("| %s | %d | %v | %v | %d |\n",
			transport,
			a.Count,
			avg.Round(time.Millisecond),
			a.Total.Round(time.Millisecond),
			a.TotalTokens/a.Count,
		)
		totalCount += a.Count
		totalDuration += a.Total
		totalTokens += a.TotalTokens
	}

	if totalCount > 0 {
		mean := totalDuration / time.Duration(totalCount)
		fmt.Printf("| **ALL** | %d | %v | %v | %d |\n",
			totalCount,
			mean.Round(time.Millisecond),
			totalDuration.Round(time.Millisecond),
			totalTokens/totalCount,
		)
	}
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// LLMConfig holds configuration for the chat-completion backed services.
type LLMConfig struct {
	Enabled bool
	Model   string
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// llmRequest represents the request to the LLM API.
type llmRequest struct {
	Model       string       `json:"model"`
	Messages    []llmMessage `json:"messages"`
	MaxTokens   int          `json:"max_tokens"`
	Temperature float32      `json:"temperature"`
}

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// llmClient is a thin chat-completions client shared by the selector and
// caption services. A disabled client returns an error from Complete, so
// callers always take their rule-based fallback path.
type llmClient struct {
	client   *resty.Client
	model    string
	endpoint string
	enabled  bool
}

func newLLMClient(cfg *LLMConfig) *llmClient {
	if cfg == nil || !cfg.Enabled || cfg.APIKey == "" {
		return &llmClient{enabled: false}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(timeout)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &llmClient{
		client:   client,
		model:    cfg.Model,
		endpoint: baseURL + "/chat/completions",
		enabled:  true,
	}
}

// IsEnabled returns whether the client will make network calls.
func (c *llmClient) IsEnabled() bool {
	return c.enabled
}

// Complete sends one system+user exchange and returns the raw completion
// text.
func (c *llmClient) Complete(ctx context.Context, system, user string, maxTokens int, temperature float32) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("llm client disabled")
	}

	req := llmRequest{
		Model: c.model,
		Messages: []llmMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	var resp llmResponse
	httpResp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		return "", fmt.Errorf("llm request failed: status %d", httpResp.StatusCode())
	}
	if resp.Error != nil {
		return "", fmt.Errorf("llm error: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("llm returned empty completion")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// extractJSON finds the first balanced JSON object in content. LLMs often
// wrap JSON in prose or markdown fences, so the caller cannot unmarshal the
// raw completion directly.
func extractJSON(content string) (string, error) {
	start := strings.Index(content, "{")
	if start == -1 {
		return "", fmt.Errorf("no JSON found in response")
	}

	braceCount := 0
	for i := start; i < len(content); i++ {
		switch content[i] {
		case '{':
			braceCount++
		case '}':
			braceCount--
			if braceCount == 0 {
				return content[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("incomplete JSON in response")
}

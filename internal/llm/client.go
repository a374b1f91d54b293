// Package llm provides a chat-completion client for OpenAI-compatible
// providers (Groq in production).
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrEmptyResponse is returned when the provider returns no choices.
var ErrEmptyResponse = errors.New("llm: empty response")

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a chat-completion invocation.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Usage is the provider-reported token usage. It may be absent; callers
// always recompute usage with their own tokenizer and treat this as
// advisory only.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the assistant reply plus optional usage.
type Response struct {
	Content string
	Usage   *Usage
}

// Client is the chat-completion operation the pipeline depends on.
type Client interface {
	ChatCompletion(ctx context.Context, req Request) (Response, error)
}

// HTTPClient talks to an OpenAI-compatible /chat/completions endpoint.
type HTTPClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for the given base URL (e.g.
// "https://api.groq.com/openai/v1").
func NewHTTPClient(apiKey, baseURL string) *HTTPClient {
	return &HTTPClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Minute},
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream"`
}

type chatChoice struct {
	Message Message `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Usage   *Usage       `json:"usage"`
}

// ChatCompletion performs one synchronous completion call. Provider errors
// (rate limit, timeout, non-2xx) are returned to the caller untouched; the
// orchestrator decides how to react.
func (c *HTTPClient) ChatCompletion(ctx context.Context, req Request) (Response, error) {
	body := chatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      false,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("llm: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return Response{}, fmt.Errorf("llm: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("llm: call provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return Response{}, fmt.Errorf("llm: provider status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Response{}, fmt.Errorf("llm: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return Response{}, ErrEmptyResponse
	}
	return Response{Content: parsed.Choices[0].Message.Content, Usage: parsed.Usage}, nil
}

// Ping validates provider connectivity with a one-token probe. Called once
// at startup; a failure means the pipeline cannot run at all.
func (c *HTTPClient) Ping(ctx context.Context, model string) error {
	_, err := c.ChatCompletion(ctx, Request{
		Model:     model,
		Messages:  []Message{{Role: "user", Content: "test"}},
		MaxTokens: 1,
	})
	if err != nil && !errors.Is(err, ErrEmptyResponse) {
		return fmt.Errorf("llm: validate provider: %w", err)
	}
	return nil
}

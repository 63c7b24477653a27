package agriassist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Message is one chat turn in the provider wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMClient produces an assistant reply for a conversation.
type LLMClient interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Provider chat-completion endpoints.
const (
	openAIEndpoint     = "https://api.openai.com/v1/chat/completions"
	perplexityEndpoint = "https://api.perplexity.ai/chat/completions"

	llmRequestTimeout = 30 * time.Second
)

// HTTPLLMClient talks to an OpenAI-compatible chat completions API.
// Supported providers: "openai" and "perplexity".
type HTTPLLMClient struct {
	Provider string
	Model    string
	APIKey   string

	// BaseURL overrides the provider endpoint (used in tests).
	BaseURL string

	// HTTPClient defaults to one with a bounded timeout.
	HTTPClient *http.Client
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Complete sends the conversation to the provider and returns the reply
// text. Any failure is returned to the caller; the chat relay decides
// whether to swallow it.
func (c *HTTPLLMClient) Complete(ctx context.Context, messages []Message) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("llm api key is not set")
	}

	endpoint := c.BaseURL
	if endpoint == "" {
		switch c.Provider {
		case "openai":
			endpoint = openAIEndpoint
		case "perplexity":
			endpoint = perplexityEndpoint
		default:
			return "", fmt.Errorf("unknown llm provider: %s", c.Provider)
		}
	}

	body, err := json.Marshal(completionRequest{
		Model:       c.Model,
		Messages:    messages,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm request failed: status %d", resp.StatusCode)
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("llm response contained no choices")
	}
	return out.Choices[0].Message.Content, nil
}

func (c *HTTPLLMClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: llmRequestTimeout}
}

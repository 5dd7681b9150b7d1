package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vocalcart/internal/domain"
	"vocalcart/internal/infra"
	"vocalcart/internal/infra/llmintent"
)

// ClaudeClient interprets commands with the Anthropic Messages API. It has no
// image or speech output.
type ClaudeClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	model      string
}

func NewClaudeClient(apiKey, model string) *ClaudeClient {
	return NewClaudeClientWithURL(apiKey, model, "https://api.anthropic.com/v1")
}

func NewClaudeClientWithURL(apiKey, model, baseURL string) *ClaudeClient {
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	return &ClaudeClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		model:      model,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *ClaudeClient) Interpret(ctx context.Context, utterance string, items []domain.ShoppingItem, lang domain.Language) ([]domain.Intent, error) {
	reqBody := request{
		Model:     c.model,
		MaxTokens: 1024,
		System:    llmintent.ShapeHint,
		Messages: []message{
			{Role: "user", Content: llmintent.Prompt(utterance, items, lang)},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	var result response
	retryErr := infra.WithRetry(ctx, infra.DefaultRetryConfig(), func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(bodyBytes))
		if err != nil {
			return infra.Permanent(fmt.Errorf("creating request: %w", err))
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("anthropic-version", "2023-06-01")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			respBody, _ := io.ReadAll(resp.Body)
			if infra.IsRetryableHTTPStatus(resp.StatusCode) {
				return fmt.Errorf("claude API error %d: %s (retryable)", resp.StatusCode, string(respBody))
			}
			return infra.Permanent(fmt.Errorf("claude API error %d: %s", resp.StatusCode, string(respBody)))
		}

		if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return infra.Permanent(fmt.Errorf("decoding response: %w", err))
		}

		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}

	var text strings.Builder
	for _, block := range result.Content {
		if block.Type == "" || block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return nil, fmt.Errorf("empty response from claude")
	}

	return llmintent.Parse(text.String())
}

func (c *ClaudeClient) Suggest(ctx context.Context, items []domain.ShoppingItem, lang domain.Language) ([]string, error) {
	intents, err := c.Interpret(ctx, llmintent.SuggestCommand, items, lang)
	if err != nil {
		return nil, fmt.Errorf("requesting suggestions: %w", err)
	}
	return llmintent.Suggestions(intents), nil
}

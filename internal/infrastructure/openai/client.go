// Package openai implements the natural-language list extractor and the
// explanation generator on the OpenAI chat completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/shopsense/backend/internal/domain"
)

const (
	extractSystemPrompt = "You are a shopping assistant. Extract specific shopping items from the input. " +
		"Retain specific details like model or size. Return only a JSON array of strings."

	explainSystemPrompt = "You are a shopping assistant. Explain in 35-40 words why this product was " +
		"chosen as the best option based on relevance and price. Be concise."
)

// Client handles communication with the OpenAI chat completions API
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
	debug      bool
}

// NewClient creates a new OpenAI client
func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
	}
}

// SetDebug enables verbose logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ExtractItems asks the model to turn raw text (OCR lines or a free-text
// request) into a JSON array of item names. A response that is not a JSON
// array surfaces as an error so callers can fall back.
func (c *Client) ExtractItems(ctx context.Context, input string) ([]string, error) {
	content, err := c.chat(ctx, extractSystemPrompt, input, 0, 0)
	if err != nil {
		return nil, err
	}

	var items []string
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &items); err != nil {
		return nil, fmt.Errorf("model returned invalid item list: %w", err)
	}
	return items, nil
}

// Explain asks the model why the chosen offer beats the alternatives shown
func (c *Client) Explain(ctx context.Context, item string, chosen domain.Offer, shown []domain.Offer) (string, error) {
	var alternatives []string
	for _, offer := range shown {
		if offer.Identity() == chosen.Identity() {
			continue
		}
		alternatives = append(alternatives, fmt.Sprintf("%s - $%.2f", offer.Title, offer.NumericPrice))
	}
	alternativesText := "No alternatives shown"
	if len(alternatives) > 0 {
		alternativesText = strings.Join(alternatives, " | ")
	}

	user := fmt.Sprintf("Item needed: %s\nSelected: %s - $%.2f\nAlternatives: %s",
		item, chosen.Title, chosen.NumericPrice, alternativesText)

	return c.chat(ctx, explainSystemPrompt, user, 0.3, 60)
}

// chat executes one chat completion and returns the first choice's content
func (c *Client) chat(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if c.debug {
			log.Printf("[OPENAI] API error - Status: %d, Body: %s", resp.StatusCode, string(body))
		}
		return "", fmt.Errorf("chat API returned status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty chat response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// stripCodeFence removes a markdown code fence the model sometimes wraps
// JSON output in
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"aeon/internal"
	"aeon/models"
)

// StructuredClient provides typed JSON responses from LLM calls
type StructuredClient[T any] struct {
	config     *models.AIConfig
	httpClient *http.Client
}

// NewStructuredClient creates a new structured client
func NewStructuredClient[T any](config *models.AIConfig) *StructuredClient[T] {
	return &StructuredClient[T]{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// GetJSONResponse makes a chat-completions call and parses the reply body
// into the typed result. Any transport error, non-200 status or parse
// failure is returned to the caller, which is expected to fall back to a
// local computation.
func (client *StructuredClient[T]) GetJSONResponse(ctx context.Context, systemContext, prompt string) (*T, error) {
	if client.config.OpenAIKey == "" {
		return nil, fmt.Errorf("no OpenAI API key configured")
	}

	ctx, cancel := context.WithTimeout(ctx, client.config.Timeout)
	defer cancel()

	if systemContext == "" {
		systemContext = client.config.SystemContext
	}

	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	reqBody := struct {
		Model       string    `json:"model"`
		Messages    []message `json:"messages"`
		MaxTokens   int       `json:"max_tokens,omitempty"`
		Temperature float64   `json:"temperature,omitempty"`
	}{
		Model: client.config.OpenAIModel,
		Messages: []message{
			{Role: "system", Content: systemContext},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   client.config.MaxTokens,
		Temperature: client.config.Temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	baseURL := client.config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	req, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+client.config.OpenAIKey)

	resp, err := client.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("request timeout after %v: %w", client.config.Timeout, err)
		}
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var envelope struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}
	if len(envelope.Choices) == 0 {
		return nil, fmt.Errorf("no choices in OpenAI response")
	}

	content := cleanJSONContent(envelope.Choices[0].Message.Content)

	var result T
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		internal.DefaultLogger.Debug("Failed to unmarshal model output: %v", err)
		return nil, fmt.Errorf("failed to parse JSON content into result type: %w", err)
	}
	return &result, nil
}

// cleanJSONContent removes markdown code fences and chatter around the
// JSON payload that chat models sometimes emit
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	// Trim prefix chatter before the first JSON object
	if !strings.HasPrefix(content, "{") {
		if idx := strings.Index(content, "{"); idx > 0 {
			prefix := content[:idx]
			if !strings.Contains(prefix, "}") {
				content = content[idx:]
			}
		}
	}

	return strings.TrimSpace(content)
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven"
)

// Ensure OpenAIRewrite implements RewriteService
var _ driven.RewriteService = (*OpenAIRewrite)(nil)

// rewriteSystemPrompt instructs the model to emit paired-span markup.
// Weak passages are wrapped in <old_draft> tags immediately followed by
// an <optimized_draft> replacement. Text outside the pairs is untouched.
const rewriteSystemPrompt = `You are an expert newsletter editor. Rewrite weak passages of the email you are given.

For each passage you improve, output the original wrapped in <old_draft></old_draft> immediately followed by your replacement wrapped in <optimized_draft></optimized_draft>. Copy all other text through unchanged. Do not add commentary.`

// scoreSystemPrompt asks for a single JSON object grading the email.
const scoreSystemPrompt = `You are an expert newsletter editor. Grade the email you are given and respond with only a JSON object of this shape:

{"overall": 0-100, "clarity": 0-100, "engagement": 0-100, "readability": 0-100, "summary": "one sentence"}`

// OpenAIRewrite implements RewriteService using an OpenAI-compatible
// chat completions API. Ollama's /v1 endpoint speaks the same protocol,
// so both providers share this client.
type OpenAIRewrite struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAIRewrite creates a rewrite service backed by OpenAI
func NewOpenAIRewrite(apiKey, model, baseURL string) (driven.RewriteService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &OpenAIRewrite{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// NewOllamaRewrite creates a rewrite service backed by a local Ollama
// server via its OpenAI-compatible endpoint
func NewOllamaRewrite(baseURL, model string) (driven.RewriteService, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("Ollama base URL is required")
	}

	if model == "" {
		model = "llama3.1"
	}

	return &OpenAIRewrite{
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/") + "/v1",
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// chatMessage is a single message in a chat completion request
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for the chat completions API
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// chatResponse is the response from the chat completions API
type chatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int         `json:"index"`
		Message chatMessage `json:"message"`
		Finish  string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// Rewrite asks the model for paired-span markup and returns it verbatim
func (r *OpenAIRewrite) Rewrite(ctx context.Context, req driven.RewriteRequest) (string, error) {
	var sb strings.Builder
	if req.Audience != "" {
		fmt.Fprintf(&sb, "Audience: %s\n", req.Audience)
	}
	if req.Goal != "" {
		fmt.Fprintf(&sb, "Goal: %s\n", req.Goal)
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(req.PlainText)

	resp, err := r.doRequest(ctx, chatRequest{
		Model: r.model,
		Messages: []chatMessage{
			{Role: "system", Content: rewriteSystemPrompt},
			{Role: "user", Content: sb.String()},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}

	content, err := firstChoice(resp)
	if err != nil {
		return "", err
	}
	return content, nil
}

// Score asks the model for a holistic grade and parses the JSON reply
func (r *OpenAIRewrite) Score(ctx context.Context, plainText string) (*domain.HolisticScore, error) {
	resp, err := r.doRequest(ctx, chatRequest{
		Model: r.model,
		Messages: []chatMessage{
			{Role: "system", Content: scoreSystemPrompt},
			{Role: "user", Content: plainText},
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, err
	}

	content, err := firstChoice(resp)
	if err != nil {
		return nil, err
	}

	var score domain.HolisticScore
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &score); err != nil {
		return nil, fmt.Errorf("failed to parse score response: %w", err)
	}
	return &score, nil
}

// Model returns the model name being used
func (r *OpenAIRewrite) Model() string {
	return r.model
}

// Ping verifies the rewrite service is available
func (r *OpenAIRewrite) Ping(ctx context.Context) error {
	// Make a minimal completion request to verify connectivity
	_, err := r.doRequest(ctx, chatRequest{
		Model: r.model,
		Messages: []chatMessage{
			{Role: "user", Content: "ping"},
		},
		Temperature: 0,
		MaxTokens:   1,
	})
	return err
}

// Close releases resources held by the rewrite service
func (r *OpenAIRewrite) Close() error {
	r.client.CloseIdleConnections()
	return nil
}

// doRequest makes a request to the chat completions API
func (r *OpenAIRewrite) doRequest(ctx context.Context, reqBody chatRequest) (*chatResponse, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if chatResp.Error != nil {
		return nil, fmt.Errorf("chat API error: %s (type: %s, code: %s)",
			chatResp.Error.Message, chatResp.Error.Type, chatResp.Error.Code)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat API returned status %d", resp.StatusCode)
	}

	return &chatResp, nil
}

// firstChoice extracts the message content of the first completion choice
func firstChoice(resp *chatResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// stripCodeFence removes a surrounding markdown code fence, which some
// models add around JSON replies
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

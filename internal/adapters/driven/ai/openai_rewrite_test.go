package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven"
)

func TestNewOpenAIRewrite_RequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIRewrite("", "gpt-4o-mini", "")
	if err == nil {
		t.Error("expected error for empty API key")
	}
}

func TestNewOpenAIRewrite_DefaultModel(t *testing.T) {
	svc, err := NewOpenAIRewrite("sk-test", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Model() != "gpt-4o-mini" {
		t.Errorf("expected default model gpt-4o-mini, got %s", svc.Model())
	}
}

func TestNewOllamaRewrite_RequiresBaseURL(t *testing.T) {
	_, err := NewOllamaRewrite("", "llama3.1")
	if err == nil {
		t.Error("expected error for empty base URL")
	}
}

func TestNewOllamaRewrite_AppendsV1(t *testing.T) {
	svc, err := NewOllamaRewrite("http://localhost:11434/", "llama3.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	or := svc.(*OpenAIRewrite)
	if or.baseURL != "http://localhost:11434/v1" {
		t.Errorf("expected trimmed base URL with /v1, got %s", or.baseURL)
	}
}

// newChatServer returns a test server that answers every chat completion
// with the given message content
func newChatServer(t *testing.T, content string, capture *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
		}
		resp := map[string]interface{}{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIRewrite_Rewrite(t *testing.T) {
	markup := "<old_draft>really great</old_draft><optimized_draft>excellent</optimized_draft>"
	var captured chatRequest
	server := newChatServer(t, markup, &captured)
	defer server.Close()

	svc, _ := NewOpenAIRewrite("sk-test", "gpt-4o-mini", server.URL)

	got, err := svc.Rewrite(context.Background(), driven.RewriteRequest{
		PlainText: "This is a really great deal.",
		Audience:  "founders",
		Goal:      "drive signups",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != markup {
		t.Errorf("expected markup returned verbatim, got %q", got)
	}

	if len(captured.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(captured.Messages))
	}
	user := captured.Messages[1].Content
	if !strings.Contains(user, "Audience: founders") {
		t.Errorf("expected audience in prompt, got %q", user)
	}
	if !strings.Contains(user, "Goal: drive signups") {
		t.Errorf("expected goal in prompt, got %q", user)
	}
	if !strings.Contains(user, "This is a really great deal.") {
		t.Errorf("expected document text in prompt, got %q", user)
	}
}

func TestOpenAIRewrite_Score(t *testing.T) {
	server := newChatServer(t, `{"overall": 72, "clarity": 80, "engagement": 65, "readability": 70, "summary": "Solid draft."}`, nil)
	defer server.Close()

	svc, _ := NewOpenAIRewrite("sk-test", "gpt-4o-mini", server.URL)

	score, err := svc.Score(context.Background(), "This is a really great deal.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Overall != 72 {
		t.Errorf("expected overall 72, got %d", score.Overall)
	}
	if score.Clarity != 80 {
		t.Errorf("expected clarity 80, got %d", score.Clarity)
	}
	if score.Summary != "Solid draft." {
		t.Errorf("expected summary, got %q", score.Summary)
	}
}

func TestOpenAIRewrite_Score_CodeFencedJSON(t *testing.T) {
	server := newChatServer(t, "```json\n{\"overall\": 50, \"clarity\": 50, \"engagement\": 50, \"readability\": 50}\n```", nil)
	defer server.Close()

	svc, _ := NewOpenAIRewrite("sk-test", "gpt-4o-mini", server.URL)

	score, err := svc.Score(context.Background(), "Some text.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Overall != 50 {
		t.Errorf("expected overall 50, got %d", score.Overall)
	}
}

func TestOpenAIRewrite_Score_InvalidJSON(t *testing.T) {
	server := newChatServer(t, "I would grade this a solid B.", nil)
	defer server.Close()

	svc, _ := NewOpenAIRewrite("sk-test", "gpt-4o-mini", server.URL)

	if _, err := svc.Score(context.Background(), "Some text."); err == nil {
		t.Error("expected error for non-JSON score reply")
	}
}

func TestOpenAIRewrite_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"message": "invalid api key",
				"type":    "invalid_request_error",
				"code":    "invalid_api_key",
			},
		})
	}))
	defer server.Close()

	svc, _ := NewOpenAIRewrite("sk-bad", "gpt-4o-mini", server.URL)

	_, err := svc.Rewrite(context.Background(), driven.RewriteRequest{PlainText: "text"})
	if err == nil {
		t.Fatal("expected error for API error response")
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("expected API error message, got %v", err)
	}
}

func TestOpenAIRewrite_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	svc, _ := NewOpenAIRewrite("sk-test", "gpt-4o-mini", server.URL)

	if _, err := svc.Rewrite(context.Background(), driven.RewriteRequest{PlainText: "text"}); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestOpenAIRewrite_NetworkError(t *testing.T) {
	svc, _ := NewOpenAIRewrite("sk-test", "gpt-4o-mini", "http://127.0.0.1:1")

	if _, err := svc.Rewrite(context.Background(), driven.RewriteRequest{PlainText: "text"}); err == nil {
		t.Error("expected error for unreachable server")
	}
}

func TestOpenAIRewrite_Ping(t *testing.T) {
	server := newChatServer(t, "pong", nil)
	defer server.Close()

	svc, _ := NewOpenAIRewrite("sk-test", "gpt-4o-mini", server.URL)

	if err := svc.Ping(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOpenAIRewrite_Close(t *testing.T) {
	svc, _ := NewOpenAIRewrite("sk-test", "gpt-4o-mini", "")
	if err := svc.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"  {\"a\": 1}  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		if got := stripCodeFence(tt.in); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stellarlinkco/llm-arena/internal/chat"
)

func chatCompletionResponse(model, content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   model,
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
}

func TestOpenAIProvider_Complete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		b, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "read", http.StatusBadRequest)
			return
		}

		var req map[string]any
		if err := json.Unmarshal(b, &req); err != nil {
			http.Error(w, "json", http.StatusBadRequest)
			return
		}
		if req["model"] != "gpt-4o" {
			http.Error(w, "bad model", http.StatusBadRequest)
			return
		}
		if req["max_tokens"] != float64(10) {
			http.Error(w, "bad max_tokens", http.StatusBadRequest)
			return
		}
		msgs, _ := req["messages"].([]any)
		if len(msgs) != 2 {
			http.Error(w, "bad messages", http.StatusBadRequest)
			return
		}
		m0, _ := msgs[0].(map[string]any)
		m1, _ := msgs[1].(map[string]any)
		if m0["role"] != "system" || m1["role"] != "user" || m1["content"] != "123 + 456" {
			http.Error(w, "bad prompt", http.StatusBadRequest)
			return
		}

		w.Header().Set("content-type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletionResponse("gpt-4o", "579"))
	}))
	t.Cleanup(srv.Close)

	p := NewOpenAIProvider("openrouter", "test-key", srv.URL+"/v1", Options{})

	got, err := p.Complete(context.Background(), "gpt-4o", []chat.Message{
		{Role: chat.RoleSystem, Content: "answer with a number"},
		{Role: chat.RoleUser, Content: "123 + 456"},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "579" {
		t.Fatalf("Complete: got %q want %q", got, "579")
	}
}

func TestOpenAIProvider_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	p := NewOpenAIProvider("openrouter", "test-key", srv.URL+"/v1", Options{})

	if _, err := p.Complete(context.Background(), "gpt-4o", []chat.Message{
		{Role: chat.RoleUser, Content: "hi"},
	}); err == nil {
		t.Fatalf("Complete: expected error on HTTP 429")
	}
}

func TestOpenAIProvider_EmptyChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-2",
			"object":  "chat.completion",
			"model":   "gpt-4o",
			"choices": []any{},
		})
	}))
	t.Cleanup(srv.Close)

	p := NewOpenAIProvider("openrouter", "test-key", srv.URL+"/v1", Options{})

	if _, err := p.Complete(context.Background(), "gpt-4o", []chat.Message{
		{Role: chat.RoleUser, Content: "hi"},
	}); err == nil {
		t.Fatalf("Complete: expected error for empty choices")
	}
}

func TestOpenAIProvider_Validation(t *testing.T) {
	t.Parallel()

	p := NewOpenAIProvider("openrouter", "k", "http://127.0.0.1:0", Options{})

	if _, err := p.Complete(context.Background(), "", []chat.Message{{Role: chat.RoleUser, Content: "x"}}); err == nil {
		t.Fatalf("Complete: expected error for empty model")
	}
	if _, err := p.Complete(context.Background(), "gpt-4o", nil); err == nil {
		t.Fatalf("Complete: expected error for no messages")
	}
}

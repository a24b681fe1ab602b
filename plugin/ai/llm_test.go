package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompletionServer serves the chat completion endpoint. The first
// failures requests answer 500.
func fakeCompletionServer(t *testing.T, failures int32, reply string) (*httptest.Server, *atomic.Int32, *atomic.Value) {
	t.Helper()
	var calls atomic.Int32
	var lastBody atomic.Value

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		lastBody.Store(body)

		if n <= failures {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": reply},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls, &lastBody
}

// TestNewLLMService tests service creation.
func TestNewLLMService(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *LLMConfig
		expectError bool
	}{
		{"DeepSeek config", &LLMConfig{Provider: "deepseek", Model: "deepseek-chat", APIKey: "test-key", BaseURL: "https://api.deepseek.com"}, false},
		{"OpenAI config", &LLMConfig{Provider: "openai", Model: "gpt-4o-mini", APIKey: "test-key"}, false},
		{"Ollama config", &LLMConfig{Provider: "ollama", Model: "qwen2.5", BaseURL: "http://localhost:11434"}, false},
		{"Unsupported provider", &LLMConfig{Provider: "unsupported"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLLMService(tt.cfg)
			assert.Equal(t, tt.expectError, err != nil, "error = %v", err)
		})
	}
}

func TestLLMService_ChatJSON(t *testing.T) {
	srv, calls, lastBody := fakeCompletionServer(t, 0, `{"ok":true}`)

	svc, err := NewLLMService(&LLMConfig{Provider: "openai", Model: "gpt-4o-mini", APIKey: "k", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	got, err := svc.ChatJSON(context.Background(), FormatMessages("system", "user", nil))
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, got)
	assert.EqualValues(t, 1, calls.Load())

	body := lastBody.Load().(map[string]any)
	format, ok := body["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", format["type"])
	assert.Len(t, body["messages"], 2)
}

func TestLLMService_Retry(t *testing.T) {
	srv, calls, _ := fakeCompletionServer(t, 2, "hello")

	svc, err := NewLLMService(&LLMConfig{
		Provider: "openai", Model: "gpt-4o-mini", APIKey: "k", BaseURL: srv.URL + "/v1",
		MaxRetries: 3, RetryBackoff: time.Millisecond,
	})
	require.NoError(t, err)

	got, err := svc.Chat(context.Background(), []Message{UserMessage("hi")})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.EqualValues(t, 3, calls.Load())
}

func TestLLMService_RetryExhausted(t *testing.T) {
	srv, calls, _ := fakeCompletionServer(t, 10, "never")

	svc, err := NewLLMService(&LLMConfig{
		Provider: "openai", Model: "gpt-4o-mini", APIKey: "k", BaseURL: srv.URL + "/v1",
		MaxRetries: 2, RetryBackoff: time.Millisecond,
	})
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), []Message{UserMessage("hi")})
	require.Error(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestLLMService_ContextCanceled(t *testing.T) {
	srv, _, _ := fakeCompletionServer(t, 10, "never")

	svc, err := NewLLMService(&LLMConfig{
		Provider: "openai", Model: "gpt-4o-mini", APIKey: "k", BaseURL: srv.URL + "/v1",
		MaxRetries: 5, RetryBackoff: time.Hour,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = svc.Chat(ctx, []Message{UserMessage("hi")})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestConvertMessages tests message conversion.
func TestConvertMessages(t *testing.T) {
	messages := []Message{
		{Role: "system", Content: "You are a date parser"},
		{Role: "user", Content: "Hello"},
		{Role: "assistant", Content: "Hi there"},
		{Role: "tool", Content: "ignored role"},
	}

	got := convertMessages(messages)
	require.Len(t, got, 4)
	assert.Equal(t, "system", got[0].Role)
	assert.Equal(t, "user", got[1].Role)
	assert.Equal(t, "assistant", got[2].Role)
	assert.Equal(t, "user", got[3].Role)
}

// TestFormatMessages tests message formatting.
func TestFormatMessages(t *testing.T) {
	history := []Message{
		{Role: "user", Content: "Previous message"},
		{Role: "assistant", Content: "Previous response"},
	}

	messages := FormatMessages("System prompt", "Current message", history)

	require.Len(t, messages, 4)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "user", messages[3].Role)
	assert.Equal(t, "Current message", messages[3].Content)

	assert.Len(t, FormatMessages("", "only user", nil), 1)
}

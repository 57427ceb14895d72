package llm

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

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	return cfg
}

func withNarrateTimeout(cfg LLMConfig, ms int) LLMConfig {
	cfg.Tasks = map[TaskType]TaskConfig{TaskNarrate: {Temperature: 0.4, MaxTokens: 256, TimeoutMs: ms}}
	return cfg
}

func reply(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chatResponse{Model: "llama3.2", Message: chatMessage{Role: "assistant", Content: content}})
}

func TestOllamaClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "json", req.Format)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user prompt", req.Messages[1].Content)

		reply(w, `{"overview":"A sunny weekend"}`)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskNarrate,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
		JSON:         true,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"overview":"A sunny weekend"}`, resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)
}

func TestOllamaClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewOllamaClient(withNarrateTimeout(testConfig(srv.URL), 50), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskNarrate, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaClient_Generate_Unavailable(t *testing.T) {
	cfg := withNarrateTimeout(testConfig("http://127.0.0.1:1"), 1000)
	cfg.MaxRetries = 0

	_, err := NewOllamaClient(cfg, NoopObserver{}).Generate(context.Background(), GenerateRequest{Task: TaskNarrate, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrOllamaUnavailable)
}

func TestOllamaClient_Generate_RetriesThenSucceeds(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			http.Error(w, "model loading", http.StatusServiceUnavailable)
			return
		}
		reply(w, "ok")
	}))
	defer srv.Close()

	var captured LLMCallEvent
	client := NewOllamaClient(testConfig(srv.URL), &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskNarrate, UserPrompt: "test"})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), attempts.Load())
	assert.True(t, captured.Success)
	assert.Equal(t, 2, captured.Attempts)
}

func TestOllamaClient_Generate_ErrorBodyExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{Error: "model not found"})
	}))
	defer srv.Close()

	var captured LLMCallEvent
	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0
	client := NewOllamaClient(cfg, &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskNarrate, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Contains(t, err.Error(), "model not found")
	assert.False(t, captured.Success)
	assert.Equal(t, "UNKNOWN", captured.ErrorCode)
}

func TestOllamaClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[{"name":"mistral:7b"},{"name":"llama3.2:latest"}]}`))
	}))
	defer srv.Close()

	assert.True(t, NewOllamaClient(testConfig(srv.URL), nil).Available(context.Background()))

	cfg := testConfig(srv.URL)
	cfg.Model = "phi3"
	assert.False(t, NewOllamaClient(cfg, nil).Available(context.Background()), "model not pulled")

	assert.False(t, NewOllamaClient(testConfig("http://127.0.0.1:1"), nil).Available(context.Background()))
}

func TestOllamaClient_ObserverTimeoutErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := withNarrateTimeout(testConfig(srv.URL), 50)
	cfg.MaxRetries = 0

	var captured LLMCallEvent
	client := NewOllamaClient(cfg, &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskNarrate, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, captured.Success)
	assert.Equal(t, "TIMEOUT", captured.ErrorCode)
	assert.Equal(t, 1, captured.Attempts)
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }

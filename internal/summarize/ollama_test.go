package summarize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docbrief/pkg/logger"
)

func TestOllamaSummarize(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   got.Model,
			Message: ollamaMessage{Role: "assistant", Content: "  a short summary  "},
			Done:    true,
		})
	}))
	defer srv.Close()

	// Trailing slash on the endpoint must not produce a double-slash path.
	o := NewOllama(logger.NewTestLogger(), srv.URL+"/", "llama3")

	out, err := o.Summarize(context.Background(), "chunk text", 300)
	require.NoError(t, err)
	assert.Equal(t, "a short summary", out)

	assert.Equal(t, "llama3", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "under 300 words")
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "chunk text", got.Messages[1].Content)
}

func TestOllamaEmptyContentIsInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: "assistant", Content: "   "},
			Done:    true,
		})
	}))
	defer srv.Close()

	o := NewOllama(logger.NewTestLogger(), srv.URL, "llama3")

	_, err := o.Summarize(context.Background(), "chunk text", 100)
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestOllamaMalformedBodyIsInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	o := NewOllama(logger.NewTestLogger(), srv.URL, "llama3")

	_, err := o.Summarize(context.Background(), "chunk text", 100)
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestOllamaNon200Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model is loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	o := NewOllama(logger.NewTestLogger(), srv.URL, "llama3")

	_, err := o.Summarize(context.Background(), "chunk text", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code 503")
	assert.Contains(t, err.Error(), "model is loading")
}

func TestOllamaErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaChatResponse{Error: `model "nope" not found`})
	}))
	defer srv.Close()

	o := NewOllama(logger.NewTestLogger(), srv.URL, "nope")

	_, err := o.Summarize(context.Background(), "chunk text", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NotErrorIs(t, err, ErrInvalidResponse)
}

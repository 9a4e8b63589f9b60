package summarize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresModel(t *testing.T) {
	_, err := NewClient("http://localhost:1234/v1", "", 0.2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LM_STUDIO_MODEL")
}

func TestCompleteRoundTrip(t *testing.T) {
	var gotPath string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "  the summary  "}},
			},
		})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/v1", "local-model", 0.2)
	require.NoError(t, err)

	out, err := c.Complete(context.Background(), "sys", "user text")
	require.NoError(t, err)
	assert.Equal(t, "the summary", out)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "local-model", gotReq.Model)
	assert.Equal(t, 0.2, gotReq.Temperature)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "sys", gotReq.Messages[0].Content)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
}

func TestCompleteNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/v1", "m", 0)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "context length exceeded"},
		})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/v1", "m", 0)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context length exceeded")
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/v1", "m", 0)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

package imagegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictClient_Generate_Success(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"predictions":[{"bytesBase64Encoded":"aGVsbG8="}]}`))
	}))
	defer server.Close()

	client := NewPredictClient(Config{Endpoint: server.URL, APIKey: "secret-key", TimeoutMs: 5000})

	dataURL, err := client.Generate(context.Background(), "a knight at a castle gate")

	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", dataURL)

	instances, ok := captured["instances"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a knight at a castle gate", instances["prompt"])
	params, ok := captured["parameters"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, params["sampleCount"])
}

func TestPredictClient_Generate_NoPredictionsIsNoImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"predictions":[]}`))
	}))
	defer server.Close()

	client := NewPredictClient(Config{Endpoint: server.URL, TimeoutMs: 5000})

	dataURL, err := client.Generate(context.Background(), "a prompt")

	require.NoError(t, err)
	assert.Empty(t, dataURL)
}

func TestPredictClient_Generate_EmptyBytesIsNoImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"predictions":[{"bytesBase64Encoded":""}]}`))
	}))
	defer server.Close()

	client := NewPredictClient(Config{Endpoint: server.URL, TimeoutMs: 5000})

	dataURL, err := client.Generate(context.Background(), "a prompt")

	require.NoError(t, err)
	assert.Empty(t, dataURL)
}

func TestPredictClient_Generate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewPredictClient(Config{Endpoint: server.URL, TimeoutMs: 5000})

	_, err := client.Generate(context.Background(), "a prompt")

	assert.ErrorContains(t, err, "status 429")
}

func TestPredictClient_Generate_Unavailable(t *testing.T) {
	client := NewPredictClient(Config{Endpoint: "http://127.0.0.1:1", TimeoutMs: 2000})

	_, err := client.Generate(context.Background(), "a prompt")

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPredictClient_Generate_OmitsKeyWhenUnset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("key"))
		_, _ = w.Write([]byte(`{"predictions":[{"bytesBase64Encoded":"eA=="}]}`))
	}))
	defer server.Close()

	client := NewPredictClient(Config{Endpoint: server.URL, TimeoutMs: 5000})

	_, err := client.Generate(context.Background(), "a prompt")
	require.NoError(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MANIFEST_IMAGE_ENDPOINT", "http://localhost:9999/predict")
	t.Setenv("MANIFEST_IMAGE_API_KEY", "abc123")
	t.Setenv("MANIFEST_IMAGE_TIMEOUT_MS", "1500")

	cfg := LoadConfig()

	assert.Equal(t, "http://localhost:9999/predict", cfg.Endpoint)
	assert.Equal(t, "abc123", cfg.APIKey)
	assert.Equal(t, 1500, cfg.TimeoutMs)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Contains(t, cfg.Endpoint, "imagen-3.0-generate-002:predict")
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, 60000, cfg.TimeoutMs)
}

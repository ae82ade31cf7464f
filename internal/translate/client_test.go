package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menulens/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&config.TranslateConfig{Endpoint: srv.URL, TimeoutSecs: 5})
}

func TestDetect_PicksHighestConfidence(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/detect", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Pasta al pomodoro", body["q"])

		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"language": "es", "confidence": 41.0},
			{"language": "it", "confidence": 87.5},
			{"language": "pt", "confidence": 22.0},
		})
	})

	lang, err := client.Detect(context.Background(), "Pasta al pomodoro")
	require.NoError(t, err)
	assert.Equal(t, "it", lang)
}

func TestDetect_EmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{})
	})

	_, err := client.Detect(context.Background(), "text")
	assert.Error(t, err)
}

func TestDetect_BackendError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	_, err := client.Detect(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestTranslate_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Grilled salmon", body["q"])
		assert.Equal(t, "auto", body["source"])
		assert.Equal(t, "fr", body["target"])
		assert.Equal(t, "text", body["format"])

		json.NewEncoder(w).Encode(map[string]string{"translatedText": "Saumon grillé"})
	})

	got, err := client.Translate(context.Background(), "Grilled salmon", "fr")
	require.NoError(t, err)
	assert.Equal(t, "Saumon grillé", got)
}

func TestTranslate_EmptyResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"translatedText": ""})
	})

	_, err := client.Translate(context.Background(), "text", "fr")
	assert.Error(t, err)
}

func TestTranslate_BackendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(&config.TranslateConfig{Endpoint: srv.URL, TimeoutSecs: 1})

	_, err := client.Translate(context.Background(), "text", "fr")
	assert.Error(t, err)
}

func TestClient_SendsAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "secret", body["api_key"])
		json.NewEncoder(w).Encode(map[string]string{"translatedText": "ok"})
	}))
	t.Cleanup(srv.Close)

	client := NewClient(&config.TranslateConfig{Endpoint: srv.URL, APIKey: "secret", TimeoutSecs: 5})
	_, err := client.Translate(context.Background(), "text", "de")
	require.NoError(t, err)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := NewClient(&config.TranslateConfig{Endpoint: "http://localhost:5000/", TimeoutSecs: 5})
	assert.Equal(t, "http://localhost:5000", client.endpoint)
}

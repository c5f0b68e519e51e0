package extract_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzivkovic/ragrank/internal/extract"
)

func TestAPIClient_Extract(t *testing.T) {
	conf := 0.92
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/extract_entities", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Paris is the capital city of France", req["text"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"model": "en_core_web_trf",
			"entities": []map[string]any{
				{"text": "Paris", "label": "GPE", "confidence": conf},
				{"text": "France", "label": "GPE", "confidence": conf},
			},
		})
	}))
	defer server.Close()

	client, err := extract.NewAPIClient(server.URL, "en_core_web_trf")
	require.NoError(t, err)

	entities, err := client.Extract(context.Background(), "Paris is the capital city of France")
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, "Paris", entities[0].Text)
	assert.Equal(t, "en_core_web_trf", entities[0].Model)
	require.NotNil(t, entities[0].Confidence)
	assert.InDelta(t, conf, *entities[0].Confidence, 1e-9)
}

func TestAPIClient_Extract_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := extract.NewAPIClient(server.URL, "en_core_web_trf")
	require.NoError(t, err)

	_, err = client.Extract(context.Background(), "some text")
	assert.Error(t, err)
}

func TestAPIClient_Extract_EmptyText(t *testing.T) {
	client, err := extract.NewAPIClient("http://localhost:8000", "en_core_web_trf")
	require.NoError(t, err)

	_, err = client.Extract(context.Background(), "")
	assert.Error(t, err)
}

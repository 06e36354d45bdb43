package topics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAiTrendingClientParsesChatResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"gen-1","choices":[{"index":0,"message":{"role":"assistant","content":"1. AI Agents\n2. Green Tech\n3. Creator Economy"}}]}`))
	}))
	defer srv.Close()

	client := NewAiTrendingClient(srv.URL, "test-key")
	suggestions, err := client.FetchTrending(context.Background(), "technology", 3)
	require.NoError(t, err)
	require.Len(t, suggestions, 3)
	assert.Equal(t, "AI Agents", suggestions[0].Name)
	assert.True(t, suggestions[0].AiCurated)
}

func TestAiTrendingClientErrors(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream down", http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewAiTrendingClient(srv.URL, "test-key")
		_, err := client.FetchTrending(context.Background(), "general", 3)
		assert.Error(t, err)
	})

	t.Run("no choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"gen-2","choices":[]}`))
		}))
		defer srv.Close()

		client := NewAiTrendingClient(srv.URL, "test-key")
		_, err := client.FetchTrending(context.Background(), "general", 3)
		assert.Error(t, err)
	})

	t.Run("unreachable server", func(t *testing.T) {
		client := NewAiTrendingClient("http://127.0.0.1:1", "test-key")
		_, err := client.FetchTrending(context.Background(), "general", 3)
		assert.Error(t, err)
	})
}

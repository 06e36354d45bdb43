package generation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRouterBackendSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":"gen-1","choices":[{"index":0,"message":{"role":"assistant","content":"A post about Go."}}]}`))
	}))
	defer srv.Close()

	b := NewOpenRouterBackend(srv.URL, "key")
	content, err := b.GenerateContent(context.Background(), "twitter", "go", "professional", true)
	require.NoError(t, err)
	assert.Equal(t, "A post about Go.", content)
}

func TestOpenRouterBackendErrorTaxonomy(t *testing.T) {
	t.Run("missing api key is a rejection", func(t *testing.T) {
		b := NewOpenRouterBackend("http://127.0.0.1:1", "")
		_, err := b.GenerateContent(context.Background(), "twitter", "go", "professional", false)
		assert.ErrorIs(t, err, ErrBackendRejected)
	})

	t.Run("4xx is a rejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "content policy", http.StatusBadRequest)
		}))
		defer srv.Close()

		b := NewOpenRouterBackend(srv.URL, "key")
		_, err := b.GenerateContent(context.Background(), "twitter", "go", "professional", false)
		assert.ErrorIs(t, err, ErrBackendRejected)
	})

	t.Run("5xx is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusBadGateway)
		}))
		defer srv.Close()

		b := NewOpenRouterBackend(srv.URL, "key")
		_, err := b.GenerateContent(context.Background(), "twitter", "go", "professional", false)
		assert.ErrorIs(t, err, ErrBackendUnavailable)
	})

	t.Run("unreachable host is unavailable", func(t *testing.T) {
		b := NewOpenRouterBackend("http://127.0.0.1:1", "key")
		_, err := b.GenerateContent(context.Background(), "twitter", "go", "professional", false)
		assert.ErrorIs(t, err, ErrBackendUnavailable)
	})

	t.Run("empty choices is a rejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"gen-2","choices":[]}`))
		}))
		defer srv.Close()

		b := NewOpenRouterBackend(srv.URL, "key")
		_, err := b.GenerateContent(context.Background(), "twitter", "go", "professional", false)
		assert.ErrorIs(t, err, ErrBackendRejected)
	})
}

package relay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_RoutesThroughRelay(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(r.Context())
		_, _ = w.Write([]byte("<html>relayed</html>"))
	}))
	defer srv.Close()

	c := NewClient("secret-key", WithBaseURL(srv.URL), WithCountry("de"))
	body, err := c.Fetch(context.Background(), "https://www.g2.com/products/acme/reviews",
		WithWait(2*time.Second))

	require.NoError(t, err)
	assert.Equal(t, "<html>relayed</html>", body)

	q := got.URL.Query()
	assert.Equal(t, "secret-key", q.Get("api_key"))
	assert.Equal(t, "https://www.g2.com/products/acme/reviews", q.Get("url"))
	assert.Equal(t, "de", q.Get("country"))
	assert.Equal(t, "2000", q.Get("wait"))
}

func TestFetch_DefaultCountry(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(r.Context())
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	_, err := c.Fetch(context.Background(), "https://example.com")

	require.NoError(t, err)
	assert.Equal(t, "us", got.URL.Query().Get("country"))
	assert.Empty(t, got.URL.Query().Get("wait"))
}

func TestFetch_DegradedDirectMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No relay parameters should appear on a direct fetch.
		assert.Empty(t, r.URL.Query().Get("api_key"))
		assert.Equal(t, "/products/acme", r.URL.Path)
		_, _ = w.Write([]byte("direct"))
	}))
	defer srv.Close()

	c := NewClient("")
	body, err := c.Fetch(context.Background(), srv.URL+"/products/acme")

	require.NoError(t, err)
	assert.Equal(t, "direct", body)
}

func TestFetch_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	_, err := c.Fetch(context.Background(), "https://example.com")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

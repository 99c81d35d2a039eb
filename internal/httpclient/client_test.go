package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aleister1102/livereload/internal/common/errorwrapper"
	"github.com/aleister1102/livereload/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHead_ReturnsHeadersWithoutBody(t *testing.T) {
	var gotMethod, gotCacheControl, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCacheControl = r.Header.Get("Cache-Control")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("ETag", `"abc"`)
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).WithUserAgent("test-agent").Build()
	require.NoError(t, err)

	resp, err := client.Head(context.Background(), server.URL, map[string]string{
		"Cache-Control": "no-cache, no-store, max-age=0",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodHead, gotMethod)
	assert.Equal(t, "no-cache, no-store, max-age=0", gotCacheControl)
	assert.Equal(t, "test-agent", gotUA)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `"abc"`, resp.Headers.Get("Etag"))
	assert.Empty(t, resp.Body)
}

func TestGet_ReadsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(resp.Body))
}

func TestDo_NetworkErrorIsWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)

	_, err = client.Head(context.Background(), url, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errorwrapper.ErrNetworkFailure))

	var netErr *errorwrapper.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, url, netErr.URL)
}

func TestDo_CustomHeadersApplied(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Test")
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).
		WithAppConfig(config.HTTPClientConfig{CustomHeaders: map[string]string{"X-Test": "yes"}}).
		Build()
	require.NoError(t, err)

	_, err = client.Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "yes", got)
}

func TestWithAppConfig(t *testing.T) {
	b := NewHTTPClientBuilder(zerolog.Nop()).WithAppConfig(config.HTTPClientConfig{
		TimeoutSecs: 5,
		Retries:     2,
		UserAgent:   "custom",
		EnableHTTP2: false,
	})

	assert.Equal(t, 5*time.Second, b.config.Timeout)
	assert.Equal(t, 2, b.config.MaxRetries)
	assert.Equal(t, "custom", b.config.UserAgent)
	assert.False(t, b.config.EnableHTTP2)

	client, err := b.Build()
	require.NoError(t, err)
	assert.NotNil(t, client.retryHandler)
}

func TestFollowRedirectsDisabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/next", http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).WithFollowRedirects(false).Build()
	require.NoError(t, err)

	resp, err := client.Head(context.Background(), server.URL+"/", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

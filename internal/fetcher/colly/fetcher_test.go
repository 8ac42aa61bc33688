package collyfetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFetchReturnsBodyAndStatus(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		seen http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = r.Header.Clone()
		mu.Unlock()
		_, _ = w.Write([]byte("<html><title>hi</title></html>"))
	}))
	defer srv.Close()

	headers := http.Header{}
	headers.Set("Accept-Language", "en-US,en;q=0.9")
	f := New(Config{UserAgent: "blogmap-test", Timeout: 5 * time.Second, Headers: headers})

	resp, err := f.Fetch(context.Background(), srv.URL+"/post")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, []byte("<html><title>hi</title></html>"), resp.Body)
	require.Greater(t, resp.Duration, time.Duration(0))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, "blogmap-test", seen.Get("User-Agent"))
	require.Equal(t, "en-US,en;q=0.9", seen.Get("Accept-Language"))
}

func TestFetchNon2xxIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(Config{Timeout: 5 * time.Second})
	_, err := f.Fetch(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}

func TestFetchConnectionRefused(t *testing.T) {
	t.Parallel()

	// Reserve a port, then close the listener so nothing is serving it.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	f := New(Config{Timeout: 2 * time.Second})
	_, err := f.Fetch(context.Background(), url+"/post")
	require.Error(t, err)
}

func TestFetchSupportsRevisit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := New(Config{Timeout: 5 * time.Second})
	for i := 0; i < 3; i++ {
		resp, err := f.Fetch(context.Background(), srv.URL+"/same")
		require.NoError(t, err)
		require.Equal(t, []byte("ok"), resp.Body)
	}
}

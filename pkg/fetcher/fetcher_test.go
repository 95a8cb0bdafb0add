package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHtmlBytes(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/wiki/Red_Velvet":
			_, _ = w.Write([]byte("<html><body>ok</body></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher("wikifreq-test", 5*time.Second)

	body, err := f.GetHtmlBytes(context.Background(), srv.URL+"/wiki/Red_Velvet")
	require.NoError(t, err)
	assert.Equal(t, "<html><body>ok</body></html>", string(body))
	assert.Equal(t, "wikifreq-test", gotAgent)

	_, err = f.GetHtmlBytes(context.Background(), srv.URL+"/wiki/Missing")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusNotFound, fe.Status)
	assert.Contains(t, fe.Error(), "404")
}

func TestGetHtmlBytes_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	f := NewFetcher("", time.Second)
	_, err := f.GetHtmlBytes(context.Background(), url+"/wiki/X")

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Zero(t, fe.Status)
	assert.Error(t, fe.Unwrap())
}

func TestGetHtmlBytes_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher("", time.Second).GetHtmlBytes(ctx, srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

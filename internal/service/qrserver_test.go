package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRClient_ImageURL(t *testing.T) {
	q := NewQRClient("")
	assert.Equal(t,
		"https://api.qrserver.com/v1/create-qr-code/?data=hello&size=200x200",
		q.ImageURL("hello", 200, "png"))
	assert.Equal(t,
		"https://api.qrserver.com/v1/create-qr-code/?data=hello&format=svg&size=500x500",
		q.ImageURL("hello", 500, "svg"))
}

func TestQRClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "200x200", r.URL.Query().Get("size"))
		assert.Equal(t, "https://app.example/resume/jane", r.URL.Query().Get("data"))
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("fake-png-bytes"))
	}))
	defer srv.Close()

	q := NewQRClient(srv.URL)
	img, contentType, err := q.Fetch(context.Background(), "https://app.example/resume/jane", 200, "png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, []byte("fake-png-bytes"), img)
}

func TestQRClient_FetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	q := NewQRClient(srv.URL)
	_, _, err := q.Fetch(context.Background(), "x", 200, "png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestQRClient_FetchAll(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n == 2 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("img"))
	}))
	defer srv.Close()

	q := NewQRClient(srv.URL)
	images, err := q.FetchAll(context.Background(), []string{"a", "b", "c"}, 200, "png", 0)
	require.NoError(t, err)
	require.Len(t, images, 3)

	assert.NoError(t, images[0].Err)
	assert.Equal(t, "a", images[0].Data)
	assert.Error(t, images[1].Err)
	assert.NoError(t, images[2].Err)
	assert.Equal(t, []byte("img"), images[2].Bytes)
}

func TestQRClient_FetchAllRespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("img"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := NewQRClient(srv.URL)
	images, err := q.FetchAll(ctx, []string{"a", "b"}, 200, "png", time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	// The first entry is attempted before the delay gate; the second never starts.
	assert.Len(t, images, 1)
}

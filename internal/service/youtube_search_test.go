package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newYouTubeTestSearcher(t *testing.T, h http.HandlerFunc, opts YouTubeOptions) *YouTubeSearcher {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	opts.ClientOptions = append(opts.ClientOptions,
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	s, err := NewYouTubeSearcher(context.Background(), opts)
	require.NoError(t, err)
	return s
}

func TestYouTubeSearcherFindsVideo(t *testing.T) {
	s := newYouTubeTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/youtube/v3/search"), r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Tenet edits", q.Get("q"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "1", q.Get("maxResults"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": [{"id": {"kind": "youtube#video", "videoId": "abc123"}}]}`))
	}, YouTubeOptions{})

	id, err := s.SearchVideo(context.Background(), "Tenet edits")

	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
	assert.Equal(t, "closed", s.BreakerState())
}

func TestYouTubeSearcherEmptyResult(t *testing.T) {
	s := newYouTubeTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": []}`))
	}, YouTubeOptions{FailureThreshold: 1})

	for range 3 {
		_, err := s.SearchVideo(context.Background(), "nothing edits")
		assert.ErrorIs(t, err, ErrNoVideo)
	}
	assert.Equal(t, "closed", s.BreakerState(), "empty results do not trip the breaker")
}

func TestYouTubeSearcherBreakerOpens(t *testing.T) {
	var hits atomic.Int32
	s := newYouTubeTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "quotaExceeded"}}`))
	}, YouTubeOptions{FailureThreshold: 2, OpenTimeout: time.Minute})

	for range 2 {
		_, err := s.SearchVideo(context.Background(), "Tenet edits")
		require.Error(t, err)
	}
	_, err := s.SearchVideo(context.Background(), "Tenet edits")

	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.EqualValues(t, 2, hits.Load())
	assert.Equal(t, "open", s.BreakerState())
}

func TestYouTubeSearcherRateLimitHonoursContext(t *testing.T) {
	s := newYouTubeTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": [{"id": {"videoId": "v"}}]}`))
	}, YouTubeOptions{RPS: 0.001})

	_, err := s.SearchVideo(context.Background(), "first edits")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = s.SearchVideo(ctx, "second edits")
	assert.Error(t, err)
}

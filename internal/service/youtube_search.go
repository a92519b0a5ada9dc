package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// VideoSearcher resolves a free-text query to a single video identifier.
type VideoSearcher interface {
	SearchVideo(ctx context.Context, query string) (string, error)
}

// ErrNoVideo is returned when a search succeeds but yields nothing usable.
var ErrNoVideo = errors.New("no video found")

// YouTubeOptions configures NewYouTubeSearcher.
type YouTubeOptions struct {
	APIKey string
	RPS    float64 // client-side request rate; <= 0 disables the limiter

	// Breaker tuning; zero values pick sensible defaults.
	FailureThreshold uint32
	OpenTimeout      time.Duration

	// Extra client options, e.g. option.WithEndpoint in tests.
	ClientOptions []option.ClientOption
}

// YouTubeSearcher looks up videos through the YouTube Data API v3. Calls go
// through a rate limiter and a circuit breaker so an exhausted quota or an
// outage stops costing a round trip per title.
type YouTubeSearcher struct {
	svc     *youtube.Service
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[string]
}

// NewYouTubeSearcher creates the API client.
func NewYouTubeSearcher(ctx context.Context, opts YouTubeOptions) (*YouTubeSearcher, error) {
	clientOpts := append([]option.ClientOption{}, opts.ClientOptions...)
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	svc, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube client: %w", err)
	}

	threshold := opts.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	openTimeout := opts.OpenTimeout
	if openTimeout == 0 {
		openTimeout = 30 * time.Second
	}

	s := &YouTubeSearcher{svc: svc}
	if opts.RPS > 0 {
		burst := int(opts.RPS)
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}
	s.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "youtube-search",
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// An empty result is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNoVideo)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
	return s, nil
}

// SearchVideo returns the id of the first video matching query.
func (s *YouTubeSearcher) SearchVideo(ctx context.Context, query string) (string, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	}

	return s.breaker.Execute(func() (string, error) {
		resp, err := s.svc.Search.List([]string{"id", "snippet"}).
			Q(query).
			Type("video").
			MaxResults(1).
			Context(ctx).
			Do()
		if err != nil {
			return "", fmt.Errorf("youtube search: %w", err)
		}
		if len(resp.Items) == 0 || resp.Items[0].Id == nil || resp.Items[0].Id.VideoId == "" {
			return "", ErrNoVideo
		}
		return resp.Items[0].Id.VideoId, nil
	})
}

// BreakerState reports "closed", "half-open" or "open".
func (s *YouTubeSearcher) BreakerState() string {
	return s.breaker.State().String()
}

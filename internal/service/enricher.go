package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ahmednasr/movie-motivator/server/internal/logging"
	"github.com/ahmednasr/movie-motivator/server/internal/models"
)

// Enricher attaches a video id to each recommended title.
type Enricher interface {
	Enrich(ctx context.Context, titles []string) []models.Recommendation
	Enabled() bool
}

// EnricherOptions tunes NewVideoEnricher.
type EnricherOptions struct {
	QuerySuffix string        // appended to every title, "edits" by default
	Timeout     time.Duration // per lookup; 0 means no extra deadline
	Concurrency int           // max lookups in flight; <= 0 means one per title
}

type videoEnricher struct {
	search VideoSearcher
	opts   EnricherOptions
}

// NewVideoEnricher fans out one lookup per title to search.
func NewVideoEnricher(search VideoSearcher, opts EnricherOptions) Enricher {
	if opts.QuerySuffix == "" {
		opts.QuerySuffix = "edits"
	}
	return &videoEnricher{search: search, opts: opts}
}

func (e *videoEnricher) Enabled() bool { return true }

// Enrich runs every lookup concurrently and waits for all of them. Output
// slot i always belongs to titles[i]; a failed lookup leaves VideoID nil and
// never touches its siblings.
func (e *videoEnricher) Enrich(ctx context.Context, titles []string) []models.Recommendation {
	out := newRecommendations(titles)
	if len(titles) == 0 {
		return out
	}

	var g errgroup.Group
	if e.opts.Concurrency > 0 {
		g.SetLimit(e.opts.Concurrency)
	}

	for i, title := range titles {
		g.Go(func() error {
			if id, ok := e.lookup(ctx, title); ok {
				out[i].VideoID = &id
			}
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (e *videoEnricher) lookup(ctx context.Context, title string) (string, bool) {
	if strings.TrimSpace(title) == "" {
		return "", false
	}

	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	query := title + " " + e.opts.QuerySuffix
	id, err := e.search.SearchVideo(ctx, query)
	if err != nil {
		l := logging.FromContext(ctx)
		if errors.Is(err, ErrNoVideo) {
			l.Debug().Str("query", query).Msg("no video for title")
		} else {
			l.Warn().Err(err).Str("query", query).Msg("video lookup failed")
		}
		return "", false
	}
	if id == "" {
		return "", false
	}
	return id, true
}

type disabledEnricher struct{}

// NewDisabledEnricher maps every title to a recommendation without a video
// and makes no calls.
func NewDisabledEnricher() Enricher { return disabledEnricher{} }

func (disabledEnricher) Enabled() bool { return false }

func (disabledEnricher) Enrich(_ context.Context, titles []string) []models.Recommendation {
	return newRecommendations(titles)
}

func newRecommendations(titles []string) []models.Recommendation {
	out := make([]models.Recommendation, len(titles))
	for i, t := range titles {
		out[i] = models.Recommendation{Title: t, Unrecognized: IsSentinel(t)}
	}
	return out
}

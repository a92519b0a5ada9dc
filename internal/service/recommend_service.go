package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ahmednasr/movie-motivator/server/internal/logging"
	"github.com/ahmednasr/movie-motivator/server/internal/models"
)

// ErrSeedInvalid is returned for an empty or whitespace-only seed. No
// provider is contacted.
var ErrSeedInvalid = errors.New("seed title is required")

// ---- Repository contract ---------------------------------------------------

// HistoryRepository persists produced recommendation sets.
type HistoryRepository interface {
	Insert(ctx context.Context, set models.RecommendationSet) error
	Recent(ctx context.Context, limit int) ([]models.RecommendationSet, error)
}

// ---- Service interface + implementation ------------------------------------

// RecommendationService turns a seed title into a set of similar titles.
type RecommendationService interface {
	// Recommend fails only with ErrSeedInvalid or a *CompletionError.
	Recommend(ctx context.Context, seed string) (models.RecommendationSet, error)
	// History returns up to limit previously produced sets, newest first.
	History(ctx context.Context, limit int) ([]models.RecommendationSet, error)
}

// RecommendOptions carries the knobs that vary per deployment.
type RecommendOptions struct {
	Provider       string // name used in errors and logs
	PromptTemplate string
	Extract        ExtractOptions
	Timeout        time.Duration // completion call deadline; 0 means none
}

type recommendationService struct {
	llm      CompletionClient
	enricher Enricher
	history  HistoryRepository // nil disables history
	opts     RecommendOptions
	now      func() time.Time
}

// NewRecommendationService wires dependencies. history may be nil.
func NewRecommendationService(llm CompletionClient, enricher Enricher, history HistoryRepository, opts RecommendOptions) RecommendationService {
	if enricher == nil {
		enricher = NewDisabledEnricher()
	}
	return &recommendationService{
		llm:      llm,
		enricher: enricher,
		history:  history,
		opts:     opts,
		now:      time.Now,
	}
}

// Recommend asks the completion provider for titles like seed, splits the
// answer and, when enrichment is on, looks up a video for each title.
func (s *recommendationService) Recommend(ctx context.Context, seed string) (models.RecommendationSet, error) {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return models.RecommendationSet{}, ErrSeedInvalid
	}
	l := logging.FromContext(ctx)

	// 1. Ask the provider.
	raw, err := s.complete(ctx, BuildPrompt(s.opts.PromptTemplate, seed))
	if err != nil {
		l.Error().Err(err).Str("seed", seed).Msg("completion failed")
		return models.RecommendationSet{}, &CompletionError{Provider: s.opts.Provider, Err: err}
	}

	// 2. Split into titles.
	titles := ExtractTitles(raw, s.opts.Extract)
	l.Info().Str("seed", seed).Strs("titles", titles).Msg("completion parsed")

	// 3. Enrich (or not).
	set := models.RecommendationSet{
		Seed:            seed,
		Recommendations: s.enricher.Enrich(ctx, titles),
		Enriched:        s.enricher.Enabled(),
		GeneratedAt:     s.now().UTC(),
	}

	// 4. Record. History is a convenience; losing an entry is not an error.
	if s.history != nil {
		if err := s.history.Insert(ctx, set); err != nil {
			l.Warn().Err(err).Str("seed", seed).Msg("failed to record recommendation history")
		}
	}

	return set, nil
}

func (s *recommendationService) complete(ctx context.Context, prompt string) (string, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}
	return s.llm.Complete(ctx, prompt)
}

// History returns the most recent sets, or an empty list when no
// repository is configured.
func (s *recommendationService) History(ctx context.Context, limit int) ([]models.RecommendationSet, error) {
	if s.history == nil {
		return []models.RecommendationSet{}, nil
	}
	sets, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if sets == nil {
		sets = []models.RecommendationSet{}
	}
	return sets, nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ahmednasr/movie-motivator/server/internal/models"
)

type fakeLLM struct {
	answer  string
	err     error
	calls   atomic.Int32
	prompts []string
	mu      sync.Mutex
}

func (f *fakeLLM) Complete(_ context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.answer, f.err
}

// fakeSearcher answers by title (the query minus its suffix).
type fakeSearcher struct {
	ids    map[string]string
	errs   map[string]error
	delays map[string]time.Duration
	calls  atomic.Int32

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeSearcher) SearchVideo(ctx context.Context, query string) (string, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxInFlight.Load()
		if n <= m || f.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}

	title := strings.TrimSuffix(query, " edits")
	if d := f.delays[title]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err := f.errs[title]; err != nil {
		return "", err
	}
	id, ok := f.ids[title]
	if !ok {
		return "", ErrNoVideo
	}
	return id, nil
}

type fakeHistory struct {
	mu   sync.Mutex
	sets []models.RecommendationSet
	err  error
}

func (f *fakeHistory) Insert(_ context.Context, set models.RecommendationSet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sets = append(f.sets, set)
	return nil
}

func (f *fakeHistory) Recent(_ context.Context, limit int) ([]models.RecommendationSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.RecommendationSet
	for i := len(f.sets) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.sets[i])
	}
	return out, nil
}

var errBoom = errors.New("boom")

func videoIDs(recs []models.Recommendation) []any {
	out := make([]any, len(recs))
	for i, r := range recs {
		if r.VideoID == nil {
			out[i] = nil
		} else {
			out[i] = *r.VideoID
		}
	}
	return out
}

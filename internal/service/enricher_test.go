package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoEnricherPreservesOrder(t *testing.T) {
	search := &fakeSearcher{
		ids: map[string]string{"Tenet": "t1", "Memento": "m1", "Heat": "h1"},
		// The first title finishes last.
		delays: map[string]time.Duration{"Tenet": 30 * time.Millisecond, "Memento": 10 * time.Millisecond},
	}
	e := NewVideoEnricher(search, EnricherOptions{})

	got := e.Enrich(context.Background(), []string{"Tenet", "Memento", "Heat"})

	require.Len(t, got, 3)
	assert.Equal(t, "Tenet", got[0].Title)
	assert.Equal(t, "Memento", got[1].Title)
	assert.Equal(t, "Heat", got[2].Title)
	assert.Equal(t, []any{"t1", "m1", "h1"}, videoIDs(got))
	assert.EqualValues(t, 3, search.calls.Load())
}

func TestVideoEnricherIsolatesFailures(t *testing.T) {
	search := &fakeSearcher{
		ids:  map[string]string{"Tenet": "t1", "Heat": "h1"},
		errs: map[string]error{"Memento": errBoom},
		// "Arrival" has no id: empty result.
	}
	e := NewVideoEnricher(search, EnricherOptions{})

	got := e.Enrich(context.Background(), []string{"Tenet", "Memento", "Arrival", "Heat"})

	require.Len(t, got, 4)
	assert.Equal(t, []any{"t1", nil, nil, "h1"}, videoIDs(got))
	assert.Equal(t, "Memento", got[1].Title)
	assert.Equal(t, "Arrival", got[2].Title)
}

func TestVideoEnricherTimeoutIsLocal(t *testing.T) {
	search := &fakeSearcher{
		ids:    map[string]string{"Slow": "s1", "Fast": "f1"},
		delays: map[string]time.Duration{"Slow": time.Second},
	}
	e := NewVideoEnricher(search, EnricherOptions{Timeout: 20 * time.Millisecond})

	start := time.Now()
	got := e.Enrich(context.Background(), []string{"Slow", "Fast"})

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, []any{nil, "f1"}, videoIDs(got))
}

func TestVideoEnricherEmptyInput(t *testing.T) {
	search := &fakeSearcher{}
	e := NewVideoEnricher(search, EnricherOptions{})

	got := e.Enrich(context.Background(), nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, search.calls.Load())
}

func TestVideoEnricherSkipsBlankTitles(t *testing.T) {
	search := &fakeSearcher{ids: map[string]string{"Heat": "h1"}}
	e := NewVideoEnricher(search, EnricherOptions{})

	got := e.Enrich(context.Background(), []string{"Heat", ""})

	assert.Equal(t, []any{"h1", nil}, videoIDs(got))
	assert.EqualValues(t, 1, search.calls.Load())
}

func TestVideoEnricherConcurrencyLimit(t *testing.T) {
	titles := []string{"A", "B", "C", "D", "E", "F"}
	delays := map[string]time.Duration{}
	for _, title := range titles {
		delays[title] = 10 * time.Millisecond
	}
	search := &fakeSearcher{delays: delays}
	e := NewVideoEnricher(search, EnricherOptions{Concurrency: 2})

	got := e.Enrich(context.Background(), titles)

	assert.Len(t, got, len(titles))
	assert.LessOrEqual(t, search.maxInFlight.Load(), int32(2))
	assert.EqualValues(t, len(titles), search.calls.Load())
}

func TestVideoEnricherQuerySuffix(t *testing.T) {
	search := &fakeSearcher{ids: map[string]string{"Heat trailer": "x"}}
	e := NewVideoEnricher(search, EnricherOptions{QuerySuffix: "trailer"})

	// fakeSearcher only strips " edits", so the full query is the lookup key.
	got := e.Enrich(context.Background(), []string{"Heat"})

	assert.Equal(t, []any{"x"}, videoIDs(got))
}

func TestDisabledEnricher(t *testing.T) {
	e := NewDisabledEnricher()

	got := e.Enrich(context.Background(), []string{"Tenet", "unrecognized title"})

	assert.False(t, e.Enabled())
	require.Len(t, got, 2)
	assert.Equal(t, []any{nil, nil}, videoIDs(got))
	assert.False(t, got[0].Unrecognized)
	assert.True(t, got[1].Unrecognized)
}

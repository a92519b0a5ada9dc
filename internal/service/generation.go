package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// GenerationTracker numbers the searches issued by each browser session so a
// slow response to an older search can be recognised and thrown away instead
// of replacing the results of a newer one.
type GenerationTracker struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*generation
	now      func() time.Time
}

type generation struct {
	latest   uint64
	lastSeen time.Time
}

// NewGenerationTracker creates a tracker whose idle sessions expire after ttl.
func NewGenerationTracker(ttl time.Duration) *GenerationTracker {
	return &GenerationTracker{
		ttl:      ttl,
		sessions: make(map[string]*generation),
		now:      time.Now,
	}
}

// Begin issues the next generation for sessionID. An empty session id is
// untracked and always gets 0.
func (t *GenerationTracker) Begin(sessionID string) uint64 {
	if sessionID == "" {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.sessions[sessionID]
	if !ok {
		g = &generation{}
		t.sessions[sessionID] = g
	}
	g.latest++
	g.lastSeen = t.now()
	return g.latest
}

// IsCurrent reports whether gen is still the newest generation issued for
// sessionID. Untracked or expired sessions are always current.
func (t *GenerationTracker) IsCurrent(sessionID string, gen uint64) bool {
	if sessionID == "" {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.sessions[sessionID]
	if !ok {
		return true
	}
	return g.latest == gen
}

// Sweep drops sessions idle for longer than the ttl and returns how many
// were removed.
func (t *GenerationTracker) Sweep(now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for id, g := range t.sessions {
		if now.Sub(g.lastSeen) > t.ttl {
			delete(t.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked sessions.
func (t *GenerationTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (t *GenerationTracker) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := t.Sweep(t.now()); n > 0 {
				log.Debug().Int("removed", n).Msg("expired search sessions")
			}
		}
	}
}

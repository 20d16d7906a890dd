package session

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	state    State
	lastSeen time.Time
}

// Store keeps session state in memory. Entries idle for longer than the TTL
// are treated as absent and removed by Sweep.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

// NewStore returns an empty store with the given idle TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the state for id and refreshes its idle timer.
func (s *Store) Get(id string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return State{}, false
	}
	now := s.now()
	if s.expired(e, now) {
		delete(s.sessions, id)
		return State{}, false
	}
	e.lastSeen = now
	s.sessions[id] = e
	return e.state, true
}

// Put stores state under state.ID, replacing any previous value.
func (s *Store) Put(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.ID] = entry{state: state, lastSeen: s.now()}
}

// Len returns the number of stored sessions, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done. onSweep, when not
// nil, receives the number of sessions removed by each pass.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.Sweep()
			if onSweep != nil {
				onSweep(removed)
			}
		}
	}
}

func (s *Store) expired(e entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl
}

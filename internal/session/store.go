// Package session keeps parsed trees in memory between requests.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrLimit    = errors.New("session limit reached")
)

// Store is a thread-safe in-memory session registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int
	logger   *slog.Logger

	now func() time.Time
}

// NewStore returns a store that evicts sessions idle for longer than ttl and
// holds at most max sessions. max <= 0 means no limit.
func NewStore(ttl time.Duration, max int, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		max:      max,
		logger:   logger,
		now:      time.Now,
	}
}

// Put registers s. It fails with ErrLimit when the store is full.
func (st *Store) Put(s *Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[s.ID]; !ok && st.max > 0 && len(st.sessions) >= st.max {
		return ErrLimit
	}
	st.sessions[s.ID] = s
	return nil
}

// Get returns the session with id and marks it as used.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch()
	return s, nil
}

func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(st.sessions, id)
	return nil
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Cleanup removes expired sessions and returns how many were evicted.
func (st *Store) Cleanup() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	n := 0
	for id, s := range st.sessions {
		if now.Sub(s.lastUsed()) > st.ttl {
			delete(st.sessions, id)
			n++
			st.logger.Debug("session expired", "session_id", id)
		}
	}
	if n > 0 {
		st.logger.Info("sessions evicted", "count", n, "remaining", len(st.sessions))
	}
	return n
}

// RunCleanup calls Cleanup every interval until ctx is done. onEvict, when
// non-nil, receives each eviction count.
func (st *Store) RunCleanup(ctx context.Context, interval time.Duration, onEvict func(n int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := st.Cleanup()
			if onEvict != nil {
				onEvict(n)
			}
		}
	}
}

package main

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/himeshnishant1/juspay-dashboard/libs/orders"
)

var errSessionNotFound = errors.New("dashboard session not found")

// dashboardSession is the server-side half of a browser session: the order table state and the
// theme preference. Callers get copies; writes go through sessionStore.update.
type dashboardSession struct {
	ID       string
	Query    orders.QueryState
	Theme    string
	LastSeen time.Time
}

type sessionStore struct {
	mu          sync.Mutex
	sessions    map[string]*dashboardSession
	idleTimeout time.Duration
	maxSessions int
}

func newSessionStore(idleTimeout time.Duration, maxSessions int) *sessionStore {
	if idleTimeout <= 0 {
		idleTimeout = defaultSessionIdle
	}
	if maxSessions <= 0 {
		maxSessions = defaultSessionMaxCount
	}
	return &sessionStore{
		sessions:    make(map[string]*dashboardSession),
		idleTimeout: idleTimeout,
		maxSessions: maxSessions,
	}
}

func (s *sessionStore) create(theme string, now time.Time) dashboardSession {
	session := &dashboardSession{
		ID:       uuid.NewString(),
		Query:    orders.NewQueryState(),
		Theme:    normalizeTheme(theme),
		LastSeen: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sessions) >= s.maxSessions {
		s.pruneLocked(now)
	}
	for len(s.sessions) >= s.maxSessions {
		s.evictLeastRecentLocked()
	}
	s.sessions[session.ID] = session
	return *session
}

// evictLeastRecentLocked drops the session seen longest ago. Callers hold s.mu.
func (s *sessionStore) evictLeastRecentLocked() {
	var (
		oldestID   string
		oldestSeen time.Time
	)
	for id, session := range s.sessions {
		if oldestID == "" || session.LastSeen.Before(oldestSeen) {
			oldestID, oldestSeen = id, session.LastSeen
		}
	}
	delete(s.sessions, oldestID)
}

// get returns the session and marks it as seen. Sessions idle for longer than the timeout are
// treated as gone even if the cleanup loop has not removed them yet.
func (s *sessionStore) get(id string, now time.Time) (dashboardSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return dashboardSession{}, false
	}
	if now.Sub(session.LastSeen) >= s.idleTimeout {
		delete(s.sessions, id)
		return dashboardSession{}, false
	}
	session.LastSeen = now
	return *session, true
}

// update applies fn to the stored session under the store lock. When fn fails the stored
// session is left untouched.
func (s *sessionStore) update(id string, now time.Time, fn func(*dashboardSession) error) (dashboardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[id]
	if !ok {
		return dashboardSession{}, errSessionNotFound
	}

	draft := *stored
	if err := fn(&draft); err != nil {
		return *stored, err
	}
	draft.ID = stored.ID
	draft.LastSeen = now
	*stored = draft
	return draft, nil
}

func (s *sessionStore) prune(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pruneLocked(now)
}

func (s *sessionStore) pruneLocked(now time.Time) int {
	removed := 0
	for id, session := range s.sessions {
		if now.Sub(session.LastSeen) >= s.idleTimeout {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (a *App) startSessionCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if removed := a.sessions.prune(now); removed > 0 {
					a.log.Info("pruned idle dashboard sessions", "removed", removed, "remaining", a.sessions.len())
				}
			}
		}
	}()
}

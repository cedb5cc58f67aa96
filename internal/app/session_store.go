package app

import (
	"sync"
	"time"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/config"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/logger"

	"github.com/google/uuid"
)

type sessionEntry struct {
	results  workbench.ResultContext
	lastSeen time.Time
}

// memorySessionStore implements workbench.SessionStore in process memory
type memorySessionStore struct {
	mu          sync.Mutex
	sessions    map[string]*sessionEntry
	idleTimeout time.Duration
	now         func() time.Time
	logger      logger.Logger

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemorySessionStore creates a session store and starts its idle sweep
func NewMemorySessionStore(settings config.SessionSettings, logger logger.Logger) (workbench.SessionStore, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	store := newMemorySessionStore(settings.IdleTimeout, time.Now, logger)
	go store.sweepLoop(settings.SweepInterval)
	return store, nil
}

func newMemorySessionStore(idleTimeout time.Duration, now func() time.Time, logger logger.Logger) *memorySessionStore {
	return &memorySessionStore{
		sessions:    make(map[string]*sessionEntry),
		idleTimeout: idleTimeout,
		now:         now,
		logger:      logger,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

func (s *memorySessionStore) NewSession() string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &sessionEntry{lastSeen: s.now()}
	return id
}

func (s *memorySessionStore) Update(sessionID string, fn func(*workbench.ResultContext)) {
	if sessionID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		entry = &sessionEntry{}
		s.sessions[sessionID] = entry
	}
	fn(&entry.results)
	entry.lastSeen = s.now()
	entry.results.UpdatedAt = entry.lastSeen
}

func (s *memorySessionStore) Read(sessionID string, artifact workbench.Artifact) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return "", "", workbench.ErrNoArtifact
	}
	entry.lastSeen = s.now()

	content, err := entry.results.Read(artifact)
	if err != nil {
		return "", "", err
	}
	return content, artifact.FileName(), nil
}

func (s *memorySessionStore) Snapshot(sessionID string) (workbench.ResultContext, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return workbench.ResultContext{}, false
	}
	entry.lastSeen = s.now()
	return entry.results, true
}

func (s *memorySessionStore) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
	})
}

func (s *memorySessionStore) sweepLoop(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := s.sweep(); removed > 0 {
				s.logger.Info("Expired idle sessions: ", removed)
			}
		case <-s.stop:
			return
		}
	}
}

// sweep drops sessions idle for longer than idleTimeout and returns how many were removed
func (s *memorySessionStore) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTimeout)
	removed := 0
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

package session

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/hashfront/skirmish-server/game/engine"
)

// ErrSessionNotFound is returned when a session id is unknown.
var ErrSessionNotFound = errors.New("session not found")

// Session pairs a game with its bookkeeping. The embedded mutex gives the
// single-writer guarantee: callers hold it for the whole validate-mutate-emit
// span of one engine call. Sessions for different games never contend.
type Session struct {
	ID        string
	Game      *engine.Game
	CreatedAt time.Time

	mu sync.Mutex

	// lastAccessedAt has its own lock: it is touched on every Get, which
	// must not contend with an in-flight engine transition holding mu.
	accessMu       sync.Mutex
	lastAccessedAt time.Time
}

// Lock acquires the session for one engine transition.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch records an access.
func (s *Session) Touch() {
	s.accessMu.Lock()
	s.lastAccessedAt = time.Now()
	s.accessMu.Unlock()
}

// LastAccess returns when the session was last fetched or restored.
func (s *Session) LastAccess() time.Time {
	s.accessMu.Lock()
	defer s.accessMu.Unlock()
	return s.lastAccessedAt
}

// Manager is the registry of live sessions. Its own lock guards only the
// registry map; per-game serialization is the Session's job.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	persistence Persistence
	entropy     engine.EntropySource
}

// NewManager creates a session manager. persistence may be nil for a purely
// in-memory server; entropy is handed to games restored from disk.
func NewManager(persistence Persistence, entropy engine.EntropySource) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		persistence: persistence,
		entropy:     entropy,
	}
}

// Add registers a freshly created game and returns its session.
func (m *Manager) Add(game *engine.Game) *Session {
	now := time.Now()
	s := &Session{
		ID:             game.ID,
		Game:           game,
		CreatedAt:      now,
		lastAccessedAt: now,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns a session by id, updating its access time.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.Touch()
	return s, nil
}

// List returns all sessions, newest first.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Delete removes a session from the registry and from persistence.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if m.persistence != nil {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("delete persisted session: %w", err)
		}
	}
	return nil
}

// Save snapshots one session to persistence. The caller must hold the
// session lock so the snapshot is taken at a transition boundary.
func (m *Manager) Save(s *Session) error {
	if m.persistence == nil {
		return nil
	}
	data, err := s.Game.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot session %s: %w", s.ID, err)
	}
	return m.persistence.Save(&Record{
		SessionID:      s.ID,
		CreatedAt:      s.CreatedAt,
		LastAccessedAt: s.LastAccess(),
		Game:           data,
	})
}

// SaveAll snapshots every live session, typically at shutdown.
func (m *Manager) SaveAll() error {
	var firstErr error
	for _, s := range m.List() {
		s.Lock()
		err := m.Save(s)
		s.Unlock()
		if err != nil {
			log.Printf("Warning: failed to save session %s: %v", s.ID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// LoadPersisted restores every persisted session into the registry.
// Individual corrupt records are skipped with a warning so one bad file
// cannot take the server down.
func (m *Manager) LoadPersisted() error {
	if m.persistence == nil {
		return nil
	}
	records, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("list persisted sessions: %w", err)
	}
	for _, rec := range records {
		game, err := engine.Restore(rec.Game, m.entropy)
		if err != nil {
			log.Printf("Warning: skipping persisted session %s: %v", rec.SessionID, err)
			continue
		}
		s := &Session{
			ID:             rec.SessionID,
			Game:           game,
			CreatedAt:      rec.CreatedAt,
			lastAccessedAt: rec.LastAccessedAt,
		}
		m.mu.Lock()
		m.sessions[s.ID] = s
		m.mu.Unlock()
	}
	return nil
}

// CleanupExpired drops sessions idle past maxAge and returns how many went.
// Finished games are also removed from persistence.
func (m *Manager) CleanupExpired(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	var stale []string
	m.mu.RLock()
	for id, s := range m.sessions {
		if s.LastAccess().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range stale {
		if err := m.Delete(id); err != nil {
			log.Printf("Warning: cleanup of session %s: %v", id, err)
		}
	}
	return len(stale)
}

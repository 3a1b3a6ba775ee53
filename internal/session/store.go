// Package session keeps independent roadmap sessions in memory and maps
// learner commands onto roadmap controller operations.
package session

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/p-n-ai/pai-roadmap/internal/roadmap"
)

// Session is one learner's walk through a roadmap. Its progression state
// lives in Controller. Controller is set once by Create and never replaced,
// so callers holding a Session from Get may use it after the store lock is
// released.
type Session struct {
	ID         string
	RoadmapID  string
	Controller *roadmap.Controller
	StartedAt  time.Time
	EndedAt    *time.Time
}

// Store tracks sessions for the lifetime of the process.
type Store interface {
	Create(roadmapID string, ctrl *roadmap.Controller) (string, error)
	Get(id string) (*Session, error)
	End(id string) error
	Active() int
}

// MemoryStore is an in-memory implementation of Store.
type MemoryStore struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

func (s *MemoryStore) Create(roadmapID string, ctrl *roadmap.Controller) (string, error) {
	if ctrl == nil {
		return "", fmt.Errorf("controller is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := generateID()
	s.sessions[id] = &Session{
		ID:         id,
		RoadmapID:  roadmapID,
		Controller: ctrl,
		StartedAt:  time.Now(),
	}
	return id, nil
}

// Get returns an active session.
func (s *MemoryStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	if sess.EndedAt != nil {
		return nil, fmt.Errorf("session ended: %s", id)
	}
	return sess, nil
}

// End closes a session. Later Get calls reject it.
func (s *MemoryStore) End(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("session not found: %s", id)
	}
	now := time.Now()
	sess.EndedAt = &now
	return nil
}

// Active returns the number of sessions that have not ended.
func (s *MemoryStore) Active() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, sess := range s.sessions {
		if sess.EndedAt == nil {
			n++
		}
	}
	return n
}

func generateID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return fmt.Sprintf("%x", b)
}

package quiz

import (
	"sync"

	"github.com/google/uuid"
)

// Sessions maps opaque session identifiers to the exact questions
// served for that session: the per-session answer key. Entries are
// overwritten when a session requests a new quiz and live for the
// process lifetime. Safe for concurrent use.
type Sessions struct {
	mu sync.RWMutex
	m  map[string][]Question
}

// NewSessions creates an empty session store.
func NewSessions() *Sessions {
	return &Sessions{m: make(map[string][]Question)}
}

// Put stores the answer key under id, generating a fresh UUID when the
// caller supplied none. Returns the resolved session id.
func (s *Sessions) Put(id string, questions []Question) string {
	if id == "" {
		id = uuid.NewString()
	}

	cp := make([]Question, len(questions))
	copy(cp, questions)

	s.mu.Lock()
	s.m[id] = cp
	s.mu.Unlock()
	return id
}

// Get returns the answer key for id.
func (s *Sessions) Get(id string) ([]Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	questions, ok := s.m[id]
	if !ok {
		return nil, false
	}
	out := make([]Question, len(questions))
	copy(out, questions)
	return out, true
}

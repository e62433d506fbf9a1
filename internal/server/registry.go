package server

import (
	"sort"
	"sync"

	"github.com/abhisek/tutor/internal/profile"
	"github.com/abhisek/tutor/internal/tutor"
)

// SessionFactory builds a new tutoring session for the given profile.
type SessionFactory func(p profile.Profile) (*tutor.Session, error)

// Registry holds the live sessions keyed by session ID.
type Registry struct {
	newSession SessionFactory

	mu       sync.RWMutex
	sessions map[string]*tutor.Session
}

// NewRegistry creates an empty registry.
func NewRegistry(factory SessionFactory) *Registry {
	return &Registry{
		newSession: factory,
		sessions:   make(map[string]*tutor.Session),
	}
}

// Create builds and registers a session.
func (r *Registry) Create(p profile.Profile) (*tutor.Session, error) {
	s, err := r.newSession(p)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s, nil
}

// Get returns the session with the given ID.
func (r *Registry) Get(id string) (*tutor.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Delete removes a session. It reports whether the session existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// IDs returns the registered session IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

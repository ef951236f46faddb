// Package server provides the HTTP REST API for the interview coach.
package server

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/interview-coach/internal/session"
)

// managedSession pairs a runner with its owner. The mutex serializes
// turns so concurrent requests cannot interleave one interview.
type managedSession struct {
	mu     sync.Mutex
	owner  uuid.UUID
	runner *session.Runner
}

// Registry tracks active interview sessions in process memory. Sessions are
// evicted when their report is collected; the exported ledger (file or
// database row) is the durable record.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*managedSession
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]*managedSession)}
}

// Add registers a runner under a fresh session ID and returns that ID.
func (r *Registry) Add(owner uuid.UUID, runner *session.Runner) uuid.UUID {
	id := uuid.New()
	r.mu.Lock()
	r.sessions[id] = &managedSession{owner: owner, runner: runner}
	r.mu.Unlock()
	return id
}

// Get returns the session for id, or nil when unknown.
func (r *Registry) Get(id uuid.UUID) *managedSession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// Remove drops a session from the registry.
func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len returns the number of active sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

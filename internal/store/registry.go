package store

import (
	"sync"
	"time"
)

type registryEntry struct {
	state    *UIState
	lastSeen time.Time
}

// Registry keeps one UIState per client, keyed by an opaque state ID.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	now     func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
		now:     time.Now,
	}
}

// Get returns the state for id and marks it as used.
func (r *Registry) Get(id string) (*UIState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.state, true
}

// GetOrCreate returns the state for id, creating a fresh one if needed.
// created reports whether a new state was made.
func (r *Registry) GetOrCreate(id string) (state *UIState, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[id]; ok {
		e.lastSeen = r.now()
		return e.state, false
	}

	e := &registryEntry{state: NewUIState(), lastSeen: r.now()}
	r.entries[id] = e
	return e.state, true
}

// Delete drops the state for id.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// Len returns the number of tracked states.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep removes states that have not been used for longer than idle and
// returns how many were removed. States with live subscribers are kept.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.After(cutoff) || hasSubscribers(e.state) {
			continue
		}
		delete(r.entries, id)
		removed++
	}
	return removed
}

func hasSubscribers(s *UIState) bool {
	return s.User.Subscribers() > 0 || s.ShowAuthModal.Subscribers() > 0 || s.AuthMode.Subscribers() > 0
}

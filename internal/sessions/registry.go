// Package sessions tracks the live dialogue engine for each conversation.
package sessions

import (
	"sync"
	"time"

	"vox/internal/dialogue"
	"vox/internal/domain"
)

type entry struct {
	engine   *dialogue.Engine
	lastSeen time.Time
}

// Registry maps session IDs to engines with idle-TTL eviction. Engines are
// created when the browser activates the assistant and dropped on close,
// disconnect, or idle expiry; nothing survives eviction.
type Registry struct {
	mu      sync.RWMutex
	data    map[string]*entry
	idleTTL time.Duration
}

func NewRegistry(idleTTL time.Duration) *Registry {
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	return &Registry{
		data:    make(map[string]*entry),
		idleTTL: idleTTL,
	}
}

func (r *Registry) Put(e *dialogue.Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[e.SessionID()] = &entry{engine: e, lastSeen: time.Now()}
}

// Get returns the engine for id and refreshes its idle clock. Closed or
// expired sessions are treated as gone.
func (r *Registry) Get(id string) (*dialogue.Engine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.data[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if item.engine.Closed() || time.Since(item.lastSeen) > r.idleTTL {
		delete(r.data, id)
		return nil, domain.ErrSessionNotFound
	}
	item.lastSeen = time.Now()
	return item.engine, nil
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.data[id]; ok {
		item.engine.Close()
		delete(r.data, id)
	}
}

// Sweep evicts closed and idle-expired sessions; run on a ticker.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, item := range r.data {
		if item.engine.Closed() || time.Since(item.lastSeen) > r.idleTTL {
			delete(r.data, id)
			removed++
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

package action

import (
	"sort"
	"sync"
)

// Registry maps action keys to handlers.
// It is filled at startup and read concurrently afterwards.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler to the registry.
// If a handler with the same key exists, it is overwritten.
func (r *Registry) Register(key string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[key] = h
}

// Merge registers all handlers, overwriting existing keys.
// It returns the keys that shadowed an earlier registration, sorted.
func (r *Registry) Merge(handlers map[string]Handler) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var shadowed []string
	for key, h := range handlers {
		if _, exists := r.handlers[key]; exists {
			shadowed = append(shadowed, key)
		}
		r.handlers[key] = h
	}
	sort.Strings(shadowed)
	return shadowed
}

// Lookup returns the handler registered under key.
func (r *Registry) Lookup(key string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[key]
	return h, ok
}

// Exists reports whether key is registered.
func (r *Registry) Exists(key string) bool {
	_, ok := r.Lookup(key)
	return ok
}

// Keys returns the registered action keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

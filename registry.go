package digo

import "sync"

// BindingRegistry maps interface keys to providers.
// Reads may run concurrently with each other; writes are exclusive.
type BindingRegistry struct {
	mu       sync.RWMutex
	bindings map[InterfaceKey]Provider
}

// NewBindingRegistry returns an empty registry.
func NewBindingRegistry() *BindingRegistry {
	return &BindingRegistry{bindings: make(map[InterfaceKey]Provider, 32)}
}

// Has reports whether key is bound.
func (r *BindingRegistry) Has(key InterfaceKey) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.bindings[key]
	return ok
}

// Get returns the provider bound to key.
func (r *BindingRegistry) Get(key InterfaceKey) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.bindings[key]
	return p, ok
}

// Set binds p to key without checking for an existing binding. A replaced
// singleton provider drops its reference to the shared instance.
func (r *BindingRegistry) Set(key InterfaceKey, p Provider) {
	r.mu.Lock()
	old, ok := r.bindings[key]
	r.bindings[key] = p
	r.mu.Unlock()

	if ok && old != p {
		if rel, isReleaser := old.(releaser); isReleaser {
			rel.release()
		}
	}
}

// Remove unbinds key and returns the provider it held.
// Ownership of the provider passes to the caller.
func (r *BindingRegistry) Remove(key InterfaceKey) (Provider, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.bindings[key]
	if ok {
		delete(r.bindings, key)
	}
	return p, ok
}

// Keys returns a snapshot of the bound keys (order is unspecified).
func (r *BindingRegistry) Keys() []InterfaceKey {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]InterfaceKey, 0, len(r.bindings))
	for k := range r.bindings {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of bindings.
func (r *BindingRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}

// Clear removes every binding, releasing singleton references.
func (r *BindingRegistry) Clear() {
	r.mu.Lock()
	old := r.bindings
	r.bindings = make(map[InterfaceKey]Provider, 32)
	r.mu.Unlock()

	for _, p := range old {
		if rel, ok := p.(releaser); ok {
			rel.release()
		}
	}
}

// rename moves the binding at from to to in one step.
func (r *BindingRegistry) rename(from, to InterfaceKey) bool {
	r.mu.Lock()
	p, ok := r.bindings[from]
	if !ok {
		r.mu.Unlock()
		return false
	}
	delete(r.bindings, from)
	old, replaced := r.bindings[to]
	r.bindings[to] = p
	r.mu.Unlock()

	if replaced && old != p {
		if rel, isReleaser := old.(releaser); isReleaser {
			rel.release()
		}
	}
	return true
}

package device

import "sync"

// Registry holds the set of light endpoints resolved by the most recent
// discovery call.
//
// The registry is written only by the discovery service and read by the
// control operations. It is replaced wholesale at the start of every
// discovery call; readers always see a consistent snapshot because Snapshot
// returns a copy taken under the lock.
//
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	endpoints []Endpoint
}

// NewRegistry creates an empty endpoint registry.
// One registry is constructed per daemon session and shared by reference;
// there is no package-level global.
func NewRegistry() *Registry {
	return &Registry{}
}

// Replace discards the current contents and installs the given endpoints.
func (r *Registry) Replace(endpoints []Endpoint) {
	eps := make([]Endpoint, len(endpoints))
	copy(eps, endpoints)

	r.mu.Lock()
	r.endpoints = eps
	r.mu.Unlock()
}

// Clear removes all endpoints. Discovery calls this before repopulating.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.endpoints = nil
	r.mu.Unlock()
}

// Append adds a single endpoint to the end of the registry.
// Discovery appends endpoints as announcements arrive, so partial results
// are visible to readers before discovery completes.
func (r *Registry) Append(ep Endpoint) {
	r.mu.Lock()
	r.endpoints = append(r.endpoints, ep)
	r.mu.Unlock()
}

// Snapshot returns a copy of the current endpoints in registry order.
// Control operations iterate the snapshot taken when the operation started,
// so a concurrent discovery cannot change an in-flight iteration.
func (r *Registry) Snapshot() []Endpoint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	eps := make([]Endpoint, len(r.endpoints))
	copy(eps, r.endpoints)
	return eps
}

// Count returns the number of registered endpoints.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.endpoints)
}

package fallback

import (
	"sync"
	"time"
)

// ProviderHealth is a snapshot of a provider's recent behavior.
type ProviderHealth struct {
	// Name is the provider identifier.
	Name string

	// Successes and Failures count primary calls since startup.
	Successes uint64
	Failures  uint64

	// LastSuccessAt is the timestamp of the last successful primary call.
	LastSuccessAt *time.Time

	// LastFailureAt is the timestamp of the last failed primary call.
	LastFailureAt *time.Time

	// LastError is the most recent error message, if any.
	LastError string
}

// IsHealthy reports whether the most recent outcome was a success.
// A provider that has never been called is considered healthy.
func (h *ProviderHealth) IsHealthy() bool {
	if h.LastFailureAt == nil {
		return true
	}
	if h.LastSuccessAt == nil {
		return false
	}
	return h.LastSuccessAt.After(*h.LastFailureAt)
}

// Registry tracks the health of the remote providers feeding the planner.
// It records outcomes only; it never influences call behavior.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]*providerState
}

type providerState struct {
	successes     uint64
	failures      uint64
	lastSuccessAt *time.Time
	lastFailureAt *time.Time
	lastError     string
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]*providerState)}
}

// Register adds a provider so it appears in health listings before its
// first call.
func (r *Registry) Register(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[name]; !ok {
		r.providers[name] = &providerState{}
	}
}

// RecordSuccess records a successful primary call.
func (r *Registry) RecordSuccess(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.state(name)
	now := time.Now()
	p.successes++
	p.lastSuccessAt = &now
}

// RecordFailure records a failed primary call.
func (r *Registry) RecordFailure(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.state(name)
	now := time.Now()
	p.failures++
	p.lastFailureAt = &now
	if err != nil {
		p.lastError = err.Error()
	}
}

// GetHealth returns the health snapshot of a specific provider, or nil when
// the provider is unknown.
func (r *Registry) GetHealth(name string) *ProviderHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil
	}
	return snapshot(name, p)
}

// GetAllHealth returns health snapshots for every registered provider.
func (r *Registry) GetAllHealth() []*ProviderHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()

	health := make([]*ProviderHealth, 0, len(r.providers))
	for name, p := range r.providers {
		health = append(health, snapshot(name, p))
	}
	return health
}

// ProviderCount returns the number of registered providers.
func (r *Registry) ProviderCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}

// state returns the provider record, creating it on first use.
// Callers must hold the write lock.
func (r *Registry) state(name string) *providerState {
	p, ok := r.providers[name]
	if !ok {
		p = &providerState{}
		r.providers[name] = p
	}
	return p
}

func snapshot(name string, p *providerState) *ProviderHealth {
	return &ProviderHealth{
		Name:          name,
		Successes:     p.successes,
		Failures:      p.failures,
		LastSuccessAt: p.lastSuccessAt,
		LastFailureAt: p.lastFailureAt,
		LastError:     p.lastError,
	}
}

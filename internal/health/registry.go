package health

import (
	"sync"
	"time"
)

// UpstreamStatus is the tracked state of one upstream endpoint.
type UpstreamStatus struct {
	Healthy             bool      `json:"healthy"`
	LastChecked         time.Time `json:"lastChecked,omitempty"`
	LastError           string    `json:"lastError,omitempty"`
	TotalCalls          int64     `json:"totalCalls"`
	TotalFailures       int64     `json:"totalFailures"`
	ConsecutiveFailures int64     `json:"consecutiveFailures"`
}

// Registry is a concurrency-safe record of upstream call outcomes. Every
// lookup and every background probe reports its result here; the health
// endpoint reads it back out.
type Registry struct {
	mu sync.RWMutex

	// key: upstream name, value: current status
	statuses map[string]*UpstreamStatus
}

// NewRegistry creates a Registry with the given upstreams pre-registered as
// healthy, so the health endpoint reports a full section set before the
// first call is ever made.
func NewRegistry(upstreams ...string) *Registry {
	statuses := make(map[string]*UpstreamStatus, len(upstreams))
	for _, name := range upstreams {
		statuses[name] = &UpstreamStatus{Healthy: true}
	}
	return &Registry{statuses: statuses}
}

// Record notes the outcome of one upstream call. A nil err marks the
// upstream healthy and resets its consecutive failure count.
func (r *Registry) Record(upstream string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	status, ok := r.statuses[upstream]
	if !ok {
		status = &UpstreamStatus{Healthy: true}
		r.statuses[upstream] = status
	}

	status.TotalCalls++
	status.LastChecked = time.Now().UTC()

	if err != nil {
		status.Healthy = false
		status.TotalFailures++
		status.ConsecutiveFailures++
		status.LastError = err.Error()
		return
	}

	status.Healthy = true
	status.ConsecutiveFailures = 0
	status.LastError = ""
}

// Healthy reports whether an upstream is currently healthy. Unknown
// upstreams are treated as healthy; only an observed failure marks one down.
func (r *Registry) Healthy(upstream string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status, ok := r.statuses[upstream]
	if !ok {
		return true
	}
	return status.Healthy
}

// Snapshot returns a copy of all tracked upstream statuses.
func (r *Registry) Snapshot() map[string]UpstreamStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]UpstreamStatus, len(r.statuses))
	for name, status := range r.statuses {
		out[name] = *status
	}
	return out
}

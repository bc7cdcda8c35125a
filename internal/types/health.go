package types

import "time"

// HealthState classifies graph store connectivity.
type HealthState string

const (
	HealthStateHealthy   HealthState = "healthy"
	HealthStateDegraded  HealthState = "degraded"
	HealthStateUnhealthy HealthState = "unhealthy"
)

// HealthStatus is the result of one connectivity check against the graph
// store. The status command renders it directly, so the JSON shape is part
// of the CLI's output contract.
type HealthStatus struct {
	State     HealthState `json:"state"`
	Message   string      `json:"message,omitempty"`
	CheckedAt time.Time   `json:"checked_at"`
}

func newHealthStatus(state HealthState, message string) HealthStatus {
	return HealthStatus{
		State:     state,
		Message:   message,
		CheckedAt: time.Now(),
	}
}

// Healthy reports a reachable, responsive store.
func Healthy(message string) HealthStatus {
	return newHealthStatus(HealthStateHealthy, message)
}

// Degraded reports a store that answered but failed a secondary check.
func Degraded(message string) HealthStatus {
	return newHealthStatus(HealthStateDegraded, message)
}

// Unhealthy reports an unreachable store.
func Unhealthy(message string) HealthStatus {
	return newHealthStatus(HealthStateUnhealthy, message)
}

// IsHealthy reports whether the check found the store fully reachable.
func (h HealthStatus) IsHealthy() bool {
	return h.State == HealthStateHealthy
}

// IsUnhealthy reports whether the check found the store unreachable.
func (h HealthStatus) IsUnhealthy() bool {
	return h.State == HealthStateUnhealthy
}

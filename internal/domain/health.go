package domain

import "time"

// HealthStatus summarises the state of a dependency or of the service as a
// whole.
type HealthStatus string

const (
	HealthStatusOK       HealthStatus = "ok"
	HealthStatusDegraded HealthStatus = "degraded"
	HealthStatusError    HealthStatus = "error"
)

// SystemHealthCheck is the outcome of probing one dependency.
type SystemHealthCheck struct {
	Name      string        `json:"name"`
	Status    HealthStatus  `json:"status"`
	Latency   time.Duration `json:"latency,omitempty"`
	Detail    string        `json:"detail,omitempty"`
	CheckedAt time.Time     `json:"checkedAt"`
}

// SystemHealthReport aggregates the dependency checks.
type SystemHealthReport struct {
	Status    HealthStatus        `json:"status"`
	Checks    []SystemHealthCheck `json:"checks"`
	Timestamp time.Time           `json:"timestamp"`
}

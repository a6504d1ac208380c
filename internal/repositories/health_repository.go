package repositories

import (
	"context"
	"time"

	"github.com/wisecrew/api/internal/domain"
)

const defaultCheckTimeout = 2 * time.Second

// DependencyCheck describes a single readiness probe.
type DependencyCheck struct {
	Name    string
	Timeout time.Duration
	Check   func(ctx context.Context) error
}

type dependencyHealthRepository struct {
	checks []DependencyCheck
	clock  func() time.Time
}

// NewDependencyHealthRepository builds a HealthRepository over the provided
// probes.
func NewDependencyHealthRepository(clock func() time.Time, checks ...DependencyCheck) HealthRepository {
	if clock == nil {
		clock = time.Now
	}
	return &dependencyHealthRepository{checks: checks, clock: clock}
}

func (r *dependencyHealthRepository) Check(ctx context.Context) ([]domain.SystemHealthCheck, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]domain.SystemHealthCheck, 0, len(r.checks))
	for _, check := range r.checks {
		results = append(results, r.runCheck(ctx, check))
	}
	return results, nil
}

func (r *dependencyHealthRepository) runCheck(ctx context.Context, check DependencyCheck) domain.SystemHealthCheck {
	result := domain.SystemHealthCheck{
		Name:      check.Name,
		Status:    domain.HealthStatusOK,
		CheckedAt: r.clock().UTC(),
	}
	if check.Check == nil {
		result.Status = domain.HealthStatusError
		result.Detail = "check not configured"
		return result
	}

	timeout := check.Timeout
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := r.clock()
	err := check.Check(checkCtx)
	result.Latency = time.Since(start)
	if err != nil {
		result.Status = domain.HealthStatusError
		result.Detail = err.Error()
	}
	return result
}

package services

import (
	"context"
	"errors"
	"time"

	"github.com/wisecrew/api/internal/domain"
	"github.com/wisecrew/api/internal/repositories"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version     string
	CommitSHA   string
	Environment string
}

// SystemService reports build identity and dependency health.
type SystemService interface {
	BuildInfo() BuildInfo
	HealthReport(ctx context.Context) (domain.SystemHealthReport, error)
}

// SystemServiceDeps wires the service dependencies.
type SystemServiceDeps struct {
	Build  BuildInfo
	Health repositories.HealthRepository
	Clock  func() time.Time
}

type systemService struct {
	build  BuildInfo
	health repositories.HealthRepository
	clock  func() time.Time
}

// NewSystemService validates dependencies and applies defaults.
func NewSystemService(deps SystemServiceDeps) (SystemService, error) {
	if deps.Health == nil {
		return nil, errors.New("system: health repository is required")
	}
	svc := &systemService{
		build:  deps.Build,
		health: deps.Health,
		clock:  deps.Clock,
	}
	if svc.clock == nil {
		svc.clock = time.Now
	}
	return svc, nil
}

func (s *systemService) BuildInfo() BuildInfo {
	return s.build
}

func (s *systemService) HealthReport(ctx context.Context) (domain.SystemHealthReport, error) {
	checks, err := s.health.Check(ctx)
	if err != nil {
		return domain.SystemHealthReport{}, err
	}

	status := domain.HealthStatusOK
	for _, check := range checks {
		switch check.Status {
		case domain.HealthStatusError:
			status = domain.HealthStatusError
		case domain.HealthStatusDegraded:
			if status == domain.HealthStatusOK {
				status = domain.HealthStatusDegraded
			}
		}
	}

	return domain.SystemHealthReport{
		Status:    status,
		Checks:    checks,
		Timestamp: s.clock().UTC(),
	}, nil
}

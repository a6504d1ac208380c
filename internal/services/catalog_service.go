package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/wisecrew/api/internal/domain"
	"github.com/wisecrew/api/internal/repositories"
)

// ErrCatalogNotFound is returned for unknown catalog entries.
var ErrCatalogNotFound = errors.New("catalog: not found")

// CatalogService exposes the read-only marketing catalog.
type CatalogService interface {
	Internships(ctx context.Context) ([]domain.Internship, error)
	Jobs(ctx context.Context) ([]domain.Job, error)
	JobByID(ctx context.Context, id string) (domain.Job, error)
	Courses(ctx context.Context) ([]domain.Course, error)
	Products(ctx context.Context) ([]domain.Product, error)
	ServiceOfferings(ctx context.Context) ([]domain.ServiceOffering, error)
	Workshops(ctx context.Context) ([]domain.Workshop, error)
	FAQs(ctx context.Context) ([]domain.FAQItem, error)
	Testimonials(ctx context.Context) ([]domain.Testimonial, error)
	OpenRoles(ctx context.Context) ([]domain.OpenRole, error)
}

// CatalogServiceDeps wires the service dependencies.
type CatalogServiceDeps struct {
	Repo repositories.CatalogRepository
}

type catalogService struct {
	repo repositories.CatalogRepository
}

// NewCatalogService validates dependencies.
func NewCatalogService(deps CatalogServiceDeps) (CatalogService, error) {
	if deps.Repo == nil {
		return nil, errors.New("catalog: repository is required")
	}
	return &catalogService{repo: deps.Repo}, nil
}

func (s *catalogService) Internships(ctx context.Context) ([]domain.Internship, error) {
	return s.repo.Internships(ctx)
}

func (s *catalogService) Jobs(ctx context.Context) ([]domain.Job, error) {
	return s.repo.Jobs(ctx)
}

func (s *catalogService) JobByID(ctx context.Context, id string) (domain.Job, error) {
	job, err := s.repo.JobByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return domain.Job{}, fmt.Errorf("%w: job %s", ErrCatalogNotFound, id)
		}
		return domain.Job{}, err
	}
	return job, nil
}

func (s *catalogService) Courses(ctx context.Context) ([]domain.Course, error) {
	return s.repo.Courses(ctx)
}

func (s *catalogService) Products(ctx context.Context) ([]domain.Product, error) {
	return s.repo.Products(ctx)
}

func (s *catalogService) ServiceOfferings(ctx context.Context) ([]domain.ServiceOffering, error) {
	return s.repo.ServiceOfferings(ctx)
}

func (s *catalogService) Workshops(ctx context.Context) ([]domain.Workshop, error) {
	return s.repo.Workshops(ctx)
}

func (s *catalogService) FAQs(ctx context.Context) ([]domain.FAQItem, error) {
	return s.repo.FAQs(ctx)
}

func (s *catalogService) Testimonials(ctx context.Context) ([]domain.Testimonial, error) {
	return s.repo.Testimonials(ctx)
}

// OpenRoles flattens internships and jobs into the role picker entries used
// by the standalone apply form.
func (s *catalogService) OpenRoles(ctx context.Context) ([]domain.OpenRole, error) {
	internships, err := s.repo.Internships(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := s.repo.Jobs(ctx)
	if err != nil {
		return nil, err
	}

	roles := make([]domain.OpenRole, 0, len(internships)+len(jobs))
	for _, internship := range internships {
		roles = append(roles, domain.OpenRole{Category: domain.CategoryInternship, Title: internship.Title})
	}
	for _, job := range jobs {
		roles = append(roles, domain.OpenRole{Category: domain.CategoryJob, Title: job.Title})
	}
	return roles, nil
}

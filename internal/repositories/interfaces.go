// Package repositories defines the persistence boundaries consumed by the
// service layer.
package repositories

import (
	"context"
	"errors"

	"github.com/wisecrew/api/internal/domain"
)

// RepositoryError augments errors with persistence semantics. Implementations
// set exactly the categories that apply.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}

// IsNotFound reports whether err carries not-found semantics.
func IsNotFound(err error) bool {
	var repoErr RepositoryError
	return errors.As(err, &repoErr) && repoErr.IsNotFound()
}

// IsConflict reports whether err carries conflict semantics.
func IsConflict(err error) bool {
	var repoErr RepositoryError
	return errors.As(err, &repoErr) && repoErr.IsConflict()
}

// IsUnavailable reports whether err signals a transient backend outage.
func IsUnavailable(err error) bool {
	var repoErr RepositoryError
	return errors.As(err, &repoErr) && repoErr.IsUnavailable()
}

// SubmissionRepository persists application records. The store is
// append-only: records are never updated or removed, and listings return the
// newest record first.
type SubmissionRepository interface {
	Insert(ctx context.Context, submission domain.Submission) error
	List(ctx context.Context, page domain.Pagination) (domain.CursorPage[domain.Submission], error)
	ListAll(ctx context.Context) ([]domain.Submission, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// CatalogRepository serves the static marketing catalog.
type CatalogRepository interface {
	Internships(ctx context.Context) ([]domain.Internship, error)
	Jobs(ctx context.Context) ([]domain.Job, error)
	JobByID(ctx context.Context, id string) (domain.Job, error)
	Courses(ctx context.Context) ([]domain.Course, error)
	Products(ctx context.Context) ([]domain.Product, error)
	ServiceOfferings(ctx context.Context) ([]domain.ServiceOffering, error)
	Workshops(ctx context.Context) ([]domain.Workshop, error)
	FAQs(ctx context.Context) ([]domain.FAQItem, error)
	Testimonials(ctx context.Context) ([]domain.Testimonial, error)
}

// HealthRepository probes the dependencies the service needs to be ready.
type HealthRepository interface {
	Check(ctx context.Context) ([]domain.SystemHealthCheck, error)
}

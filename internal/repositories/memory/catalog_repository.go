// Package memory holds the in-process repositories backed by static data.
// The marketing catalog is editorial content that ships with the binary, the
// same way the site content is versioned with the code.
package memory

import (
	"context"
	"fmt"

	"github.com/wisecrew/api/internal/domain"
)

type catalogError struct {
	msg      string
	notFound bool
}

func (e *catalogError) Error() string      { return e.msg }
func (e *catalogError) IsNotFound() bool   { return e.notFound }
func (e *catalogError) IsConflict() bool   { return false }
func (e *catalogError) IsUnavailable() bool { return false }

// CatalogRepository serves the static Wisecrew catalog.
type CatalogRepository struct {
	internships  []domain.Internship
	jobs         []domain.Job
	courses      []domain.Course
	products     []domain.Product
	services     []domain.ServiceOffering
	workshops    []domain.Workshop
	faqs         []domain.FAQItem
	testimonials []domain.Testimonial
}

// NewCatalogRepository returns the repository seeded with the site content.
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		internships:  seedInternships,
		jobs:         seedJobs,
		courses:      seedCourses,
		products:     seedProducts,
		services:     seedServices,
		workshops:    seedWorkshops,
		faqs:         seedFAQs,
		testimonials: seedTestimonials,
	}
}

func (r *CatalogRepository) Internships(ctx context.Context) ([]domain.Internship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Internship(nil), r.internships...), nil
}

func (r *CatalogRepository) Jobs(ctx context.Context) ([]domain.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Job(nil), r.jobs...), nil
}

func (r *CatalogRepository) JobByID(ctx context.Context, id string) (domain.Job, error) {
	if err := ctx.Err(); err != nil {
		return domain.Job{}, err
	}
	for _, job := range r.jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return domain.Job{}, &catalogError{msg: fmt.Sprintf("catalog: job %s not found", id), notFound: true}
}

func (r *CatalogRepository) Courses(ctx context.Context) ([]domain.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Course(nil), r.courses...), nil
}

func (r *CatalogRepository) Products(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Product(nil), r.products...), nil
}

func (r *CatalogRepository) ServiceOfferings(ctx context.Context) ([]domain.ServiceOffering, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.ServiceOffering(nil), r.services...), nil
}

func (r *CatalogRepository) Workshops(ctx context.Context) ([]domain.Workshop, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Workshop(nil), r.workshops...), nil
}

func (r *CatalogRepository) FAQs(ctx context.Context) ([]domain.FAQItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.FAQItem(nil), r.faqs...), nil
}

func (r *CatalogRepository) Testimonials(ctx context.Context) ([]domain.Testimonial, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Testimonial(nil), r.testimonials...), nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/wisecrew/api/internal/domain"
	"github.com/wisecrew/api/internal/repositories"
)

var (
	// ErrSubmissionInvalidInput flags malformed submission commands.
	ErrSubmissionInvalidInput = errors.New("submission: invalid input")
	// ErrStorageUnavailable signals that the record could not be persisted.
	// The returned submission is still fully formed in that case.
	ErrStorageUnavailable = errors.New("submission: storage unavailable")
)

const (
	defaultRole = "General"
	// idAttempts bounds the collision re-roll when generating ids.
	idAttempts = 5
)

// CreateSubmissionCommand carries the validated form outcome into the store.
type CreateSubmissionCommand struct {
	RawCategory string
	Role        string
	Name        string
	Email       string
	Phone       string
}

// SubmissionService owns id generation and the durable record lifecycle.
type SubmissionService interface {
	Create(ctx context.Context, cmd CreateSubmissionCommand) (domain.Submission, error)
	List(ctx context.Context, page domain.Pagination) (domain.CursorPage[domain.Submission], error)
	ListAll(ctx context.Context) ([]domain.Submission, error)
}

// SubmissionServiceDeps wires the service dependencies.
type SubmissionServiceDeps struct {
	Repo          repositories.SubmissionRepository
	Clock         func() time.Time
	RandomDigits  func() int
	DateFormatter func(time.Time) string
	Logger        func(ctx context.Context, msg string, fields map[string]any)
}

type submissionService struct {
	repo          repositories.SubmissionRepository
	clock         func() time.Time
	randomDigits  func() int
	dateFormatter func(time.Time) string
	logger        func(ctx context.Context, msg string, fields map[string]any)
}

// NewSubmissionService validates dependencies and applies defaults.
func NewSubmissionService(deps SubmissionServiceDeps) (SubmissionService, error) {
	if deps.Repo == nil {
		return nil, errors.New("submission: repository is required")
	}
	svc := &submissionService{
		repo:          deps.Repo,
		clock:         deps.Clock,
		randomDigits:  deps.RandomDigits,
		dateFormatter: deps.DateFormatter,
		logger:        deps.Logger,
	}
	if svc.clock == nil {
		svc.clock = time.Now
	}
	if svc.randomDigits == nil {
		svc.randomDigits = func() int { return 1000 + rand.Intn(9000) }
	}
	if svc.dateFormatter == nil {
		svc.dateFormatter = func(t time.Time) string { return t.Format("02/01/2006") }
	}
	if svc.logger == nil {
		svc.logger = func(context.Context, string, map[string]any) {}
	}
	return svc, nil
}

func (s *submissionService) Create(ctx context.Context, cmd CreateSubmissionCommand) (domain.Submission, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return domain.Submission{}, fmt.Errorf("%w: name is required", ErrSubmissionInvalidInput)
	}

	category, prefix := domain.ResolveCategory(strings.TrimSpace(cmd.RawCategory))
	role := strings.TrimSpace(cmd.Role)
	if role == "" {
		role = defaultRole
	}

	now := s.clock()
	submission := domain.Submission{
		ID:          s.generateID(ctx, prefix, now),
		Category:    category,
		Role:        role,
		Name:        name,
		Email:       strings.TrimSpace(cmd.Email),
		Phone:       strings.TrimSpace(cmd.Phone),
		SubmittedAt: s.dateFormatter(now),
		Status:      domain.SubmissionStatusSubmitted,
		CreatedAt:   now.UTC(),
	}

	if err := s.repo.Insert(ctx, submission); err != nil {
		s.logger(ctx, "submission persist failed", map[string]any{
			"submission_id": submission.ID,
			"error":         err.Error(),
		})
		return submission, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return submission, nil
}

// generateID builds WISE-<PREFIX>-<YYYYMMDD>-<RAND4>. The date is the UTC
// calendar date; the suffix is re-rolled a few times if the id is already
// taken. Collision checks are best effort: a store error never blocks id
// assignment.
func (s *submissionService) generateID(ctx context.Context, prefix string, now time.Time) string {
	date := now.UTC().Format("20060102")
	id := ""
	for attempt := 0; attempt < idAttempts; attempt++ {
		id = fmt.Sprintf("WISE-%s-%s-%04d", prefix, date, s.randomDigits())
		taken, err := s.repo.Exists(ctx, id)
		if err != nil || !taken {
			return id
		}
	}
	return id
}

func (s *submissionService) List(ctx context.Context, page domain.Pagination) (domain.CursorPage[domain.Submission], error) {
	result, err := s.repo.List(ctx, page)
	if err != nil {
		return domain.CursorPage[domain.Submission]{}, s.wrapReadError(err)
	}
	return result, nil
}

func (s *submissionService) ListAll(ctx context.Context) ([]domain.Submission, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, s.wrapReadError(err)
	}
	return all, nil
}

func (s *submissionService) wrapReadError(err error) error {
	if repositories.IsUnavailable(err) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return err
}

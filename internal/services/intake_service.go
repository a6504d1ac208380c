package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"

	"github.com/wisecrew/api/internal/domain"
)

var (
	// ErrIntakeInvalidInput flags malformed intake commands.
	ErrIntakeInvalidInput = errors.New("intake: invalid input")
	// ErrSessionNotFound is returned for unknown session ids.
	ErrSessionNotFound = errors.New("intake: session not found")
	// ErrSessionTerminal rejects mutations of a completed session.
	ErrSessionTerminal = errors.New("intake: session already completed")
	// ErrSessionNotTerminal rejects summary export before completion.
	ErrSessionNotTerminal = errors.New("intake: session not completed")
	// ErrStepValidationFailed is returned when an advance was blocked. The
	// session accompanying the error carries the field messages.
	ErrStepValidationFailed = errors.New("intake: step validation failed")
)

// Validation messages shown next to the form fields.
const (
	msgFullNameRequired  = "Full Name is required"
	msgEmailRequired     = "Valid Email is required"
	msgPhoneRequired     = "Valid 10-digit Phone is required"
	msgCollegeRequired   = "College Name is required"
	msgStartDateRequired = "Preferred Start Date is required"
	msgReasonRequired    = "Please tell us why you are interested."
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// OpenSessionCommand starts a new form run.
type OpenSessionCommand struct {
	Role     string
	Category string
}

// SummaryExport is the plaintext confirmation document.
type SummaryExport struct {
	Filename string
	Content  string
}

// IntakeService drives form sessions from the first step through submission.
type IntakeService interface {
	Open(ctx context.Context, cmd OpenSessionCommand) (domain.FormSession, error)
	Get(ctx context.Context, sessionID string) (domain.FormSession, error)
	UpdateFields(ctx context.Context, sessionID string, changes map[string]string) (domain.FormSession, error)
	Advance(ctx context.Context, sessionID string) (domain.FormSession, error)
	Retreat(ctx context.Context, sessionID string) (domain.FormSession, error)
	Summary(ctx context.Context, sessionID string) (SummaryExport, error)
}

// IntakeServiceDeps wires the service dependencies.
type IntakeServiceDeps struct {
	Submissions SubmissionService
	Clock       func() time.Time
	IDGenerator func() string
	Logger      func(ctx context.Context, msg string, fields map[string]any)
}

type intakeService struct {
	submissions SubmissionService
	clock       func() time.Time
	idGenerator func() string
	logger      func(ctx context.Context, msg string, fields map[string]any)
	sanitizer   *bluemonday.Policy

	mu       sync.RWMutex
	sessions map[string]*domain.FormSession
}

// NewIntakeService validates dependencies and applies defaults.
func NewIntakeService(deps IntakeServiceDeps) (IntakeService, error) {
	if deps.Submissions == nil {
		return nil, errors.New("intake: submission service is required")
	}
	svc := &intakeService{
		submissions: deps.Submissions,
		clock:       deps.Clock,
		idGenerator: deps.IDGenerator,
		logger:      deps.Logger,
		sanitizer:   bluemonday.StrictPolicy(),
		sessions:    make(map[string]*domain.FormSession),
	}
	if svc.clock == nil {
		svc.clock = time.Now
	}
	if svc.idGenerator == nil {
		svc.idGenerator = func() string { return ulid.Make().String() }
	}
	if svc.logger == nil {
		svc.logger = func(context.Context, string, map[string]any) {}
	}
	return svc, nil
}

func (s *intakeService) Open(ctx context.Context, cmd OpenSessionCommand) (domain.FormSession, error) {
	now := s.clock().UTC()
	session := &domain.FormSession{
		ID:   s.idGenerator(),
		Step: domain.StepPersonal,
		Context: domain.SessionContext{
			Role:        s.clean(cmd.Role),
			RawCategory: s.clean(cmd.Category),
		},
		Fields:      domain.DefaultFormFields(),
		FieldErrors: map[string]string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger(ctx, "intake session opened", map[string]any{
		"session_id": session.ID,
		"role":       session.Context.Role,
		"category":   session.Context.RawCategory,
	})
	return snapshot(session), nil
}

func (s *intakeService) Get(ctx context.Context, sessionID string) (domain.FormSession, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return domain.FormSession{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(session), nil
}

// UpdateFields applies the changes and clears the error of every edited
// field. Values are stripped of HTML before they enter the session.
func (s *intakeService) UpdateFields(ctx context.Context, sessionID string, changes map[string]string) (domain.FormSession, error) {
	if len(changes) == 0 {
		return domain.FormSession{}, fmt.Errorf("%w: no fields provided", ErrIntakeInvalidInput)
	}

	session, err := s.lookup(sessionID)
	if err != nil {
		return domain.FormSession{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if session.Terminal() {
		return domain.FormSession{}, ErrSessionTerminal
	}

	// Stage on a copy so a bad change leaves the session untouched.
	staged := session.Fields
	for name, value := range changes {
		if err := s.applyField(&staged, name, value); err != nil {
			return domain.FormSession{}, err
		}
	}

	session.Fields = staged
	for name := range changes {
		delete(session.FieldErrors, name)
	}
	session.UpdatedAt = s.clock().UTC()
	return snapshot(session), nil
}

func (s *intakeService) applyField(fields *domain.FormFields, name, value string) error {
	value = s.clean(value)
	switch name {
	case "fullName":
		fields.FullName = value
	case "email":
		fields.Email = value
	case "phone":
		fields.Phone = value
	case "whatsapp":
		fields.WhatsApp = value
	case "city":
		fields.City = value
	case "status":
		switch domain.ApplicantStatus(value) {
		case domain.ApplicantStatusStudent, domain.ApplicantStatusFresher, domain.ApplicantStatusWorking:
			fields.Status = domain.ApplicantStatus(value)
		default:
			return fmt.Errorf("%w: unknown status %q", ErrIntakeInvalidInput, value)
		}
	case "college":
		fields.College = value
	case "degree":
		fields.Degree = value
	case "year":
		fields.Year = value
	case "mode":
		switch domain.DeliveryMode(value) {
		case domain.DeliveryModeOnline, domain.DeliveryModeOffline, domain.DeliveryModeHybrid:
			fields.Mode = domain.DeliveryMode(value)
		default:
			return fmt.Errorf("%w: unknown mode %q", ErrIntakeInvalidInput, value)
		}
	case "startDate":
		fields.StartDate = value
	case "source":
		fields.Source = value
	case "reason":
		fields.Reason = value
	default:
		return fmt.Errorf("%w: unknown field %q", ErrIntakeInvalidInput, name)
	}
	return nil
}

// Advance validates the current step. On success the step moves forward;
// completing the review step submits the application and attaches the result.
func (s *intakeService) Advance(ctx context.Context, sessionID string) (domain.FormSession, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return domain.FormSession{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if session.Terminal() {
		return domain.FormSession{}, ErrSessionTerminal
	}

	fieldErrors := ValidateStep(session.Step, session.Fields)
	session.FieldErrors = fieldErrors
	session.UpdatedAt = s.clock().UTC()
	if len(fieldErrors) > 0 {
		return snapshot(session), ErrStepValidationFailed
	}

	if session.Step == domain.StepReview {
		return s.submitLocked(ctx, session)
	}

	session.Step++
	return snapshot(session), nil
}

func (s *intakeService) submitLocked(ctx context.Context, session *domain.FormSession) (domain.FormSession, error) {
	submission, err := s.submissions.Create(ctx, CreateSubmissionCommand{
		RawCategory: session.Context.RawCategory,
		Role:        session.Context.Role,
		Name:        session.Fields.FullName,
		Email:       session.Fields.Email,
		Phone:       session.Fields.Phone,
	})
	persisted := err == nil
	if err != nil && !errors.Is(err, ErrStorageUnavailable) {
		return domain.FormSession{}, err
	}
	if !persisted {
		s.logger(ctx, "submission stored locally only", map[string]any{
			"session_id":    session.ID,
			"submission_id": submission.ID,
		})
	}

	session.Step = domain.StepConfirmation
	session.Result = &domain.SubmissionResult{Submission: submission, Persisted: persisted}
	return snapshot(session), nil
}

// Retreat steps back without validating. Values and outstanding errors are
// kept; the step never goes below the first.
func (s *intakeService) Retreat(ctx context.Context, sessionID string) (domain.FormSession, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return domain.FormSession{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if session.Terminal() {
		return domain.FormSession{}, ErrSessionTerminal
	}
	if session.Step > domain.StepPersonal {
		session.Step--
	}
	session.UpdatedAt = s.clock().UTC()
	return snapshot(session), nil
}

func (s *intakeService) Summary(ctx context.Context, sessionID string) (SummaryExport, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return SummaryExport{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !session.Terminal() || session.Result == nil {
		return SummaryExport{}, ErrSessionNotTerminal
	}
	return renderSummary(*session), nil
}

func (s *intakeService) lookup(sessionID string) (*domain.FormSession, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrIntakeInvalidInput)
	}
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *intakeService) clean(value string) string {
	return s.sanitizer.Sanitize(value)
}

// ValidateStep checks the fields belonging to the given step and returns one
// message per failing field. Steps without inputs validate clean.
func ValidateStep(step int, fields domain.FormFields) map[string]string {
	fieldErrors := map[string]string{}
	switch step {
	case domain.StepPersonal:
		if strings.TrimSpace(fields.FullName) == "" {
			fieldErrors["fullName"] = msgFullNameRequired
		}
		if !emailPattern.MatchString(fields.Email) {
			fieldErrors["email"] = msgEmailRequired
		}
		if !phonePattern.MatchString(fields.Phone) {
			fieldErrors["phone"] = msgPhoneRequired
		}
	case domain.StepBackground:
		if fields.Status == domain.ApplicantStatusStudent && strings.TrimSpace(fields.College) == "" {
			fieldErrors["college"] = msgCollegeRequired
		}
		if strings.TrimSpace(fields.StartDate) == "" {
			fieldErrors["startDate"] = msgStartDateRequired
		}
	case domain.StepReview:
		if strings.TrimSpace(fields.Reason) == "" {
			fieldErrors["reason"] = msgReasonRequired
		}
	}
	return fieldErrors
}

func snapshot(session *domain.FormSession) domain.FormSession {
	copied := *session
	copied.FieldErrors = make(map[string]string, len(session.FieldErrors))
	for k, v := range session.FieldErrors {
		copied.FieldErrors[k] = v
	}
	if session.Result != nil {
		result := *session.Result
		copied.Result = &result
	}
	return copied
}

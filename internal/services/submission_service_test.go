package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/wisecrew/api/internal/domain"
)

type fakeSubmissionRepository struct {
	submissions []domain.Submission
	insertErr   error
	existsIDs   map[string]bool
}

func (f *fakeSubmissionRepository) Insert(_ context.Context, submission domain.Submission) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.submissions = append([]domain.Submission{submission}, f.submissions...)
	return nil
}

func (f *fakeSubmissionRepository) List(_ context.Context, page domain.Pagination) (domain.CursorPage[domain.Submission], error) {
	return domain.CursorPage[domain.Submission]{Items: f.submissions}, nil
}

func (f *fakeSubmissionRepository) ListAll(context.Context) ([]domain.Submission, error) {
	return f.submissions, nil
}

func (f *fakeSubmissionRepository) Exists(_ context.Context, id string) (bool, error) {
	return f.existsIDs[id], nil
}

type unavailableRepoError struct{ msg string }

func (e *unavailableRepoError) Error() string       { return e.msg }
func (e *unavailableRepoError) IsNotFound() bool    { return false }
func (e *unavailableRepoError) IsConflict() bool    { return false }
func (e *unavailableRepoError) IsUnavailable() bool { return true }

func newSubmissionServiceForTest(t *testing.T, repo *fakeSubmissionRepository) SubmissionService {
	t.Helper()
	svc, err := NewSubmissionService(SubmissionServiceDeps{
		Repo:  repo,
		Clock: func() time.Time { return time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewSubmissionService returned error: %v", err)
	}
	return svc
}

func TestCreateGeneratesWellFormedIDs(t *testing.T) {
	repo := &fakeSubmissionRepository{}
	svc := newSubmissionServiceForTest(t, repo)
	pattern := regexp.MustCompile(`^WISE-(INT|JOB|CRS|WS|SVC|APP)-\d{8}-\d{4}$`)

	categories := []string{"Internship", "Job", "Course", "Workshop", "Service", "Bootcamp", ""}
	for i := 0; i < 100; i++ {
		submission, err := svc.Create(context.Background(), CreateSubmissionCommand{
			RawCategory: categories[i%len(categories)],
			Role:        "Frontend Developer (React)",
			Name:        fmt.Sprintf("Applicant %d", i),
			Email:       "applicant@example.com",
			Phone:       "9876543210",
		})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if !pattern.MatchString(submission.ID) {
			t.Fatalf("malformed id: %s", submission.ID)
		}
	}
}

func TestCreateCategoryPrefixes(t *testing.T) {
	cases := []struct {
		raw    string
		prefix string
		want   domain.Category
	}{
		{"Internship", "INT", domain.CategoryInternship},
		{"Job", "JOB", domain.CategoryJob},
		{"Course", "CRS", domain.CategoryCourse},
		{"Workshop", "WS", domain.CategoryWorkshop},
		{"Service", "SVC", domain.CategoryService},
		{"Bootcamp", "APP", domain.CategoryInternship},
		{"", "INT", domain.CategoryInternship},
	}

	for _, tc := range cases {
		repo := &fakeSubmissionRepository{}
		svc := newSubmissionServiceForTest(t, repo)
		submission, err := svc.Create(context.Background(), CreateSubmissionCommand{
			RawCategory: tc.raw,
			Name:        "Asha Verma",
			Email:       "asha@example.com",
			Phone:       "9876543210",
		})
		if err != nil {
			t.Fatalf("Create(%q) returned error: %v", tc.raw, err)
		}
		wantPrefix := "WISE-" + tc.prefix + "-20250615-"
		if len(submission.ID) < len(wantPrefix) || submission.ID[:len(wantPrefix)] != wantPrefix {
			t.Fatalf("Create(%q): unexpected id %s, want prefix %s", tc.raw, submission.ID, wantPrefix)
		}
		if submission.Category != tc.want {
			t.Fatalf("Create(%q): unexpected category %s", tc.raw, submission.Category)
		}
	}
}

func TestCreateDefaultsRoleAndStatus(t *testing.T) {
	repo := &fakeSubmissionRepository{}
	svc := newSubmissionServiceForTest(t, repo)

	submission, err := svc.Create(context.Background(), CreateSubmissionCommand{
		RawCategory: "Internship",
		Name:        "Asha Verma",
		Email:       "asha@example.com",
		Phone:       "9876543210",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if submission.Role != "General" {
		t.Fatalf("unexpected role: %s", submission.Role)
	}
	if submission.Status != domain.SubmissionStatusSubmitted {
		t.Fatalf("unexpected status: %s", submission.Status)
	}
	if submission.SubmittedAt == "" {
		t.Fatal("expected submission date to be set")
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := newSubmissionServiceForTest(t, &fakeSubmissionRepository{})

	_, err := svc.Create(context.Background(), CreateSubmissionCommand{RawCategory: "Job"})
	if !errors.Is(err, ErrSubmissionInvalidInput) {
		t.Fatalf("expected ErrSubmissionInvalidInput, got %v", err)
	}
}

func TestCreateSurvivesStorageFailure(t *testing.T) {
	repo := &fakeSubmissionRepository{insertErr: &unavailableRepoError{msg: "disk gone"}}
	svc := newSubmissionServiceForTest(t, repo)

	submission, err := svc.Create(context.Background(), CreateSubmissionCommand{
		RawCategory: "Internship",
		Name:        "Asha Verma",
		Email:       "asha@example.com",
		Phone:       "9876543210",
	})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if submission.ID == "" {
		t.Fatal("submission id must be assigned despite storage failure")
	}
	if len(repo.submissions) != 0 {
		t.Fatal("record should not be stored")
	}
}

func TestCreateRerollsCollidingIDs(t *testing.T) {
	repo := &fakeSubmissionRepository{existsIDs: map[string]bool{}}
	rolls := []int{1111, 1111, 2222}
	idx := 0
	svc, err := NewSubmissionService(SubmissionServiceDeps{
		Repo:  repo,
		Clock: func() time.Time { return time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC) },
		RandomDigits: func() int {
			n := rolls[idx%len(rolls)]
			idx++
			return n
		},
	})
	if err != nil {
		t.Fatalf("NewSubmissionService returned error: %v", err)
	}
	repo.existsIDs["WISE-INT-20250615-1111"] = true

	submission, err := svc.Create(context.Background(), CreateSubmissionCommand{
		RawCategory: "Internship",
		Name:        "Asha Verma",
		Email:       "asha@example.com",
		Phone:       "9876543210",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if submission.ID != "WISE-INT-20250615-2222" {
		t.Fatalf("expected re-rolled id, got %s", submission.ID)
	}
}

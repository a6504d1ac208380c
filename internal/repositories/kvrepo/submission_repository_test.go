package kvrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wisecrew/api/internal/domain"
	"github.com/wisecrew/api/internal/platform/kv"
	"github.com/wisecrew/api/internal/repositories"
)

func sampleSubmission(id string, created time.Time) domain.Submission {
	return domain.Submission{
		ID:          id,
		Category:    domain.CategoryInternship,
		Role:        "Frontend Developer Intern",
		Name:        "Asha Verma",
		Email:       "asha@example.com",
		Phone:       "9876543210",
		SubmittedAt: "01/06/2025",
		Status:      domain.SubmissionStatusSubmitted,
		CreatedAt:   created,
	}
}

func TestInsertPrependsNewestFirst(t *testing.T) {
	repo, err := NewSubmissionRepository(kv.NewMemoryStore(), "wisecrew_apps")
	if err != nil {
		t.Fatalf("NewSubmissionRepository returned error: %v", err)
	}
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"WISE-INT-20250601-1001", "WISE-JOB-20250601-1002", "WISE-CRS-20250601-1003"} {
		if err := repo.Insert(ctx, sampleSubmission(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Insert returned error: %v", err)
		}
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("unexpected count: %d", len(all))
	}
	if all[0].ID != "WISE-CRS-20250601-1003" || all[2].ID != "WISE-INT-20250601-1001" {
		t.Fatalf("unexpected order: %s, %s, %s", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestListPaginates(t *testing.T) {
	repo, err := NewSubmissionRepository(kv.NewMemoryStore(), "wisecrew_apps")
	if err != nil {
		t.Fatalf("NewSubmissionRepository returned error: %v", err)
	}
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	ids := []string{"WISE-INT-20250601-1001", "WISE-INT-20250601-1002", "WISE-INT-20250601-1003"}
	for i, id := range ids {
		if err := repo.Insert(ctx, sampleSubmission(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Insert returned error: %v", err)
		}
	}

	first, err := repo.List(ctx, domain.Pagination{PageSize: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(first.Items) != 2 {
		t.Fatalf("unexpected first page size: %d", len(first.Items))
	}
	if first.NextPageToken == "" {
		t.Fatal("expected next page token")
	}

	second, err := repo.List(ctx, domain.Pagination{PageSize: 2, PageToken: first.NextPageToken})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(second.Items) != 1 {
		t.Fatalf("unexpected second page size: %d", len(second.Items))
	}
	if second.NextPageToken != "" {
		t.Fatalf("unexpected next token: %s", second.NextPageToken)
	}
	if second.Items[0].ID != "WISE-INT-20250601-1001" {
		t.Fatalf("unexpected last item: %s", second.Items[0].ID)
	}
}

func TestExists(t *testing.T) {
	repo, err := NewSubmissionRepository(kv.NewMemoryStore(), "wisecrew_apps")
	if err != nil {
		t.Fatalf("NewSubmissionRepository returned error: %v", err)
	}
	ctx := context.Background()

	ok, err := repo.Exists(ctx, "WISE-INT-20250601-1001")
	if err != nil {
		t.Fatalf("Exists returned error: %v", err)
	}
	if ok {
		t.Fatal("expected id to be absent")
	}

	if err := repo.Insert(ctx, sampleSubmission("WISE-INT-20250601-1001", time.Now())); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	ok, err = repo.Exists(ctx, "WISE-INT-20250601-1001")
	if err != nil {
		t.Fatalf("Exists returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected id to be present")
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) {
	return "", errors.Join(kv.ErrUnavailable, errors.New("disk gone"))
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.Join(kv.ErrUnavailable, errors.New("disk gone"))
}

func TestStorageFailureIsUnavailable(t *testing.T) {
	repo, err := NewSubmissionRepository(failingStore{}, "wisecrew_apps")
	if err != nil {
		t.Fatalf("NewSubmissionRepository returned error: %v", err)
	}

	insertErr := repo.Insert(context.Background(), sampleSubmission("WISE-INT-20250601-1001", time.Now()))
	if insertErr == nil {
		t.Fatal("expected error from failing store")
	}
	if !repositories.IsUnavailable(insertErr) {
		t.Fatalf("expected unavailable semantics, got %v", insertErr)
	}
}

// Package firestorerepo implements the submission store on Firestore with
// one document per record. Appends are atomic document creates, so
// concurrent submissions never overwrite each other.
package firestorerepo

import (
	"context"
	"errors"
	"time"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/wisecrew/api/internal/domain"
	platformfs "github.com/wisecrew/api/internal/platform/firestore"
	"github.com/wisecrew/api/internal/platform/pagination"
)

const submissionsCollection = "submissions"

type submissionDocument struct {
	ID          string    `firestore:"id"`
	Category    string    `firestore:"category"`
	Role        string    `firestore:"role"`
	Name        string    `firestore:"name"`
	Email       string    `firestore:"email"`
	Phone       string    `firestore:"phone"`
	SubmittedAt string    `firestore:"submittedAt"`
	Status      string    `firestore:"status"`
	CreatedAt   time.Time `firestore:"createdAt"`
}

func toDocument(s domain.Submission) submissionDocument {
	return submissionDocument{
		ID:          s.ID,
		Category:    string(s.Category),
		Role:        s.Role,
		Name:        s.Name,
		Email:       s.Email,
		Phone:       s.Phone,
		SubmittedAt: s.SubmittedAt,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt.UTC(),
	}
}

func fromDocument(d submissionDocument) domain.Submission {
	return domain.Submission{
		ID:          d.ID,
		Category:    domain.Category(d.Category),
		Role:        d.Role,
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		SubmittedAt: d.SubmittedAt,
		Status:      domain.SubmissionStatus(d.Status),
		CreatedAt:   d.CreatedAt,
	}
}

// SubmissionRepository stores submissions in the submissions collection.
type SubmissionRepository struct {
	provider *platformfs.Provider
}

// NewSubmissionRepository wires the repository to the shared client provider.
func NewSubmissionRepository(provider *platformfs.Provider) (*SubmissionRepository, error) {
	if provider == nil {
		return nil, errors.New("firestorerepo: provider is required")
	}
	return &SubmissionRepository{provider: provider}, nil
}

func (r *SubmissionRepository) collection(ctx context.Context) (*fs.CollectionRef, error) {
	client, err := r.provider.Client(ctx)
	if err != nil {
		return nil, platformfs.WrapError("firestorerepo: client", err)
	}
	return client.Collection(submissionsCollection), nil
}

// Insert creates the document keyed by the submission id.
func (r *SubmissionRepository) Insert(ctx context.Context, submission domain.Submission) error {
	col, err := r.collection(ctx)
	if err != nil {
		return err
	}
	_, err = col.Doc(submission.ID).Create(ctx, toDocument(submission))
	if err != nil {
		return platformfs.WrapError("firestorerepo: insert submission", err)
	}
	return nil
}

// ListAll returns all submissions, newest first.
func (r *SubmissionRepository) ListAll(ctx context.Context) ([]domain.Submission, error) {
	col, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, col.OrderBy("createdAt", fs.Desc).Documents(ctx))
}

// List returns one page of submissions using offset cursor tokens.
func (r *SubmissionRepository) List(ctx context.Context, page domain.Pagination) (domain.CursorPage[domain.Submission], error) {
	col, err := r.collection(ctx)
	if err != nil {
		return domain.CursorPage[domain.Submission]{}, err
	}

	offset, err := pagination.DecodeOffsetToken(page.PageToken)
	if err != nil {
		return domain.CursorPage[domain.Submission]{}, platformfs.WrapError("firestorerepo: list submissions", err)
	}
	size := page.PageSize
	if size <= 0 {
		size = pagination.DefaultPageSize
	}

	query := col.OrderBy("createdAt", fs.Desc).Offset(offset).Limit(size + 1)
	items, err := r.collect(ctx, query.Documents(ctx))
	if err != nil {
		return domain.CursorPage[domain.Submission]{}, err
	}

	result := domain.CursorPage[domain.Submission]{Items: items}
	if len(items) > size {
		result.Items = items[:size]
		result.NextPageToken = pagination.EncodeOffsetToken(offset + size)
	}
	return result, nil
}

// Exists reports whether the submission id already has a document.
func (r *SubmissionRepository) Exists(ctx context.Context, id string) (bool, error) {
	col, err := r.collection(ctx)
	if err != nil {
		return false, err
	}
	_, err = col.Doc(id).Get(ctx)
	if err != nil {
		wrapped := platformfs.WrapError("firestorerepo: lookup submission", err)
		var repoErr *platformfs.Error
		if errors.As(wrapped, &repoErr) && repoErr.IsNotFound() {
			return false, nil
		}
		return false, wrapped
	}
	return true, nil
}

func (r *SubmissionRepository) collect(ctx context.Context, iter *fs.DocumentIterator) ([]domain.Submission, error) {
	defer iter.Stop()

	var submissions []domain.Submission
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, platformfs.WrapError("firestorerepo: iterate submissions", err)
		}
		var d submissionDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, platformfs.WrapError("firestorerepo: decode submission", err)
		}
		submissions = append(submissions, fromDocument(d))
	}
	return submissions, nil
}

// Package kvrepo implements the submission store on top of the key-value
// boundary: the entire collection is serialised as one JSON document under a
// single key, newest record first.
package kvrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wisecrew/api/internal/domain"
	"github.com/wisecrew/api/internal/platform/kv"
	"github.com/wisecrew/api/internal/platform/pagination"
)

// storeError categorises kv failures with repository semantics.
type storeError struct {
	op          string
	err         error
	unavailable bool
}

func (e *storeError) Error() string {
	return fmt.Sprintf("%s: %v", e.op, e.err)
}

func (e *storeError) Unwrap() error       { return e.err }
func (e *storeError) IsNotFound() bool    { return false }
func (e *storeError) IsConflict() bool    { return false }
func (e *storeError) IsUnavailable() bool { return e.unavailable }

func wrapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &storeError{op: op, err: err, unavailable: errors.Is(err, kv.ErrUnavailable)}
}

// SubmissionRepository reads and writes the serialised submission list.
type SubmissionRepository struct {
	store kv.Store
	key   string
}

// NewSubmissionRepository binds the repository to its store and key.
func NewSubmissionRepository(store kv.Store, key string) (*SubmissionRepository, error) {
	if store == nil {
		return nil, errors.New("kvrepo: store is required")
	}
	if key == "" {
		return nil, errors.New("kvrepo: key is required")
	}
	return &SubmissionRepository{store: store, key: key}, nil
}

func (r *SubmissionRepository) load(ctx context.Context) ([]domain.Submission, error) {
	raw, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, wrapStoreError("kvrepo: load submissions", err)
	}
	var submissions []domain.Submission
	if err := json.Unmarshal([]byte(raw), &submissions); err != nil {
		return nil, wrapStoreError("kvrepo: decode submissions", err)
	}
	return submissions, nil
}

// Insert prepends the submission so listings stay newest first.
func (r *SubmissionRepository) Insert(ctx context.Context, submission domain.Submission) error {
	existing, err := r.load(ctx)
	if err != nil {
		return err
	}
	updated := make([]domain.Submission, 0, len(existing)+1)
	updated = append(updated, submission)
	updated = append(updated, existing...)

	data, err := json.Marshal(updated)
	if err != nil {
		return wrapStoreError("kvrepo: encode submissions", err)
	}
	if err := r.store.Set(ctx, r.key, string(data)); err != nil {
		return wrapStoreError("kvrepo: save submissions", err)
	}
	return nil
}

// ListAll returns every stored submission in stored order.
func (r *SubmissionRepository) ListAll(ctx context.Context) ([]domain.Submission, error) {
	return r.load(ctx)
}

// List returns one page of submissions using offset cursor tokens.
func (r *SubmissionRepository) List(ctx context.Context, page domain.Pagination) (domain.CursorPage[domain.Submission], error) {
	all, err := r.load(ctx)
	if err != nil {
		return domain.CursorPage[domain.Submission]{}, err
	}

	offset, err := pagination.DecodeOffsetToken(page.PageToken)
	if err != nil {
		return domain.CursorPage[domain.Submission]{}, wrapStoreError("kvrepo: list submissions", err)
	}
	size := page.PageSize
	if size <= 0 {
		size = pagination.DefaultPageSize
	}
	if offset >= len(all) {
		return domain.CursorPage[domain.Submission]{}, nil
	}

	end := offset + size
	if end > len(all) {
		end = len(all)
	}
	result := domain.CursorPage[domain.Submission]{Items: all[offset:end]}
	if end < len(all) {
		result.NextPageToken = pagination.EncodeOffsetToken(end)
	}
	return result, nil
}

// Exists reports whether a submission with the given id is stored.
func (r *SubmissionRepository) Exists(ctx context.Context, id string) (bool, error) {
	all, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	for _, submission := range all {
		if submission.ID == id {
			return true, nil
		}
	}
	return false, nil
}

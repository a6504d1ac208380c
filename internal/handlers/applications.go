package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wisecrew/api/internal/domain"
	"github.com/wisecrew/api/internal/platform/httpx"
	"github.com/wisecrew/api/internal/platform/pagination"
	"github.com/wisecrew/api/internal/platform/requestctx"
	"github.com/wisecrew/api/internal/services"
)

// ApplicationHandlers serves the stored submission feed.
type ApplicationHandlers struct {
	svc services.SubmissionService
}

// NewApplicationHandlers wires the handler set to the submission service.
func NewApplicationHandlers(svc services.SubmissionService) *ApplicationHandlers {
	return &ApplicationHandlers{svc: svc}
}

// Routes registers the public feed, newest submission first.
func (h *ApplicationHandlers) Routes(r chi.Router) {
	r.Get("/", h.listAll)
}

// AdminRoutes registers the paginated staff view.
func (h *ApplicationHandlers) AdminRoutes(r chi.Router) {
	r.Get("/applications", h.list)
}

type applicationListResponse struct {
	Applications  []submissionPayload `json:"applications"`
	NextPageToken string              `json:"nextPageToken,omitempty"`
}

func (h *ApplicationHandlers) listAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	submissions, err := h.svc.ListAll(ctx)
	if err != nil {
		writeApplicationError(ctx, w, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusOK, applicationListResponse{
		Applications: buildSubmissionPayloads(submissions),
	})
}

func (h *ApplicationHandlers) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params, err := pagination.Parse(r.URL.Query())
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	page, err := h.svc.List(ctx, domain.Pagination{
		PageSize:  params.PageSize,
		PageToken: params.PageToken,
	})
	if err != nil {
		writeApplicationError(ctx, w, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusOK, applicationListResponse{
		Applications:  buildSubmissionPayloads(page.Items),
		NextPageToken: page.NextPageToken,
	})
}

func buildSubmissionPayloads(submissions []domain.Submission) []submissionPayload {
	payloads := make([]submissionPayload, 0, len(submissions))
	for _, submission := range submissions {
		payloads = append(payloads, buildSubmissionPayload(submission))
	}
	return payloads
}

func writeApplicationError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrStorageUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("storage_unavailable", "submission storage is unavailable", http.StatusServiceUnavailable))
	case errors.Is(err, services.ErrSubmissionInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	default:
		requestctx.Logger(ctx).Error("application request failed", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", "internal server error", http.StatusInternalServerError))
	}
}

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wisecrew/api/internal/platform/httpx"
	"github.com/wisecrew/api/internal/platform/requestctx"
	"github.com/wisecrew/api/internal/services"
)

// CatalogHandlers serves the marketing catalog read endpoints.
type CatalogHandlers struct {
	svc services.CatalogService
}

// NewCatalogHandlers wires the handler set to the catalog service.
func NewCatalogHandlers(svc services.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{svc: svc}
}

// Routes registers the catalog endpoints.
func (h *CatalogHandlers) Routes(r chi.Router) {
	r.Get("/internships", h.internships)
	r.Get("/jobs", h.jobs)
	r.Get("/jobs/{jobID}", h.jobByID)
	r.Get("/courses", h.courses)
	r.Get("/products", h.products)
	r.Get("/services", h.serviceOfferings)
	r.Get("/workshops", h.workshops)
	r.Get("/faqs", h.faqs)
	r.Get("/testimonials", h.testimonials)
	r.Get("/roles", h.openRoles)
}

func (h *CatalogHandlers) internships(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := h.svc.Internships(ctx)
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusOK, map[string]any{"internships": items})
}

func (h *CatalogHandlers) jobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := h.svc.Jobs(ctx)
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusOK, map[string]any{"jobs": items})
}

func (h *CatalogHandlers) jobByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	job, err := h.svc.JobByID(ctx, chi.URLParam(r, "jobID"))
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusOK, job)
}

func (h *CatalogHandlers) courses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := h.svc.Courses(ctx)
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusOK, map[string]any{"courses": items})
}

func (h *CatalogHandlers) products(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := h.svc.Products(ctx)
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusOK, map[string]any{"products": items})
}

func (h *CatalogHandlers) serviceOfferings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := h.svc.ServiceOfferings(ctx)
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusOK, map[string]any{"services": items})
}

func (h *CatalogHandlers) workshops(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := h.svc.Workshops(ctx)
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusOK, map[string]any{"workshops": items})
}

func (h *CatalogHandlers) faqs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := h.svc.FAQs(ctx)
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusOK, map[string]any{"faqs": items})
}

func (h *CatalogHandlers) testimonials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := h.svc.Testimonials(ctx)
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusOK, map[string]any{"testimonials": items})
}

func (h *CatalogHandlers) openRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := h.svc.OpenRoles(ctx)
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusOK, map[string]any{"roles": items})
}

func writeCatalogError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrCatalogNotFound) {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_not_found", "catalog entry not found", http.StatusNotFound))
		return
	}
	requestctx.Logger(ctx).Error("catalog request failed", zap.Error(err))
	httpx.WriteError(ctx, w, httpx.NewError("internal_error", "internal server error", http.StatusInternalServerError))
}

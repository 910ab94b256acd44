package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/securefront/workforce-backend-go/internal/domain/site"
	"github.com/securefront/workforce-backend-go/internal/handler/http/response"
)

type SiteHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateBoundary(w http.ResponseWriter, r *http.Request)
	VerifyLocation(w http.ResponseWriter, r *http.Request)
}

type siteHandlerImpl struct {
	siteService site.SiteService
}

func NewSiteHandler(siteService site.SiteService) SiteHandler {
	return &siteHandlerImpl{
		siteService: siteService,
	}
}

// List implements SiteHandler.
func (h *siteHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	result, err := h.siteService.List(r.Context(), id.AgencyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements SiteHandler.
func (h *siteHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	var req site.CreateSiteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.AgencyID = id.AgencyID

	result, err := h.siteService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Site created successfully", result)
}

// Get implements SiteHandler.
func (h *siteHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	result, err := h.siteService.Get(r.Context(), id.AgencyID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateBoundary implements SiteHandler.
func (h *siteHandlerImpl) UpdateBoundary(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	var req site.UpdateBoundaryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.AgencyID = id.AgencyID
	req.SiteID = chi.URLParam(r, "id")

	result, err := h.siteService.UpdateBoundary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Boundary updated successfully", result)
}

// VerifyLocation implements SiteHandler.
func (h *siteHandlerImpl) VerifyLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	var req site.VerifyLocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.AgencyID = id.AgencyID
	req.SiteID = chi.URLParam(r, "id")

	result, err := h.siteService.VerifyLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

package trippackage

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tripcrew/tripcrew/pkg/middleware"
	"github.com/tripcrew/tripcrew/pkg/response"
	"github.com/tripcrew/tripcrew/pkg/validation"
)

// Handler handles HTTP requests for trip package operations
type Handler struct {
	service *Service
}

// NewHandler creates a new trip package handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for trip package endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Post("/{id}/apply", h.Apply)

	return r
}

// Create handles POST /packages
// @Summary      Create a trip package
// @Description  Create a reusable itinerary template with its items
// @Tags         packages
// @Accept       json
// @Produce      json
// @Param        request body CreatePackageRequest true "Package creation request"
// @Success      201 {object} response.APIResponse{data=PackageResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /packages [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "Failed to create trip package")
		return
	}

	response.JSON(w, http.StatusCreated, toResponseWithItems(result))
}

// List handles GET /packages
// @Summary      List trip packages
// @Tags         packages
// @Produce      json
// @Param        destination query string false "Filter by destination"
// @Success      200 {object} response.APIResponse{data=[]PackageResponse}
// @Router       /packages [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.List(r.Context(), r.URL.Query().Get("destination"))
	if err != nil {
		response.InternalError(w, "Failed to list trip packages")
		return
	}

	resp := make([]*PackageResponse, len(packages))
	for i, p := range packages {
		resp[i] = p.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}

// GetByID handles GET /packages/{id}
// @Summary      Get trip package by ID
// @Tags         packages
// @Produce      json
// @Param        id path int true "Package ID"
// @Success      200 {object} response.APIResponse{data=PackageResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /packages/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid package ID")
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get trip package")
		return
	}

	response.JSON(w, http.StatusOK, toResponseWithItems(result))
}

// Apply handles POST /packages/{id}/apply
// @Summary      Apply a trip package to a group
// @Description  Copy the package's template items into the group's itinerary
// @Tags         packages
// @Accept       json
// @Produce      json
// @Param        id path int true "Package ID"
// @Param        request body ApplyPackageRequest true "Apply request"
// @Success      201 {object} response.APIResponse{data=AppliedPackageResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /packages/{id}/apply [post]
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing member identity")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid package ID")
		return
	}

	var req ApplyPackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	applied, itemsAdded, err := h.service.Apply(r.Context(), id, memberID, &req)
	if err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to apply trip package")
		return
	}

	response.JSON(w, http.StatusCreated, &AppliedPackageResponse{
		ID:         applied.ID,
		GroupID:    applied.GroupID,
		PackageID:  applied.PackageID,
		AppliedBy:  applied.AppliedBy,
		AppliedAt:  applied.AppliedAt.Format("2006-01-02T15:04:05Z"),
		ItemsAdded: itemsAdded,
	})
}

func toResponseWithItems(result *PackageWithItems) *PackageResponse {
	resp := result.Package.ToResponse()
	resp.Items = make([]*PackageItemResponse, len(result.Items))
	for i, item := range result.Items {
		resp.Items[i] = item.ToResponse()
	}
	return resp
}

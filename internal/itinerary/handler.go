package itinerary

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tripcrew/tripcrew/pkg/response"
	"github.com/tripcrew/tripcrew/pkg/validation"
)

// Handler handles HTTP requests for itinerary operations
type Handler struct {
	service *Service
}

// NewHandler creates a new itinerary handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for itinerary endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Get("/group/{groupId}", h.ListByGroup)

	return r
}

// Create handles POST /itinerary
// @Summary      Add an itinerary item
// @Tags         itinerary
// @Accept       json
// @Produce      json
// @Param        request body CreateItemRequest true "Item creation request"
// @Success      201 {object} response.APIResponse{data=ItemResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /itinerary [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "Failed to create itinerary item")
		return
	}

	response.JSON(w, http.StatusCreated, item.ToResponse())
}

// GetByID handles GET /itinerary/{id}
// @Summary      Get itinerary item by ID
// @Tags         itinerary
// @Produce      json
// @Param        id path int true "Item ID"
// @Success      200 {object} response.APIResponse{data=ItemResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /itinerary/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get itinerary item")
		return
	}

	response.JSON(w, http.StatusOK, item.ToResponse())
}

// ListByGroup handles GET /itinerary/group/{groupId}
// @Summary      List a group's itinerary
// @Description  Items ordered by day
// @Tags         itinerary
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]ItemResponse}
// @Router       /itinerary/group/{groupId} [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	items, err := h.service.ListByGroupID(r.Context(), groupID)
	if err != nil {
		response.InternalError(w, "Failed to list itinerary items")
		return
	}

	resp := make([]*ItemResponse, len(items))
	for i, item := range items {
		resp[i] = item.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}

// Update handles PUT /itinerary/{id}
// @Summary      Update an itinerary item
// @Tags         itinerary
// @Accept       json
// @Produce      json
// @Param        id path int true "Item ID"
// @Param        request body UpdateItemRequest true "Item update request"
// @Success      200 {object} response.APIResponse{data=ItemResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /itinerary/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	item, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update itinerary item")
		return
	}

	response.JSON(w, http.StatusOK, item.ToResponse())
}

// Delete handles DELETE /itinerary/{id}
// @Summary      Delete an itinerary item
// @Tags         itinerary
// @Param        id path int true "Item ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /itinerary/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete itinerary item")
		return
	}

	response.JSON(w, http.StatusOK, nil)
}

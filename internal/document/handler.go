package document

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tripcrew/tripcrew/pkg/middleware"
	"github.com/tripcrew/tripcrew/pkg/response"
)

// Handler handles HTTP requests for document operations
type Handler struct {
	service *Service
}

// NewHandler creates a new document handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for document endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Upload)
	r.Get("/{id}", h.GetByID)
	r.Get("/{id}/download", h.Download)
	r.Delete("/{id}", h.Delete)
	r.Get("/group/{groupId}", h.ListByGroup)

	return r
}

// Upload handles POST /documents
// @Summary      Upload a document
// @Description  Upload a trip document as multipart form data (fields: group_id, file)
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        group_id formData int true "Group ID"
// @Param        file formData file true "Document file"
// @Success      201 {object} response.APIResponse{data=DocumentResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /documents [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	uploaderID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing member identity")
		return
	}

	if err := r.ParseMultipartForm(MaxSizeBytes); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	groupID, err := strconv.ParseInt(r.FormValue("group_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxSizeBytes+1))
	if err != nil {
		response.InternalError(w, "Failed to read file")
		return
	}

	doc, err := h.service.Upload(r.Context(), groupID, uploaderID, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		if errors.Is(err, ErrEmptyDocument) || errors.Is(err, ErrTooLarge) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to upload document")
		return
	}

	response.JSON(w, http.StatusCreated, doc.ToResponse())
}

// GetByID handles GET /documents/{id}
// @Summary      Get document metadata by ID
// @Tags         documents
// @Produce      json
// @Param        id path int true "Document ID"
// @Success      200 {object} response.APIResponse{data=DocumentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /documents/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid document ID")
		return
	}

	doc, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get document")
		return
	}

	response.JSON(w, http.StatusOK, doc.ToResponse())
}

// Download handles GET /documents/{id}/download
// @Summary      Download a document
// @Description  Stream the document bytes with their original content type
// @Tags         documents
// @Produce      octet-stream
// @Param        id path int true "Document ID"
// @Success      200 {file} file
// @Failure      404 {object} response.APIResponse
// @Router       /documents/{id}/download [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid document ID")
		return
	}

	doc, data, err := h.service.Download(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to download document")
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ListByGroup handles GET /documents/group/{groupId}
// @Summary      List documents for a group
// @Tags         documents
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]DocumentResponse}
// @Router       /documents/group/{groupId} [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	documents, err := h.service.ListByGroupID(r.Context(), groupID)
	if err != nil {
		response.InternalError(w, "Failed to list documents")
		return
	}

	resp := make([]*DocumentResponse, len(documents))
	for i, d := range documents {
		resp[i] = d.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /documents/{id}
// @Summary      Delete a document
// @Tags         documents
// @Param        id path int true "Document ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /documents/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing member identity")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid document ID")
		return
	}

	if err := h.service.Delete(r.Context(), id, actorID); err != nil {
		switch {
		case errors.Is(err, ErrDocumentNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotUploader):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to delete document")
		}
		return
	}

	response.JSON(w, http.StatusOK, nil)
}

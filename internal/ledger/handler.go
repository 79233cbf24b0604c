package ledger

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tripcrew/tripcrew/internal/group"
	"github.com/tripcrew/tripcrew/pkg/response"
)

// Handler handles HTTP requests for balance and settlement views. Its
// endpoints live under the group subtree, so instead of owning a router it
// exposes handler funcs the group router picks up.
type Handler struct {
	service *Service
}

// NewHandler creates a new ledger handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Balances handles GET /groups/{id}/balances
// @Summary      Get group balances
// @Description  Per-member net balances for a group in one currency
// @Tags         balances
// @Produce      json
// @Param        id path int true "Group ID"
// @Param        currency query string false "Currency (defaults to the group's)"
// @Success      200 {object} response.APIResponse{data=BalancesResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/balances [get]
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	balances, currency, err := h.service.Balances(r.Context(), groupID, r.URL.Query().Get("currency"))
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute balances")
		return
	}

	resp := &BalancesResponse{
		GroupID:  groupID,
		Currency: currency,
		Balances: make([]*BalanceResponse, len(balances)),
	}
	for i, b := range balances {
		resp.Balances[i] = b.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}

// Settlements handles GET /groups/{id}/settlements
// @Summary      Get settlement suggestions
// @Description  Transfers that would settle every balance in the group
// @Tags         balances
// @Produce      json
// @Param        id path int true "Group ID"
// @Param        currency query string false "Currency (defaults to the group's)"
// @Success      200 {object} response.APIResponse{data=SettlementsResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/settlements [get]
func (h *Handler) Settlements(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	transfers, currency, err := h.service.Settlements(r.Context(), groupID, r.URL.Query().Get("currency"))
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute settlements")
		return
	}

	resp := &SettlementsResponse{
		GroupID:   groupID,
		Currency:  currency,
		Transfers: make([]*TransferResponse, len(transfers)),
	}
	for i := range transfers {
		resp.Transfers[i] = transfers[i].ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}

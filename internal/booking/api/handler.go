package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"train-ticketing/internal/auth"
	"train-ticketing/internal/booking"
	"train-ticketing/internal/logger"
	"train-ticketing/internal/models"
	"train-ticketing/internal/utils"
)

type Handler struct {
	OrderService *booking.OrderService
	Logger       *logger.Logger
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("unauthorized", nil))
		return
	}

	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", map[string]string{
			"detail": err.Error(),
		}))
		return
	}

	order, err := h.OrderService.PlaceOrder(r.Context(), userID, req.Tickets)
	if err != nil {
		h.renderError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, utils.SuccessResponse("order created", order))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	order, err := h.OrderService.GetOrder(r.Context(), orderID)
	if err != nil {
		h.renderError(w, err)
		return
	}
	if order.UserID != auth.UserID(r.Context()) {
		writeJSON(w, http.StatusForbidden, utils.ErrorResponse("order belongs to another user", nil))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("order", order))
}

func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	orders, err := h.OrderService.ListUserOrders(r.Context(), userID)
	if err != nil {
		h.renderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("orders", orders))
}

func (h *Handler) GetJourneySeats(w http.ResponseWriter, r *http.Request) {
	journeyID, err := strconv.ParseInt(chi.URLParam(r, "journeyId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid journey id", map[string]string{
			"journey": "journey id must be an integer",
		}))
		return
	}

	seatMap, err := h.OrderService.JourneySeatMap(r.Context(), journeyID)
	if err != nil {
		h.renderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("seat map", seatMap))
}

// renderError maps domain errors onto field-keyed 4xx responses; anything
// unrecognized is a 500 without leaking storage details.
func (h *Handler) renderError(w http.ResponseWriter, err error) {
	var invalidSeat *booking.InvalidSeatError
	var conflict *booking.SeatConflictError

	switch {
	case errors.Is(err, booking.ErrEmptyOrder):
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("validation failed", map[string]string{
			"tickets": "order must contain at least one ticket",
		}))
	case errors.As(err, &invalidSeat):
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("validation failed", invalidSeat.Fields))
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusConflict, utils.ErrorResponse("seat conflict", map[string]string{
			"seat": conflict.Error(),
		}))
	case errors.Is(err, booking.ErrJourneyNotFound):
		writeJSON(w, http.StatusNotFound, utils.ErrorResponse("journey not found", map[string]string{
			"journey": "journey does not exist",
		}))
	case errors.Is(err, booking.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, utils.ErrorResponse("order not found", nil))
	default:
		h.Logger.Error("API", fmt.Sprintf("order request failed: %v", err))
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("internal error", nil))
	}
}

func writeJSON(w http.ResponseWriter, status int, body utils.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

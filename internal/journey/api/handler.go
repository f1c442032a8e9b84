package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"train-ticketing/internal/journey"
	"train-ticketing/internal/logger"
	"train-ticketing/internal/models"
	"train-ticketing/internal/utils"
)

type Handler struct {
	JourneyService *journey.JourneyService
	Logger         *logger.Logger
}

func (h *Handler) CreateJourney(w http.ResponseWriter, r *http.Request) {
	var req models.JourneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", map[string]string{
			"detail": err.Error(),
		}))
		return
	}

	created, err := h.JourneyService.CreateJourney(r.Context(), req)
	if err != nil {
		h.renderError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, utils.SuccessResponse("journey created", created))
}

func (h *Handler) GetJourney(w http.ResponseWriter, r *http.Request) {
	journeyID, err := strconv.ParseInt(chi.URLParam(r, "journeyId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid journey id", map[string]string{
			"journey": "journey id must be an integer",
		}))
		return
	}

	j, err := h.JourneyService.GetJourney(r.Context(), journeyID)
	if err != nil {
		h.renderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("journey", j))
}

func (h *Handler) ListJourneys(w http.ResponseWriter, r *http.Request) {
	journeys, err := h.JourneyService.ListUpcoming(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("journeys", journeys))
}

func (h *Handler) renderError(w http.ResponseWriter, err error) {
	var schedule *journey.ScheduleError

	switch {
	case errors.As(err, &schedule):
		status := http.StatusBadRequest
		if schedule.Kind == journey.ScheduleDuplicateJourney {
			status = http.StatusConflict
		}
		writeJSON(w, status, utils.ErrorResponse("validation failed", map[string]string{
			schedule.Field: schedule.Message,
		}))
	case errors.Is(err, journey.ErrRouteNotFound):
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("validation failed", map[string]string{
			"route": "route does not exist",
		}))
	case errors.Is(err, journey.ErrTrainNotFound):
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("validation failed", map[string]string{
			"train": "train does not exist",
		}))
	case errors.Is(err, journey.ErrCrewNotFound):
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("validation failed", map[string]string{
			"workers": err.Error(),
		}))
	case errors.Is(err, journey.ErrJourneyNotFound):
		writeJSON(w, http.StatusNotFound, utils.ErrorResponse("journey not found", nil))
	default:
		h.Logger.Error("API", fmt.Sprintf("journey request failed: %v", err))
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("internal error", nil))
	}
}

func writeJSON(w http.ResponseWriter, status int, body utils.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

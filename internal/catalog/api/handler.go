package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"train-ticketing/internal/catalog"
	"train-ticketing/internal/logger"
	"train-ticketing/internal/models"
	"train-ticketing/internal/utils"
)

type Handler struct {
	CatalogService *catalog.CatalogService
	Logger         *logger.Logger
}

func (h *Handler) CreateStation(w http.ResponseWriter, r *http.Request) {
	var station models.Station
	if !decode(w, r, &station) {
		return
	}
	created, err := h.CatalogService.CreateStation(r.Context(), station)
	if err != nil {
		h.renderError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, utils.SuccessResponse("station created", created))
}

func (h *Handler) ListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.CatalogService.ListStations(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("stations", stations))
}

func (h *Handler) CreateTrainType(w http.ResponseWriter, r *http.Request) {
	var tt models.TrainType
	if !decode(w, r, &tt) {
		return
	}
	created, err := h.CatalogService.CreateTrainType(r.Context(), tt)
	if err != nil {
		h.renderError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, utils.SuccessResponse("train type created", created))
}

func (h *Handler) ListTrainTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.CatalogService.ListTrainTypes(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("train types", types))
}

func (h *Handler) CreateTrain(w http.ResponseWriter, r *http.Request) {
	var train models.Train
	if !decode(w, r, &train) {
		return
	}
	created, err := h.CatalogService.CreateTrain(r.Context(), train)
	if err != nil {
		h.renderError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, utils.SuccessResponse("train created", created))
}

func (h *Handler) GetTrain(w http.ResponseWriter, r *http.Request) {
	trainID, err := strconv.ParseInt(chi.URLParam(r, "trainId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid train id", nil))
		return
	}
	train, err := h.CatalogService.GetTrain(r.Context(), trainID)
	if err != nil {
		h.renderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("train", train))
}

func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var route models.Route
	if !decode(w, r, &route) {
		return
	}
	created, err := h.CatalogService.CreateRoute(r.Context(), route)
	if err != nil {
		h.renderError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, utils.SuccessResponse("route created", created))
}

func (h *Handler) CreateCrew(w http.ResponseWriter, r *http.Request) {
	var crew models.Crew
	if !decode(w, r, &crew) {
		return
	}
	created, err := h.CatalogService.CreateCrew(r.Context(), crew)
	if err != nil {
		h.renderError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, utils.SuccessResponse("crew member created", created))
}

func (h *Handler) ListCrews(w http.ResponseWriter, r *http.Request) {
	crews, err := h.CatalogService.ListCrews(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("crew members", crews))
}

func (h *Handler) renderError(w http.ResponseWriter, err error) {
	var conflict *catalog.ConflictError
	var validation *catalog.ValidationError

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("validation failed", map[string]string{
			validation.Field: validation.Message,
		}))
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusConflict, utils.ErrorResponse(conflict.Error(), nil))
	case errors.Is(err, catalog.ErrStationNotFound),
		errors.Is(err, catalog.ErrTrainTypeNotFound):
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("validation failed", map[string]string{
			"detail": err.Error(),
		}))
	case errors.Is(err, catalog.ErrTrainNotFound),
		errors.Is(err, catalog.ErrRouteNotFound):
		writeJSON(w, http.StatusNotFound, utils.ErrorResponse(err.Error(), nil))
	default:
		h.Logger.Error("API", fmt.Sprintf("catalog request failed: %v", err))
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("internal error", nil))
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", map[string]string{
			"detail": err.Error(),
		}))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body utils.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"train-ticketing/internal/auth"
	"train-ticketing/internal/booking"
	"train-ticketing/internal/booking/api"
	"train-ticketing/internal/logger"
	"train-ticketing/internal/models"
	"train-ticketing/internal/utils"
)

// fakeDB simulates the booking store with an in-memory seat set.
type fakeDB struct {
	journey   *models.Journey
	taken     []models.SeatRef
	orders    map[string]*models.Order
	createErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		journey: &models.Journey{
			ID:      5,
			TrainID: 1,
			Train:   &models.Train{ID: 1, CargoCount: 8, SeatsPerCargo: 56},
		},
		orders: make(map[string]*models.Order),
	}
}

func (f *fakeDB) GetJourneyWithTrain(ctx context.Context, journeyID int64) (*models.Journey, error) {
	if journeyID != f.journey.ID {
		return nil, booking.ErrJourneyNotFound
	}
	return f.journey, nil
}

func (f *fakeDB) GetSeatRefs(ctx context.Context, journeyID int64) ([]models.SeatRef, error) {
	return f.taken, nil
}

func (f *fakeDB) CreateOrderWithTickets(ctx context.Context, order *models.Order, tickets []models.Ticket) error {
	if f.createErr != nil {
		return f.createErr
	}
	stored := *order
	stored.Tickets = tickets
	f.orders[order.OrderID] = &stored
	for _, t := range tickets {
		f.taken = append(f.taken, t.SeatRef())
	}
	return nil
}

func (f *fakeDB) GetOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, booking.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeDB) GetOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	for _, order := range f.orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (f *fakeDB) GetUserEmail(ctx context.Context, userID string) (string, error) {
	return userID + "@example.com", nil
}

type fakeCache struct{}

func (fakeCache) GetTakenSeats(ctx context.Context, journeyID int64) ([]models.SeatRef, bool, error) {
	return nil, false, nil
}
func (fakeCache) SetTakenSeats(ctx context.Context, journeyID int64, seats []models.SeatRef) error {
	return nil
}
func (fakeCache) AddTakenSeats(ctx context.Context, journeyID int64, seats []models.SeatRef) error {
	return nil
}

type fakePublisher struct{}

func (fakePublisher) PublishOrderConfirmation(models.OrderConfirmation) error { return nil }

type fakeQR struct{}

func (fakeQR) IssueQR(models.Ticket) ([]byte, error) { return []byte{0x89}, nil }

func setupTestHandler() (*api.Handler, *fakeDB) {
	db := newFakeDB()
	svc := booking.NewOrderService(db, fakeCache{}, fakePublisher{}, fakeQR{}, logger.NewNop())
	handler := &api.Handler{OrderService: svc, Logger: logger.NewNop()}
	return handler, db
}

func newRouter(handler *api.Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/api/orders", handler.CreateOrder)
	r.Get("/api/orders/{orderId}", handler.GetOrder)
	r.Get("/api/orders", handler.ListMyOrders)
	r.Get("/api/journeys/{journeyId}/seats", handler.GetJourneySeats)
	return r
}

func authed(req *http.Request, userID string) *http.Request {
	return req.WithContext(auth.WithUserID(req.Context(), userID))
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	var resp utils.APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestCreateOrderHandler(t *testing.T) {
	t.Run("Successful order", func(t *testing.T) {
		handler, db := setupTestHandler()

		body, _ := json.Marshal(models.OrderRequest{Tickets: []models.TicketRequest{
			{JourneyID: 5, Cargo: 2, Seat: 10},
		}})
		req := httptest.NewRequest("POST", "/api/orders", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(w, authed(req, "user123"))

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		assert.Len(t, db.orders, 1)
	})

	t.Run("Missing authentication", func(t *testing.T) {
		handler, _ := setupTestHandler()

		req := httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString("{}"))
		w := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		handler, _ := setupTestHandler()

		req := httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(`{"tickets": [`))
		w := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(w, authed(req, "user123"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Empty order", func(t *testing.T) {
		handler, _ := setupTestHandler()

		req := httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(`{"tickets": []}`))
		w := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(w, authed(req, "user123"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Contains(t, resp.Errors, "tickets")
	})

	t.Run("Seat out of bounds", func(t *testing.T) {
		handler, _ := setupTestHandler()

		body, _ := json.Marshal(models.OrderRequest{Tickets: []models.TicketRequest{
			{JourneyID: 5, Cargo: 9, Seat: 57},
		}})
		req := httptest.NewRequest("POST", "/api/orders", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(w, authed(req, "user123"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Contains(t, resp.Errors, "cargo")
		assert.Contains(t, resp.Errors, "seat")
	})

	t.Run("Seat conflict", func(t *testing.T) {
		handler, db := setupTestHandler()
		db.taken = []models.SeatRef{{Cargo: 2, Seat: 10}}

		body, _ := json.Marshal(models.OrderRequest{Tickets: []models.TicketRequest{
			{JourneyID: 5, Cargo: 2, Seat: 10},
		}})
		req := httptest.NewRequest("POST", "/api/orders", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(w, authed(req, "user123"))

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		assert.Contains(t, resp.Errors, "seat")
	})

	t.Run("Unknown journey", func(t *testing.T) {
		handler, _ := setupTestHandler()

		body, _ := json.Marshal(models.OrderRequest{Tickets: []models.TicketRequest{
			{JourneyID: 404, Cargo: 1, Seat: 1},
		}})
		req := httptest.NewRequest("POST", "/api/orders", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(w, authed(req, "user123"))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetOrderHandler(t *testing.T) {
	handler, db := setupTestHandler()
	db.orders["order-1"] = &models.Order{OrderID: "order-1", UserID: "user123"}

	t.Run("Owner fetches order", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/orders/order-1", nil)
		w := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(w, authed(req, "user123"))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Another user is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/orders/order-1", nil)
		w := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(w, authed(req, "intruder"))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Unknown order", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/orders/nope", nil)
		w := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(w, authed(req, "user123"))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetJourneySeatsHandler(t *testing.T) {
	t.Run("Seat map", func(t *testing.T) {
		handler, db := setupTestHandler()
		db.taken = []models.SeatRef{{Cargo: 1, Seat: 3}}

		req := httptest.NewRequest("GET", "/api/journeys/5/seats", nil)
		w := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
	})

	t.Run("Non-numeric journey id", func(t *testing.T) {
		handler, _ := setupTestHandler()

		req := httptest.NewRequest("GET", "/api/journeys/abc/seats", nil)
		w := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

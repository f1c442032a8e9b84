package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"train-ticketing/internal/logger"
	"train-ticketing/internal/models"
)

type DBLayer interface {
	GetJourneyWithTrain(ctx context.Context, journeyID int64) (*models.Journey, error)
	GetSeatRefs(ctx context.Context, journeyID int64) ([]models.SeatRef, error)
	CreateOrderWithTickets(ctx context.Context, order *models.Order, tickets []models.Ticket) error
	GetOrderByID(ctx context.Context, orderID string) (*models.Order, error)
	GetOrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	GetUserEmail(ctx context.Context, userID string) (string, error)
}

type SeatCache interface {
	GetTakenSeats(ctx context.Context, journeyID int64) ([]models.SeatRef, bool, error)
	SetTakenSeats(ctx context.Context, journeyID int64, seats []models.SeatRef) error
	AddTakenSeats(ctx context.Context, journeyID int64, seats []models.SeatRef) error
}

type Publisher interface {
	PublishOrderConfirmation(confirmation models.OrderConfirmation) error
}

type QRIssuer interface {
	IssueQR(ticket models.Ticket) ([]byte, error)
}

// OrderService coordinates the order transaction: it validates every
// requested seat, persists the order and its tickets atomically, and
// emits the confirmation event after commit.
type OrderService struct {
	DB     DBLayer
	Cache  SeatCache
	Kafka  Publisher
	QR     QRIssuer
	Logger *logger.Logger
}

func NewOrderService(db DBLayer, cache SeatCache, kafka Publisher, qr QRIssuer, log *logger.Logger) *OrderService {
	return &OrderService{DB: db, Cache: cache, Kafka: kafka, QR: qr, Logger: log}
}

// SeatMap is the taken-seat view of one journey.
type SeatMap struct {
	JourneyID int64              `json:"journey_id"`
	Layout    models.TrainLayout `json:"layout"`
	Taken     []models.SeatRef   `json:"taken"`
}

// PlaceOrder runs the whole batch as one unit: every request is checked
// against the committed tickets of its journey plus the earlier requests
// of the same batch, then one order row and one ticket row per request
// are written in a single transaction. Any failure leaves the store
// untouched.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, reqs []models.TicketRequest) (*models.Order, error) {
	if len(reqs) == 0 {
		return nil, ErrEmptyOrder
	}

	order := &models.Order{
		OrderID:   uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	layouts := make(map[int64]models.TrainLayout)
	taken := make(map[int64][]models.SeatRef)
	tickets := make([]models.Ticket, 0, len(reqs))

	for _, req := range reqs {
		layout, ok := layouts[req.JourneyID]
		if !ok {
			journey, err := s.DB.GetJourneyWithTrain(ctx, req.JourneyID)
			if err != nil {
				return nil, err
			}
			layout = journey.Train.Layout()
			layouts[req.JourneyID] = layout

			refs, err := s.DB.GetSeatRefs(ctx, req.JourneyID)
			if err != nil {
				return nil, fmt.Errorf("load taken seats for journey %d: %w", req.JourneyID, err)
			}
			taken[req.JourneyID] = refs
		}

		if err := CheckAssignment(req.JourneyID, req.Cargo, req.Seat, layout, taken[req.JourneyID]); err != nil {
			return nil, err
		}
		// Earlier requests of this batch count as taken for the later ones.
		taken[req.JourneyID] = append(taken[req.JourneyID], models.SeatRef{Cargo: req.Cargo, Seat: req.Seat})

		ticket := models.Ticket{
			TicketID:  uuid.New().String(),
			OrderID:   order.OrderID,
			JourneyID: req.JourneyID,
			Cargo:     req.Cargo,
			Seat:      req.Seat,
			IssuedAt:  order.CreatedAt,
		}
		qr, err := s.QR.IssueQR(ticket)
		if err != nil {
			return nil, fmt.Errorf("issue QR for ticket: %w", err)
		}
		ticket.QRCode = qr
		tickets = append(tickets, ticket)
	}

	if err := s.DB.CreateOrderWithTickets(ctx, order, tickets); err != nil {
		return nil, err
	}
	order.Tickets = tickets
	s.Logger.LogOrder("CREATE", order.OrderID, fmt.Sprintf("%d ticket(s) persisted", len(tickets)))

	s.afterCommit(ctx, order)
	return order, nil
}

// afterCommit runs the fire-and-forget side effects. Failures here are
// logged and never change the outcome of an already committed order.
func (s *OrderService) afterCommit(ctx context.Context, order *models.Order) {
	email, err := s.DB.GetUserEmail(ctx, order.UserID)
	if err != nil {
		s.Logger.Error("ORDER", fmt.Sprintf("lookup email for user %s: %v", order.UserID, err))
	} else if err := s.Kafka.PublishOrderConfirmation(models.OrderConfirmation{
		OrderID: order.OrderID,
		Email:   email,
	}); err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("publish confirmation for order %s: %v", order.OrderID, err))
	}

	byJourney := make(map[int64][]models.SeatRef)
	for _, t := range order.Tickets {
		byJourney[t.JourneyID] = append(byJourney[t.JourneyID], t.SeatRef())
	}
	for journeyID, refs := range byJourney {
		if err := s.Cache.AddTakenSeats(ctx, journeyID, refs); err != nil {
			s.Logger.Warn("REDIS", fmt.Sprintf("update seat cache for journey %d: %v", journeyID, err))
		}
	}
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return s.DB.GetOrderByID(ctx, orderID)
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.DB.GetOrdersByUser(ctx, userID)
}

// JourneySeatMap returns the taken coordinates of a journey, reading
// through the cache with a store fallback.
func (s *OrderService) JourneySeatMap(ctx context.Context, journeyID int64) (*SeatMap, error) {
	journey, err := s.DB.GetJourneyWithTrain(ctx, journeyID)
	if err != nil {
		return nil, err
	}

	refs, hit, err := s.Cache.GetTakenSeats(ctx, journeyID)
	if err != nil {
		s.Logger.Warn("REDIS", fmt.Sprintf("read seat cache for journey %d: %v", journeyID, err))
		hit = false
	}
	if !hit {
		refs, err = s.DB.GetSeatRefs(ctx, journeyID)
		if err != nil {
			return nil, err
		}
		if err := s.Cache.SetTakenSeats(ctx, journeyID, refs); err != nil {
			s.Logger.Warn("REDIS", fmt.Sprintf("fill seat cache for journey %d: %v", journeyID, err))
		}
	}

	return &SeatMap{
		JourneyID: journeyID,
		Layout:    journey.Train.Layout(),
		Taken:     refs,
	}, nil
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/uptrace/bun"

	"train-ticketing/internal/booking"
	"train-ticketing/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// GetJourneyWithTrain resolves a journey and the layout of its train.
func (d *DB) GetJourneyWithTrain(ctx context.Context, journeyID int64) (*models.Journey, error) {
	var journey models.Journey
	err := d.Bun.NewSelect().
		Model(&journey).
		Relation("Train").
		Where("j.id = ?", journeyID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrJourneyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &journey, nil
}

// GetSeatRefs returns the committed (cargo, seat) pairs of a journey.
func (d *DB) GetSeatRefs(ctx context.Context, journeyID int64) ([]models.SeatRef, error) {
	refs := make([]models.SeatRef, 0)
	err := d.Bun.NewSelect().
		Model((*models.Ticket)(nil)).
		Column("cargo", "seat").
		Where("journey_id = ?", journeyID).
		Order("cargo", "seat").
		Scan(ctx, &refs)
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// CreateOrderWithTickets persists one order row plus its ticket rows in a
// single transaction. A unique violation on tickets(journey_id, cargo,
// seat) is translated into the SeatConflictError of the colliding ticket;
// on any error nothing is committed.
func (d *DB) CreateOrderWithTickets(ctx context.Context, order *models.Order, tickets []models.Ticket) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(order).Exec(ctx); err != nil {
			return err
		}
		for i := range tickets {
			if _, err := tx.NewInsert().Model(&tickets[i]).Exec(ctx); err != nil {
				if isUniqueViolation(err) {
					return &booking.SeatConflictError{
						JourneyID: tickets[i].JourneyID,
						Cargo:     tickets[i].Cargo,
						Seat:      tickets[i].Seat,
					}
				}
				return err
			}
		}
		return nil
	})
}

// GetOrderByID fetches one order with its tickets.
func (d *DB) GetOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := d.Bun.NewSelect().
		Model(&order).
		Relation("Tickets", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("cargo", "seat")
		}).
		Where("o.order_id = ?", orderID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrdersByUser fetches all orders of a user, newest first.
func (d *DB) GetOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := d.Bun.NewSelect().
		Model(&orders).
		Relation("Tickets", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("cargo", "seat")
		}).
		Where("o.user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetUserEmail returns the registered address for confirmation dispatch.
func (d *DB) GetUserEmail(ctx context.Context, userID string) (string, error) {
	var email string
	err := d.Bun.NewSelect().
		Model((*models.User)(nil)).
		Column("email").
		Where("id = ?", userID).
		Limit(1).
		Scan(ctx, &email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", booking.ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	return email, nil
}

// isUniqueViolation recognizes unique-constraint failures from Postgres
// (lib/pq, class 23505) and from the sqlite dialect the tests run on.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint violation")
}

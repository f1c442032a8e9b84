package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/uptrace/bun"

	"train-ticketing/internal/journey"
	"train-ticketing/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// CreateJourney inserts the journey row and its crew roster links in one
// transaction. A unique violation on (departure_time, arrival_time,
// route_id) comes back as a duplicate-journey ScheduleError.
func (d *DB) CreateJourney(ctx context.Context, j *models.Journey, workerIDs []int64) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(j).Exec(ctx); err != nil {
			if isUniqueViolation(err) {
				return journey.DuplicateJourney()
			}
			return err
		}
		for _, crewID := range workerIDs {
			link := models.JourneyWorker{JourneyID: j.ID, CrewID: crewID}
			if _, err := tx.NewInsert().Model(&link).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetJourneyByID returns a journey with route, stations, train and crew
// roster expanded.
func (d *DB) GetJourneyByID(ctx context.Context, journeyID int64) (*models.Journey, error) {
	var j models.Journey
	err := d.Bun.NewSelect().
		Model(&j).
		Relation("Route.Source").
		Relation("Route.Destination").
		Relation("Train.TrainType").
		Relation("Workers").
		Where("j.id = ?", journeyID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, journey.ErrJourneyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// ListUpcoming returns journeys departing at or after now, soonest first.
func (d *DB) ListUpcoming(ctx context.Context, now time.Time) ([]models.Journey, error) {
	journeys := make([]models.Journey, 0)
	err := d.Bun.NewSelect().
		Model(&journeys).
		Relation("Route.Source").
		Relation("Route.Destination").
		Relation("Train").
		Where("j.departure_time >= ?", now).
		Order("departure_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return journeys, nil
}

func (d *DB) RouteExists(ctx context.Context, routeID int64) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Route)(nil)).
		Where("id = ?", routeID).
		Exists(ctx)
}

func (d *DB) TrainExists(ctx context.Context, trainID int64) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Train)(nil)).
		Where("id = ?", trainID).
		Exists(ctx)
}

// MissingCrews reports which of the given crew IDs do not exist.
func (d *DB) MissingCrews(ctx context.Context, crewIDs []int64) ([]int64, error) {
	if len(crewIDs) == 0 {
		return nil, nil
	}
	existing := make([]int64, 0, len(crewIDs))
	err := d.Bun.NewSelect().
		Model((*models.Crew)(nil)).
		Column("id").
		Where("id IN (?)", bun.In(crewIDs)).
		Scan(ctx, &existing)
	if err != nil {
		return nil, err
	}

	found := make(map[int64]bool, len(existing))
	for _, id := range existing {
		found[id] = true
	}
	missing := make([]int64, 0)
	for _, id := range crewIDs {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint violation")
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/uptrace/bun"

	"train-ticketing/internal/catalog"
	"train-ticketing/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateStation(ctx context.Context, station *models.Station) error {
	_, err := d.Bun.NewInsert().Model(station).Exec(ctx)
	return translateUnique(err, "station")
}

func (d *DB) ListStations(ctx context.Context) ([]models.Station, error) {
	stations := make([]models.Station, 0)
	err := d.Bun.NewSelect().Model(&stations).Order("name").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return stations, nil
}

func (d *DB) CreateTrainType(ctx context.Context, tt *models.TrainType) error {
	_, err := d.Bun.NewInsert().Model(tt).Exec(ctx)
	return translateUnique(err, "train type")
}

func (d *DB) ListTrainTypes(ctx context.Context) ([]models.TrainType, error) {
	types := make([]models.TrainType, 0)
	err := d.Bun.NewSelect().Model(&types).Order("name").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (d *DB) CreateTrain(ctx context.Context, train *models.Train) error {
	_, err := d.Bun.NewInsert().Model(train).Exec(ctx)
	return translateUnique(err, "train")
}

func (d *DB) GetTrainByID(ctx context.Context, trainID int64) (*models.Train, error) {
	var train models.Train
	err := d.Bun.NewSelect().
		Model(&train).
		Relation("TrainType").
		Where("t.id = ?", trainID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, catalog.ErrTrainNotFound
	}
	if err != nil {
		return nil, err
	}
	return &train, nil
}

func (d *DB) TrainTypeExists(ctx context.Context, trainTypeID int64) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.TrainType)(nil)).
		Where("id = ?", trainTypeID).
		Exists(ctx)
}

func (d *DB) CreateRoute(ctx context.Context, route *models.Route) error {
	_, err := d.Bun.NewInsert().Model(route).Exec(ctx)
	return translateUnique(err, "route")
}

func (d *DB) GetRouteByID(ctx context.Context, routeID int64) (*models.Route, error) {
	var route models.Route
	err := d.Bun.NewSelect().
		Model(&route).
		Relation("Source").
		Relation("Destination").
		Where("r.id = ?", routeID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, catalog.ErrRouteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (d *DB) StationExists(ctx context.Context, stationID int64) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Station)(nil)).
		Where("id = ?", stationID).
		Exists(ctx)
}

func (d *DB) CreateCrew(ctx context.Context, crew *models.Crew) error {
	_, err := d.Bun.NewInsert().Model(crew).Exec(ctx)
	return err
}

func (d *DB) ListCrews(ctx context.Context) ([]models.Crew, error) {
	crews := make([]models.Crew, 0)
	err := d.Bun.NewSelect().Model(&crews).Order("last_name", "first_name").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return crews, nil
}

func translateUnique(err error, resource string) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return &catalog.ConflictError{Resource: resource}
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return &catalog.ConflictError{Resource: resource}
	}
	return err
}

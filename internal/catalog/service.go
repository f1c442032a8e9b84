package catalog

import (
	"context"
	"errors"
	"fmt"

	"train-ticketing/internal/logger"
	"train-ticketing/internal/models"
)

var (
	ErrStationNotFound   = errors.New("station not found")
	ErrTrainNotFound     = errors.New("train not found")
	ErrTrainTypeNotFound = errors.New("train type not found")
	ErrRouteNotFound     = errors.New("route not found")
)

// ConflictError marks a catalog row that collides with an existing one
// on its natural-key unique constraint.
type ConflictError struct {
	Resource string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Resource)
}

type DBLayer interface {
	CreateStation(ctx context.Context, station *models.Station) error
	ListStations(ctx context.Context) ([]models.Station, error)
	CreateTrainType(ctx context.Context, tt *models.TrainType) error
	ListTrainTypes(ctx context.Context) ([]models.TrainType, error)
	CreateTrain(ctx context.Context, train *models.Train) error
	GetTrainByID(ctx context.Context, trainID int64) (*models.Train, error)
	TrainTypeExists(ctx context.Context, trainTypeID int64) (bool, error)
	CreateRoute(ctx context.Context, route *models.Route) error
	GetRouteByID(ctx context.Context, routeID int64) (*models.Route, error)
	StationExists(ctx context.Context, stationID int64) (bool, error)
	CreateCrew(ctx context.Context, crew *models.Crew) error
	ListCrews(ctx context.Context) ([]models.Crew, error)
}

// CatalogService registers the resources journeys are scheduled over:
// stations, train types, trains, routes and crew members.
type CatalogService struct {
	DB     DBLayer
	Logger *logger.Logger
}

func NewCatalogService(db DBLayer, log *logger.Logger) *CatalogService {
	return &CatalogService{DB: db, Logger: log}
}

func (s *CatalogService) CreateStation(ctx context.Context, station models.Station) (*models.Station, error) {
	if station.Latitude < -90 || station.Latitude > 90 {
		return nil, &ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"}
	}
	if station.Longitude < -180 || station.Longitude > 180 {
		return nil, &ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"}
	}
	if err := s.DB.CreateStation(ctx, &station); err != nil {
		return nil, err
	}
	return &station, nil
}

func (s *CatalogService) ListStations(ctx context.Context) ([]models.Station, error) {
	return s.DB.ListStations(ctx)
}

func (s *CatalogService) CreateTrainType(ctx context.Context, tt models.TrainType) (*models.TrainType, error) {
	if err := s.DB.CreateTrainType(ctx, &tt); err != nil {
		return nil, err
	}
	return &tt, nil
}

func (s *CatalogService) ListTrainTypes(ctx context.Context) ([]models.TrainType, error) {
	return s.DB.ListTrainTypes(ctx)
}

func (s *CatalogService) CreateTrain(ctx context.Context, train models.Train) (*models.Train, error) {
	if train.CargoCount < 1 {
		return nil, &ValidationError{Field: "cargo_count", Message: "cargo count must be positive"}
	}
	if train.SeatsPerCargo < 1 {
		return nil, &ValidationError{Field: "seats_per_cargo", Message: "seats per cargo must be positive"}
	}
	ok, err := s.DB.TrainTypeExists(ctx, train.TrainTypeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTrainTypeNotFound
	}
	if err := s.DB.CreateTrain(ctx, &train); err != nil {
		return nil, err
	}
	return s.DB.GetTrainByID(ctx, train.ID)
}

func (s *CatalogService) GetTrain(ctx context.Context, trainID int64) (*models.Train, error) {
	return s.DB.GetTrainByID(ctx, trainID)
}

func (s *CatalogService) CreateRoute(ctx context.Context, route models.Route) (*models.Route, error) {
	for _, stationID := range []int64{route.SourceID, route.DestinationID} {
		ok, err := s.DB.StationExists(ctx, stationID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrStationNotFound
		}
	}
	if err := s.DB.CreateRoute(ctx, &route); err != nil {
		return nil, err
	}
	return s.DB.GetRouteByID(ctx, route.ID)
}

func (s *CatalogService) CreateCrew(ctx context.Context, crew models.Crew) (*models.Crew, error) {
	if err := s.DB.CreateCrew(ctx, &crew); err != nil {
		return nil, err
	}
	return &crew, nil
}

func (s *CatalogService) ListCrews(ctx context.Context) ([]models.Crew, error) {
	return s.DB.ListCrews(ctx)
}

// ValidationError is a single-field catalog input rejection.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

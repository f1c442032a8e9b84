package journey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"train-ticketing/internal/logger"
	"train-ticketing/internal/models"
)

var (
	ErrJourneyNotFound = errors.New("journey not found")
	ErrRouteNotFound   = errors.New("route not found")
	ErrTrainNotFound   = errors.New("train not found")
	ErrCrewNotFound    = errors.New("crew member not found")
)

type DBLayer interface {
	CreateJourney(ctx context.Context, journey *models.Journey, workerIDs []int64) error
	GetJourneyByID(ctx context.Context, journeyID int64) (*models.Journey, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]models.Journey, error)
	RouteExists(ctx context.Context, routeID int64) (bool, error)
	TrainExists(ctx context.Context, trainID int64) (bool, error)
	MissingCrews(ctx context.Context, crewIDs []int64) ([]int64, error)
}

type Publisher interface {
	PublishJourneyCreated(journey models.Journey) error
}

// JourneyService creates and reads scheduled journeys. Schedule
// validation happens up front; the unique constraint on
// (departure_time, arrival_time, route_id) stays the final authority
// for duplicates and is translated into a ScheduleError.
type JourneyService struct {
	DB     DBLayer
	Kafka  Publisher
	Logger *logger.Logger

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewJourneyService(db DBLayer, kafka Publisher, log *logger.Logger) *JourneyService {
	return &JourneyService{DB: db, Kafka: kafka, Logger: log, Now: time.Now}
}

func (s *JourneyService) CreateJourney(ctx context.Context, req models.JourneyRequest) (*models.Journey, error) {
	if err := ValidateSchedule(req.DepartureTime, req.ArrivalTime, s.Now()); err != nil {
		return nil, err
	}

	ok, err := s.DB.RouteExists(ctx, req.RouteID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRouteNotFound
	}

	ok, err = s.DB.TrainExists(ctx, req.TrainID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTrainNotFound
	}

	if len(req.WorkerIDs) > 0 {
		missing, err := s.DB.MissingCrews(ctx, req.WorkerIDs)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: %v", ErrCrewNotFound, missing)
		}
	}

	journey := &models.Journey{
		RouteID:       req.RouteID,
		TrainID:       req.TrainID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	}
	if err := s.DB.CreateJourney(ctx, journey, req.WorkerIDs); err != nil {
		return nil, err
	}
	s.Logger.LogJourney("CREATE", journey.ID, "journey scheduled")

	created, err := s.DB.GetJourneyByID(ctx, journey.ID)
	if err != nil {
		return nil, err
	}

	if err := s.Kafka.PublishJourneyCreated(*created); err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("publish journey %d created: %v", created.ID, err))
	}
	return created, nil
}

func (s *JourneyService) GetJourney(ctx context.Context, journeyID int64) (*models.Journey, error) {
	return s.DB.GetJourneyByID(ctx, journeyID)
}

func (s *JourneyService) ListUpcoming(ctx context.Context) ([]models.Journey, error) {
	return s.DB.ListUpcoming(ctx, s.Now())
}

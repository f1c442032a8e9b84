package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Journey struct {
	bun.BaseModel `bun:"table:journeys,alias:j"`

	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	RouteID       int64     `bun:"route_id,notnull,unique:journeys_schedule_route" json:"route_id"`
	TrainID       int64     `bun:"train_id,notnull" json:"train_id"`
	DepartureTime time.Time `bun:"departure_time,notnull,unique:journeys_schedule_route" json:"departure_time"`
	ArrivalTime   time.Time `bun:"arrival_time,notnull,unique:journeys_schedule_route" json:"arrival_time"`

	Route   *Route `bun:"rel:belongs-to,join:route_id=id" json:"route,omitempty"`
	Train   *Train `bun:"rel:belongs-to,join:train_id=id" json:"train,omitempty"`
	Workers []Crew `bun:"m2m:journey_workers,join:Journey=Crew" json:"workers,omitempty"`
}

// JourneyWorker links a journey to one crew member on its roster.
type JourneyWorker struct {
	bun.BaseModel `bun:"table:journey_workers"`

	JourneyID int64 `bun:"journey_id,pk" json:"journey_id"`
	CrewID    int64 `bun:"crew_id,pk" json:"crew_id"`

	Journey *Journey `bun:"rel:belongs-to,join:journey_id=id" json:"-"`
	Crew    *Crew    `bun:"rel:belongs-to,join:crew_id=id" json:"-"`
}

type JourneyRequest struct {
	RouteID       int64     `json:"route"`
	TrainID       int64     `json:"train"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	WorkerIDs     []int64   `json:"workers"`
}

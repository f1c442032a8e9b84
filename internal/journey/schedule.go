package journey

import (
	"time"
)

type ScheduleKind int

const (
	ScheduleDepartureInPast ScheduleKind = iota
	ScheduleArrivalInPast
	ScheduleInvalidOrder
	ScheduleDuplicateJourney
)

// ScheduleError rejects an invalid journey time window. Field names the
// request field the violation is reported under.
type ScheduleError struct {
	Kind    ScheduleKind
	Field   string
	Message string
}

func (e *ScheduleError) Error() string {
	return e.Message
}

// ValidateSchedule checks a journey's time window against the clock.
// Checks run in order: departure in the past, arrival in the past, then
// ordering. Departure must be strictly before arrival.
func ValidateSchedule(departure, arrival, now time.Time) error {
	if departure.Before(now) {
		return &ScheduleError{
			Kind:    ScheduleDepartureInPast,
			Field:   "departure_time",
			Message: "departure time cannot be in the past",
		}
	}
	if arrival.Before(now) {
		return &ScheduleError{
			Kind:    ScheduleArrivalInPast,
			Field:   "arrival_time",
			Message: "arrival time cannot be in the past",
		}
	}
	if !departure.Before(arrival) {
		return &ScheduleError{
			Kind:    ScheduleInvalidOrder,
			Field:   "departure_time",
			Message: "departure time must be earlier than arrival time",
		}
	}
	return nil
}

// DuplicateJourney is the error the storage layer maps its
// (departure_time, arrival_time, route_id) unique violation onto.
func DuplicateJourney() *ScheduleError {
	return &ScheduleError{
		Kind:    ScheduleDuplicateJourney,
		Field:   "departure_time",
		Message: "journey with this departure, arrival time and route already exists",
	}
}

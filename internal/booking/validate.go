package booking

import (
	"fmt"

	"train-ticketing/internal/models"
)

// ValidateSeat checks that a (cargo, seat) coordinate exists on a train
// with the given layout. Both coordinates are 1-indexed and both checks
// always run, so a single call can report cargo and seat together.
// Pure function, no I/O.
func ValidateSeat(cargo, seat int, layout models.TrainLayout) error {
	checks := []struct {
		value int
		field string
		bound int
	}{
		{cargo, "cargo", layout.CargoCount},
		{seat, "seat", layout.SeatsPerCargo},
	}

	fields := make(map[string]string)
	for _, c := range checks {
		if c.value < 1 || c.value > c.bound {
			fields[c.field] = fmt.Sprintf(
				"%s number must be in available range: (1, %d)", c.field, c.bound,
			)
		}
	}
	if len(fields) > 0 {
		return &InvalidSeatError{Fields: fields}
	}
	return nil
}

// CheckAssignment decides whether a seat can be assigned on a journey:
// the coordinate must exist on the train and must not already appear in
// taken. This is an optimistic pre-check only; the unique constraint on
// tickets(journey_id, cargo, seat) remains the final authority under
// concurrent bookings.
func CheckAssignment(journeyID int64, cargo, seat int, layout models.TrainLayout, taken []models.SeatRef) error {
	if err := ValidateSeat(cargo, seat, layout); err != nil {
		return err
	}
	for _, ref := range taken {
		if ref.Cargo == cargo && ref.Seat == seat {
			return &SeatConflictError{JourneyID: journeyID, Cargo: cargo, Seat: seat}
		}
	}
	return nil
}

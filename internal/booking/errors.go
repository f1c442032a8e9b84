package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrEmptyOrder rejects order batches carrying no ticket requests.
	ErrEmptyOrder = errors.New("order must contain at least one ticket")

	ErrJourneyNotFound = errors.New("journey not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrUserNotFound    = errors.New("user not found")
)

// InvalidSeatError reports seat coordinates outside the train layout.
// Violations are keyed by field name ("cargo", "seat") so the API can
// surface every out-of-range coordinate at once instead of only the first.
type InvalidSeatError struct {
	Fields map[string]string
}

func (e *InvalidSeatError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid seat coordinates: " + strings.Join(names, ", ")
}

// SeatConflictError marks a (cargo, seat) pair already assigned on a
// journey, whether caught by the optimistic pre-check or by the store's
// unique constraint.
type SeatConflictError struct {
	JourneyID int64
	Cargo     int
	Seat      int
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf(
		"seat (cargo %d, seat %d) on journey %d is already taken",
		e.Cargo, e.Seat, e.JourneyID,
	)
}

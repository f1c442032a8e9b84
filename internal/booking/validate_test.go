package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"train-ticketing/internal/booking"
	"train-ticketing/internal/models"
)

func TestValidateSeat(t *testing.T) {
	layout := models.TrainLayout{CargoCount: 8, SeatsPerCargo: 56}

	tests := []struct {
		name      string
		cargo     int
		seat      int
		badFields []string
	}{
		{"valid middle", 4, 30, nil},
		{"valid lower bound", 1, 1, nil},
		{"valid upper bound", 8, 56, nil},
		{"cargo zero", 0, 10, []string{"cargo"}},
		{"cargo negative", -3, 10, []string{"cargo"}},
		{"cargo too high", 9, 10, []string{"cargo"}},
		{"seat zero", 2, 0, []string{"seat"}},
		{"seat too high", 2, 57, []string{"seat"}},
		{"both out of range", 0, 0, []string{"cargo", "seat"}},
		{"both too high", 100, 100, []string{"cargo", "seat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := booking.ValidateSeat(tt.cargo, tt.seat, layout)
			if len(tt.badFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var invalid *booking.InvalidSeatError
			require.ErrorAs(t, err, &invalid)
			assert.Len(t, invalid.Fields, len(tt.badFields))
			for _, field := range tt.badFields {
				assert.Contains(t, invalid.Fields, field)
			}
		})
	}
}

func TestValidateSeatIsPure(t *testing.T) {
	layout := models.TrainLayout{CargoCount: 2, SeatsPerCargo: 4}

	first := booking.ValidateSeat(3, 5, layout)
	second := booking.ValidateSeat(3, 5, layout)

	var firstErr, secondErr *booking.InvalidSeatError
	require.ErrorAs(t, first, &firstErr)
	require.ErrorAs(t, second, &secondErr)
	assert.Equal(t, firstErr.Fields, secondErr.Fields)
}

func TestCheckAssignment(t *testing.T) {
	layout := models.TrainLayout{CargoCount: 1, SeatsPerCargo: 56}
	taken := []models.SeatRef{{Cargo: 1, Seat: 56}}

	t.Run("free seat passes", func(t *testing.T) {
		assert.NoError(t, booking.CheckAssignment(5, 1, 55, layout, taken))
	})

	t.Run("no existing tickets passes", func(t *testing.T) {
		assert.NoError(t, booking.CheckAssignment(5, 1, 56, layout, nil))
	})

	t.Run("taken seat conflicts", func(t *testing.T) {
		err := booking.CheckAssignment(5, 1, 56, layout, taken)

		var conflict *booking.SeatConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, int64(5), conflict.JourneyID)
		assert.Equal(t, 1, conflict.Cargo)
		assert.Equal(t, 56, conflict.Seat)
	})

	t.Run("layout violation reported before conflict", func(t *testing.T) {
		err := booking.CheckAssignment(5, 2, 56, layout, taken)

		var invalid *booking.InvalidSeatError
		require.ErrorAs(t, err, &invalid)
		assert.Contains(t, invalid.Fields, "cargo")
	})
}

package ticketqr_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"train-ticketing/internal/models"
	"train-ticketing/internal/ticketqr"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func testTicket() models.Ticket {
	return models.Ticket{
		TicketID:  "ticket-1",
		OrderID:   "order-1",
		JourneyID: 5,
		Cargo:     2,
		Seat:      10,
		IssuedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestIssueQRProducesPNG(t *testing.T) {
	gen := ticketqr.NewGenerator("test-secret")

	png, err := gen.IssueQR(testTicket())
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.True(t, bytes.HasPrefix(png, pngHeader), "Expected a PNG image")
}

func TestIssueQRAcceptsAnySecretLength(t *testing.T) {
	// The secret is hashed to a fixed key size, so arbitrary strings work.
	for _, secret := range []string{"", "x", "a-much-longer-secret-phrase-than-a-key"} {
		gen := ticketqr.NewGenerator(secret)
		png, err := gen.IssueQR(testTicket())
		require.NoError(t, err)
		assert.NotEmpty(t, png)
	}
}

func TestIssueQRPayloadIsRandomized(t *testing.T) {
	gen := ticketqr.NewGenerator("test-secret")

	first, err := gen.IssueQR(testTicket())
	require.NoError(t, err)
	second, err := gen.IssueQR(testTicket())
	require.NoError(t, err)

	// A fresh IV per issue means the same ticket never encodes twice the
	// same way.
	assert.NotEqual(t, first, second)
}

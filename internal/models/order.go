package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	OrderID   string    `bun:"order_id,pk" json:"order_id"`
	UserID    string    `bun:"user_id,notnull" json:"user_id"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`

	Tickets []Ticket `bun:"rel:has-many,join:order_id=order_id" json:"tickets,omitempty"`
}

// TicketRequest is one seat a client asks for inside an order batch.
type TicketRequest struct {
	JourneyID int64 `json:"journey"`
	Cargo     int   `json:"cargo"`
	Seat      int   `json:"seat"`
}

type OrderRequest struct {
	Tickets []TicketRequest `json:"tickets"`
}

// OrderConfirmation is the post-commit notification payload handed to the
// message broker; a downstream worker turns it into the confirmation email.
type OrderConfirmation struct {
	OrderID string `json:"order_id"`
	Email   string `json:"email"`
}

package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Ticket struct {
	bun.BaseModel `bun:"table:tickets,alias:tk"`

	TicketID  string    `bun:"ticket_id,pk" json:"ticket_id"`
	OrderID   string    `bun:"order_id,notnull" json:"order_id"`
	JourneyID int64     `bun:"journey_id,notnull,unique:tickets_journey_seat" json:"journey_id"`
	Cargo     int       `bun:"cargo,notnull,unique:tickets_journey_seat" json:"cargo"`
	Seat      int       `bun:"seat,notnull,unique:tickets_journey_seat" json:"seat"`
	QRCode    []byte    `bun:"qr_code" json:"-"`
	IssuedAt  time.Time `bun:"issued_at,notnull" json:"issued_at"`
}

// SeatRef is a (cargo, seat) coordinate on a journey's train.
type SeatRef struct {
	Cargo int `json:"cargo"`
	Seat  int `json:"seat"`
}

func (t *Ticket) SeatRef() SeatRef {
	return SeatRef{Cargo: t.Cargo, Seat: t.Seat}
}

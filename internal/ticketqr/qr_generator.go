package ticketqr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"time"

	"github.com/skip2/go-qrcode"

	"train-ticketing/internal/models"
)

// Generator issues the QR image printed on a ticket. The payload is the
// ticket claim encrypted with a service secret, so gate scanners holding
// the key can verify a ticket offline.
type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &Generator{secret: hashed[:]}
}

type ticketClaim struct {
	TicketID  string    `json:"ticket_id"`
	JourneyID int64     `json:"journey_id"`
	Cargo     int       `json:"cargo"`
	Seat      int       `json:"seat"`
	IssuedAt  time.Time `json:"issued_at"`
}

func (g *Generator) IssueQR(ticket models.Ticket) ([]byte, error) {
	data, err := json.Marshal(ticketClaim{
		TicketID:  ticket.TicketID,
		JourneyID: ticket.JourneyID,
		Cargo:     ticket.Cargo,
		Seat:      ticket.Seat,
		IssuedAt:  ticket.IssuedAt,
	})
	if err != nil {
		return nil, err
	}

	encrypted, err := encryptAES(data, g.secret)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

func encryptAES(data []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment records a confirmed mobile-money transaction that unlocked premium.
type Payment struct {
	ID            uuid.UUID `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UserID        uuid.UUID `json:"user_id"`
	PhoneNumber   string    `json:"phone_number"`
	Amount        int       `json:"amount"`
	Currency      string    `json:"currency"`
	TransactionID string    `json:"transaction_id"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthChallenge is a one-shot login nonce bound to a wallet address.
type AuthChallenge struct {
	ID        uuid.UUID `json:"id"`
	Address   string    `json:"-"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"-"`
}

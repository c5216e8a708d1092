package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/freelance-market/backend/internal/apperr"
)

// Field caps are part of the storage contract and enforced at write time.
const (
	MaxNameLen        = 50
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
	MaxLinkLen        = 200
	MaxNarrationLen   = 300
	MaxReviewLen      = 300
)

// User is the identity record: one per wallet address, role fixed at
// registration.
type User struct {
	ID        uuid.UUID `json:"id"`
	Address   string    `json:"address"` // base58 wallet address
	Name      string    `json:"name"`
	Role      string    `json:"role"` // client / freelancer
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Validate() error {
	if u.Address == "" {
		return fmt.Errorf("%w: address is required", apperr.ErrValidation)
	}
	if u.Name == "" || len(u.Name) > MaxNameLen {
		return fmt.Errorf("%w: name must be 1-%d characters", apperr.ErrValidation, MaxNameLen)
	}
	return nil
}

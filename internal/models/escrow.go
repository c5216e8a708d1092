package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	EscrowStatusHolding  = "holding"
	EscrowStatusReleased = "released"
)

// EscrowAccount holds exactly the job amount from posting until payout.
// It shares the job's lifetime and is only ever written by custodian code.
type EscrowAccount struct {
	ID         uuid.UUID  `json:"id"`
	JobID      uuid.UUID  `json:"job_id"`
	Vault      string     `json:"vault"` // derived base58 address
	Nonce      string     `json:"-"`
	Balance    int64      `json:"balance"`
	Status     string     `json:"status"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`
	ReleasedTo *uuid.UUID `json:"released_to,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/freelance-market/backend/internal/apperr"
)

// Job statuses. A job moves strictly forward; "filled" means exactly one
// application has been approved for it, "paid" means the escrow has been
// released and the job is frozen.
const (
	JobStatusOpen          = "open"
	JobStatusFilled        = "filled"
	JobStatusWorkSubmitted = "work_submitted"
	JobStatusPaid          = "paid"
)

// Valid state transitions: from -> []to
var ValidJobTransitions = map[string][]string{
	JobStatusOpen:          {JobStatusFilled},
	JobStatusFilled:        {JobStatusWorkSubmitted},
	JobStatusWorkSubmitted: {JobStatusPaid},
	JobStatusPaid:          {},
}

func IsValidJobTransition(from, to string) bool {
	allowed, ok := ValidJobTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// JobPost is one paid job. The escrow vault address is deterministically
// derived from the job id plus the stored nonce; the nonce never leaves
// the service.
type JobPost struct {
	ID          uuid.UUID  `json:"id"`
	ClientID    uuid.UUID  `json:"client_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Amount      int64      `json:"amount"`
	Status      string     `json:"status"`
	EscrowNonce string     `json:"-"`
	EscrowVault string     `json:"escrow_vault"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (j *JobPost) Filled() bool {
	return j.Status != JobStatusOpen
}

func (j *JobPost) Validate() error {
	if j.Title == "" || len(j.Title) > MaxTitleLen {
		return fmt.Errorf("%w: title must be 1-%d characters", apperr.ErrValidation, MaxTitleLen)
	}
	if len(j.Description) > MaxDescriptionLen {
		return fmt.Errorf("%w: description must be at most %d characters", apperr.ErrValidation, MaxDescriptionLen)
	}
	if j.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", apperr.ErrValidation)
	}
	return nil
}

// ValidateDates checks the optional schedule against the posting time.
// Both dates must be given together, ordered, and not start in the past.
func (j *JobPost) ValidateDates(now time.Time) error {
	if j.StartDate == nil && j.EndDate == nil {
		return nil
	}
	if j.StartDate == nil || j.EndDate == nil {
		return fmt.Errorf("%w: start_date and end_date must be supplied together", apperr.ErrInvalidDates)
	}
	if j.EndDate.Before(*j.StartDate) {
		return fmt.Errorf("%w: start_date must not be after end_date", apperr.ErrInvalidDates)
	}
	if j.StartDate.Before(now) {
		return fmt.Errorf("%w: start_date must not be in the past", apperr.ErrInvalidDates)
	}
	return nil
}

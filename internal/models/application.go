package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/freelance-market/backend/internal/apperr"
)

// Application is one freelancer's application to one job. There is at most
// one per (job, applicant) pair; it is never deleted.
type Application struct {
	ID              uuid.UUID  `json:"id"`
	JobID           uuid.UUID  `json:"job_id"`
	ApplicantID     uuid.UUID  `json:"applicant_id"`
	ResumeLink      string     `json:"resume_link"`
	Approved        bool       `json:"approved"`
	Completed       bool       `json:"completed"`
	SubmissionLink  string     `json:"submission_link"`
	Narration       string     `json:"narration"`
	ClientReview    string     `json:"client_review"`
	ExpectedEndDate *time.Time `json:"expected_end_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (a *Application) Validate() error {
	if a.ResumeLink == "" || len(a.ResumeLink) > MaxLinkLen {
		return fmt.Errorf("%w: resume_link must be 1-%d characters", apperr.ErrValidation, MaxLinkLen)
	}
	// The original stored the expected end as signed epoch seconds and
	// rejected negative values.
	if a.ExpectedEndDate != nil && a.ExpectedEndDate.Unix() < 0 {
		return fmt.Errorf("%w: expected_end_date must not be before the epoch", apperr.ErrInvalidDates)
	}
	return nil
}

// ValidateSubmission checks the fields written by submit_work.
func ValidateSubmission(submissionLink, narration string) error {
	if submissionLink == "" || len(submissionLink) > MaxLinkLen {
		return fmt.Errorf("%w: submission_link must be 1-%d characters", apperr.ErrValidation, MaxLinkLen)
	}
	if len(narration) > MaxNarrationLen {
		return fmt.Errorf("%w: narration must be at most %d characters", apperr.ErrValidation, MaxNarrationLen)
	}
	return nil
}

// ValidateReview checks the client review written at payout.
func ValidateReview(review string) error {
	if len(review) > MaxReviewLen {
		return fmt.Errorf("%w: client_review must be at most %d characters", apperr.ErrValidation, MaxReviewLen)
	}
	return nil
}

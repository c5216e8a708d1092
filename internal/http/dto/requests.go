package dto

import "time"

type ChallengeRequest struct {
	Address string `json:"address"`
}

type VerifyRequest struct {
	Address   string `json:"address"`
	Payload   string `json:"payload"`
	Signature string `json:"signature"`
}

type RegisterRequest struct {
	Name string `json:"name"`
	Role string `json:"role"` // client / freelancer
}

type DepositRequest struct {
	Amount int64 `json:"amount"`
}

type PostJobRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Amount      int64      `json:"amount"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type ApplyRequest struct {
	ResumeLink      string     `json:"resume_link"`
	ExpectedEndDate *time.Time `json:"expected_end_date,omitempty"`
}

type SubmitWorkRequest struct {
	SubmissionLink string `json:"submission_link"`
	Narration      string `json:"narration"`
}

type ApproveSubmissionRequest struct {
	ClientReview string `json:"client_review"`
}

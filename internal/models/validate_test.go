package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/freelance-market/backend/internal/apperr"
)

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{"ok", User{Address: "addr", Name: "Alice", Role: "client"}, false},
		{"name at cap", User{Address: "addr", Name: strings.Repeat("a", MaxNameLen)}, false},
		{"empty name", User{Address: "addr", Name: ""}, true},
		{"name over cap", User{Address: "addr", Name: strings.Repeat("a", MaxNameLen+1)}, true},
		{"missing address", User{Name: "Alice"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestJobPostValidate(t *testing.T) {
	tests := []struct {
		name    string
		job     JobPost
		wantErr bool
	}{
		{"ok", JobPost{Title: "Logo", Description: "design a logo", Amount: 100}, false},
		{"title at cap", JobPost{Title: strings.Repeat("t", MaxTitleLen), Amount: 1}, false},
		{"empty title", JobPost{Title: "", Amount: 1}, true},
		{"title over cap", JobPost{Title: strings.Repeat("t", MaxTitleLen+1), Amount: 1}, true},
		{"description over cap", JobPost{Title: "Logo", Description: strings.Repeat("d", MaxDescriptionLen+1), Amount: 1}, true},
		{"zero amount", JobPost{Title: "Logo", Amount: 0}, true},
		{"negative amount", JobPost{Title: "Logo", Amount: -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplicationValidate(t *testing.T) {
	future := time.Now().Add(72 * time.Hour)
	preEpoch := time.Unix(-1, 0)

	tests := []struct {
		name    string
		app     Application
		wantErr error
	}{
		{"ok", Application{ResumeLink: "https://cv.example/r1"}, nil},
		{"with expected end", Application{ResumeLink: "r1", ExpectedEndDate: &future}, nil},
		{"empty resume", Application{ResumeLink: ""}, apperr.ErrValidation},
		{"resume over cap", Application{ResumeLink: strings.Repeat("r", MaxLinkLen+1)}, apperr.ErrValidation},
		{"pre-epoch expected end", Application{ResumeLink: "r1", ExpectedEndDate: &preEpoch}, apperr.ErrInvalidDates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.app.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSubmissionAndReview(t *testing.T) {
	if err := ValidateSubmission("https://work.example/out", "done"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateSubmission("", "done"); err == nil {
		t.Error("expected error for empty submission link")
	}
	if err := ValidateSubmission(strings.Repeat("l", MaxLinkLen+1), ""); err == nil {
		t.Error("expected error for over-cap submission link")
	}
	if err := ValidateSubmission("link", strings.Repeat("n", MaxNarrationLen+1)); err == nil {
		t.Error("expected error for over-cap narration")
	}
	if err := ValidateReview(strings.Repeat("r", MaxReviewLen)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateReview(strings.Repeat("r", MaxReviewLen+1)); err == nil {
		t.Error("expected error for over-cap review")
	}
}

package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/freelance-market/backend/internal/escrow"
	"github.com/freelance-market/backend/internal/models"
	"github.com/freelance-market/backend/internal/repositories"
)

// Store interfaces consumed by the services. The pgx repositories implement
// them; tests substitute in-memory fakes. The guarded mutations (funded
// create, fill, release, submit) are atomic at the store level — a failing
// precondition leaves every record untouched.

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByAddress(ctx context.Context, address string) (*models.User, error)
	Credit(ctx context.Context, id uuid.UUID, amount int64) (int64, error)
}

type JobStore interface {
	CreateFunded(ctx context.Context, j *models.JobPost) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.JobPost, error)
	List(ctx context.Context, f repositories.JobFilter) ([]models.JobPost, error)
	Fill(ctx context.Context, jobID, applicationID uuid.UUID) error
	ReleaseEscrow(ctx context.Context, v escrow.ReleaseVoucher, applicationID, freelancerID uuid.UUID, review string) (int64, error)
}

type ApplicationStore interface {
	Create(ctx context.Context, a *models.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.Application, error)
	SubmitWork(ctx context.Context, applicationID uuid.UUID, submissionLink, narration string) error
}

type EscrowStore interface {
	GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.EscrowAccount, error)
}

type AuditLogger interface {
	Log(ctx context.Context, entry models.AuditLog) error
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freelance-market/backend/internal/apperr"
	"github.com/freelance-market/backend/internal/escrow"
	"github.com/freelance-market/backend/internal/events"
	"github.com/freelance-market/backend/internal/metrics"
	"github.com/freelance-market/backend/internal/models"
	"github.com/freelance-market/backend/internal/rbac"
	"github.com/freelance-market/backend/internal/repositories"
)

// JobService owns the job ledger and drives the escrow custodian. It runs
// the client-side operations: post_job, approve_application,
// approve_submission.
type JobService struct {
	jobs      JobStore
	users     UserStore
	apps      ApplicationStore
	escrows   EscrowStore
	audit     AuditLogger
	custodian *escrow.Custodian
	publisher events.Publisher
	log       *zap.Logger
}

func NewJobService(
	jobs JobStore,
	users UserStore,
	apps ApplicationStore,
	escrows EscrowStore,
	audit AuditLogger,
	custodian *escrow.Custodian,
	publisher events.Publisher,
	log *zap.Logger,
) *JobService {
	return &JobService{
		jobs:      jobs,
		users:     users,
		apps:      apps,
		escrows:   escrows,
		audit:     audit,
		custodian: custodian,
		publisher: publisher,
		log:       log,
	}
}

type PostJobInput struct {
	Title       string
	Description string
	Amount      int64
	StartDate   *time.Time
	EndDate     *time.Time
}

// PostJob creates a job post and funds its escrow vault from the caller's
// balance, all-or-nothing.
func (s *JobService) PostJob(ctx context.Context, callerAddr string, in PostJobInput) (job *models.JobPost, err error) {
	defer func() { metrics.Observe("post_job", err) }()

	caller, err := resolveCaller(ctx, s.users, callerAddr, rbac.PermPostJob)
	if err != nil {
		return nil, err
	}

	job = &models.JobPost{
		ID:          uuid.New(),
		ClientID:    caller.ID,
		Title:       in.Title,
		Description: in.Description,
		Amount:      in.Amount,
		Status:      models.JobStatusOpen,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	if err = job.Validate(); err != nil {
		return nil, err
	}
	if err = job.ValidateDates(time.Now()); err != nil {
		return nil, err
	}

	job.EscrowNonce = escrow.NewNonce()
	job.EscrowVault = s.custodian.VaultAddress(job.ID, job.EscrowNonce)

	if err = s.jobs.CreateFunded(ctx, job); err != nil {
		return nil, err
	}
	metrics.FundsEscrowed.Add(float64(job.Amount))

	_ = s.audit.Log(ctx, models.AuditLog{
		ActorUserID: &caller.ID,
		ActorType:   "user",
		Action:      "job_posted",
		EntityType:  "job",
		EntityID:    &job.ID,
		Meta:        map[string]any{"title": job.Title, "amount": job.Amount},
	})
	_ = s.publisher.Publish(ctx, events.StreamJob, events.Event{
		Type:    events.EventJobPosted,
		Payload: map[string]any{"job_id": job.ID.String(), "amount": job.Amount},
	})

	s.log.Info("job posted",
		zap.String("job_id", job.ID.String()),
		zap.Int64("amount", job.Amount),
	)
	return job, nil
}

// ApproveApplication marks one application approved and the job filled in a
// single atomic step. This is the only point of mutual exclusion: the store
// compare-and-swaps the job out of "open", so exactly one application per
// job can ever be approved.
func (s *JobService) ApproveApplication(ctx context.Context, callerAddr string, jobID, applicationID uuid.UUID) (err error) {
	defer func() { metrics.Observe("approve_application", err) }()

	caller, err := resolveCaller(ctx, s.users, callerAddr, rbac.PermApproveApplication)
	if err != nil {
		return err
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.ClientID != caller.ID {
		return fmt.Errorf("%w: only the job's client may approve applications", apperr.ErrUnauthorized)
	}

	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.JobID != jobID {
		return fmt.Errorf("%w: application does not belong to this job", apperr.ErrNotFound)
	}

	if job.Status != models.JobStatusOpen {
		return apperr.ErrJobAlreadyFilled
	}
	// The store re-checks under the row lock; this read is only a fast path.
	if err = s.jobs.Fill(ctx, jobID, applicationID); err != nil {
		return err
	}

	_ = s.audit.Log(ctx, models.AuditLog{
		ActorUserID: &caller.ID,
		ActorType:   "user",
		Action:      "application_approved",
		EntityType:  "job",
		EntityID:    &jobID,
		Meta:        map[string]any{"application_id": applicationID.String()},
	})
	_ = s.publisher.Publish(ctx, events.StreamJob, events.Event{
		Type: events.EventApplicationApproved,
		Payload: map[string]any{
			"job_id":         jobID.String(),
			"application_id": applicationID.String(),
		},
	})

	return nil
}

// ApproveSubmission records the client review and releases the escrowed
// amount to the freelancer. Release authority is a custodian voucher derived
// from the job's stored nonce — never a caller-held key — and the payout is
// strictly one-shot.
func (s *JobService) ApproveSubmission(ctx context.Context, callerAddr string, jobID, applicationID uuid.UUID, clientReview string) (released int64, err error) {
	defer func() { metrics.Observe("approve_submission", err) }()

	if err = models.ValidateReview(clientReview); err != nil {
		return 0, err
	}

	caller, err := resolveCaller(ctx, s.users, callerAddr, rbac.PermApproveSubmission)
	if err != nil {
		return 0, err
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return 0, err
	}
	if job.ClientID != caller.ID {
		return 0, fmt.Errorf("%w: only the job's client may approve the submission", apperr.ErrUnauthorized)
	}

	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return 0, err
	}
	if app.JobID != jobID {
		return 0, fmt.Errorf("%w: application does not belong to this job", apperr.ErrNotFound)
	}
	if !app.Completed {
		return 0, apperr.ErrWorkNotCompleted
	}

	voucher, err := s.custodian.Authorize(job.ID, job.EscrowNonce, job.EscrowVault)
	if err != nil {
		return 0, err
	}

	released, err = s.jobs.ReleaseEscrow(ctx, voucher, applicationID, app.ApplicantID, clientReview)
	if err != nil {
		return 0, err
	}
	metrics.FundsReleased.Add(float64(released))

	_ = s.audit.Log(ctx, models.AuditLog{
		ActorUserID: &caller.ID,
		ActorType:   "user",
		Action:      "submission_approved",
		EntityType:  "job",
		EntityID:    &jobID,
		Meta: map[string]any{
			"application_id": applicationID.String(),
			"released":       released,
		},
	})
	_ = s.publisher.Publish(ctx, events.StreamJob, events.Event{
		Type: events.EventFundsReleased,
		Payload: map[string]any{
			"job_id":         jobID.String(),
			"application_id": applicationID.String(),
			"amount":         released,
		},
	})

	s.log.Info("escrow released",
		zap.String("job_id", jobID.String()),
		zap.Int64("amount", released),
	)
	return released, nil
}

func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*models.JobPost, error) {
	return s.jobs.GetByID(ctx, id)
}

func (s *JobService) ListJobs(ctx context.Context, f repositories.JobFilter) ([]models.JobPost, error) {
	return s.jobs.List(ctx, f)
}

// EscrowInfo returns the custody record for a job.
func (s *JobService) EscrowInfo(ctx context.Context, jobID uuid.UUID) (*models.EscrowAccount, error) {
	return s.escrows.GetByJobID(ctx, jobID)
}

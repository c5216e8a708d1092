package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freelance-market/backend/internal/apperr"
	"github.com/freelance-market/backend/internal/events"
	"github.com/freelance-market/backend/internal/metrics"
	"github.com/freelance-market/backend/internal/models"
	"github.com/freelance-market/backend/internal/rbac"
)

// ApplicationService owns the application ledger: apply_to_job and
// submit_work, plus the read surface over applications.
type ApplicationService struct {
	apps      ApplicationStore
	jobs      JobStore
	users     UserStore
	audit     AuditLogger
	publisher events.Publisher
	log       *zap.Logger
}

func NewApplicationService(
	apps ApplicationStore,
	jobs JobStore,
	users UserStore,
	audit AuditLogger,
	publisher events.Publisher,
	log *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		apps:      apps,
		jobs:      jobs,
		users:     users,
		audit:     audit,
		publisher: publisher,
		log:       log,
	}
}

// Apply creates one application for (job, caller). Any number of
// freelancers may apply to the same job; a duplicate by the same applicant
// fails AlreadyExists.
func (s *ApplicationService) Apply(ctx context.Context, callerAddr string, jobID uuid.UUID, resumeLink string, expectedEnd *time.Time) (app *models.Application, err error) {
	defer func() { metrics.Observe("apply_to_job", err) }()

	caller, err := resolveCaller(ctx, s.users, callerAddr, rbac.PermApply)
	if err != nil {
		return nil, err
	}

	if _, err = s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	app = &models.Application{
		JobID:           jobID,
		ApplicantID:     caller.ID,
		ResumeLink:      resumeLink,
		ExpectedEndDate: expectedEnd,
	}
	if err = app.Validate(); err != nil {
		return nil, err
	}

	if err = s.apps.Create(ctx, app); err != nil {
		return nil, err
	}

	_ = s.audit.Log(ctx, models.AuditLog{
		ActorUserID: &caller.ID,
		ActorType:   "user",
		Action:      "application_created",
		EntityType:  "application",
		EntityID:    &app.ID,
		Meta:        map[string]any{"job_id": jobID.String()},
	})
	_ = s.publisher.Publish(ctx, events.StreamJob, events.Event{
		Type: events.EventApplicationCreated,
		Payload: map[string]any{
			"job_id":         jobID.String(),
			"application_id": app.ID.String(),
		},
	})

	return app, nil
}

// SubmitWork records the submission on an approved application and marks it
// completed. Resubmission before payout overwrites the previous submission;
// after payout the application is frozen.
func (s *ApplicationService) SubmitWork(ctx context.Context, callerAddr string, applicationID uuid.UUID, submissionLink, narration string) (err error) {
	defer func() { metrics.Observe("submit_work", err) }()

	if err = models.ValidateSubmission(submissionLink, narration); err != nil {
		return err
	}

	caller, err := resolveCaller(ctx, s.users, callerAddr, rbac.PermSubmitWork)
	if err != nil {
		return err
	}

	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.ApplicantID != caller.ID {
		return fmt.Errorf("%w: only the applicant may submit work", apperr.ErrUnauthorized)
	}
	if !app.Approved {
		return apperr.ErrApplicationNotApproved
	}

	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return err
	}
	if job.Status == models.JobStatusPaid {
		return apperr.ErrAlreadyPaid
	}

	if err = s.apps.SubmitWork(ctx, applicationID, submissionLink, narration); err != nil {
		return err
	}

	_ = s.audit.Log(ctx, models.AuditLog{
		ActorUserID: &caller.ID,
		ActorType:   "user",
		Action:      "work_submitted",
		EntityType:  "application",
		EntityID:    &applicationID,
		Meta:        map[string]any{"job_id": app.JobID.String()},
	})
	_ = s.publisher.Publish(ctx, events.StreamJob, events.Event{
		Type: events.EventWorkSubmitted,
		Payload: map[string]any{
			"job_id":         app.JobID.String(),
			"application_id": applicationID.String(),
		},
	})

	s.log.Info("work submitted", zap.String("application_id", applicationID.String()))
	return nil
}

// Get returns one application, visible to its applicant and the job's
// client only.
func (s *ApplicationService) Get(ctx context.Context, callerAddr string, id uuid.UUID) (*models.Application, error) {
	caller, err := s.users.GetByAddress(ctx, callerAddr)
	if err != nil {
		return nil, err
	}

	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.ApplicantID == caller.ID {
		return app, nil
	}

	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if job.ClientID != caller.ID {
		return nil, apperr.ErrUnauthorized
	}
	return app, nil
}

// ListForJob returns a job's applications to its client.
func (s *ApplicationService) ListForJob(ctx context.Context, callerAddr string, jobID uuid.UUID) ([]models.Application, error) {
	caller, err := s.users.GetByAddress(ctx, callerAddr)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.ClientID != caller.ID {
		return nil, fmt.Errorf("%w: only the job's client may list applications", apperr.ErrUnauthorized)
	}
	return s.apps.ListByJob(ctx, jobID)
}

// ListMine returns the caller's own applications.
func (s *ApplicationService) ListMine(ctx context.Context, callerAddr string) ([]models.Application, error) {
	caller, err := s.users.GetByAddress(ctx, callerAddr)
	if err != nil {
		return nil, err
	}
	return s.apps.ListByApplicant(ctx, caller.ID)
}

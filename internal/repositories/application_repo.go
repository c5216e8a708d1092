package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freelance-market/backend/internal/apperr"
	"github.com/freelance-market/backend/internal/models"
)

type ApplicationRepo struct {
	pool *pgxpool.Pool
}

func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

const applicationColumns = `
	id, job_id, applicant_id, resume_link, approved, completed,
	submission_link, narration, client_review, expected_end_date,
	created_at, updated_at
`

// Create inserts one application. A second application by the same
// applicant to the same job fails ErrAlreadyExists.
func (r *ApplicationRepo) Create(ctx context.Context, a *models.Application) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO applications (job_id, applicant_id, resume_link, expected_end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, approved, completed, submission_link, narration, client_review, created_at, updated_at
	`, a.JobID, a.ApplicantID, a.ResumeLink, a.ExpectedEndDate,
	).Scan(&a.ID, &a.Approved, &a.Completed, &a.SubmissionLink, &a.Narration, &a.ClientReview, &a.CreatedAt, &a.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: application to job %s", apperr.ErrAlreadyExists, a.JobID)
	}
	return err
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var a models.Application
	err := r.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id).Scan(
		&a.ID, &a.JobID, &a.ApplicantID, &a.ResumeLink, &a.Approved, &a.Completed,
		&a.SubmissionLink, &a.Narration, &a.ClientReview, &a.ExpectedEndDate,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error) {
	return r.list(ctx, `WHERE job_id = $1`, jobID)
}

func (r *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.Application, error) {
	return r.list(ctx, `WHERE applicant_id = $1`, applicantID)
}

func (r *ApplicationRepo) list(ctx context.Context, where string, arg any) ([]models.Application, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+applicationColumns+` FROM applications `+where+` ORDER BY created_at DESC`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var a models.Application
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.ApplicantID, &a.ResumeLink, &a.Approved, &a.Completed,
			&a.SubmissionLink, &a.Narration, &a.ClientReview, &a.ExpectedEndDate,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// SubmitWork records the submission and marks the application completed.
// The update only lands while the application is approved and the job has
// not been paid out; resubmission before payout overwrites the fields.
func (r *ApplicationRepo) SubmitWork(ctx context.Context, applicationID uuid.UUID, submissionLink, narration string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ct, err := tx.Exec(ctx, `
		UPDATE applications a
		SET submission_link = $1, narration = $2, completed = true, updated_at = now()
		FROM jobs j
		WHERE a.id = $3 AND a.approved = true
		  AND j.id = a.job_id AND j.status IN ('filled', 'work_submitted')
	`, submissionLink, narration, applicationID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.ErrApplicationNotApproved
	}

	if _, err := tx.Exec(ctx, `
		UPDATE jobs j SET status = 'work_submitted', updated_at = now()
		FROM applications a
		WHERE a.id = $1 AND j.id = a.job_id AND j.status = 'filled'
	`, applicationID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

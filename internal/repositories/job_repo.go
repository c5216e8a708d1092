package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freelance-market/backend/internal/apperr"
	"github.com/freelance-market/backend/internal/escrow"
	"github.com/freelance-market/backend/internal/models"
)

type JobRepo struct {
	pool *pgxpool.Pool
}

func NewJobRepo(pool *pgxpool.Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

// CreateFunded inserts the job post and its escrow vault while moving the
// amount out of the client's spendable balance, all in one transaction.
// Nothing is written when the client cannot cover the amount or the title
// is already taken.
func (r *JobRepo) CreateFunded(ctx context.Context, j *models.JobPost) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ct, err := tx.Exec(ctx, `
		UPDATE users SET balance = balance - $1
		WHERE id = $2 AND balance >= $1
	`, j.Amount, j.ClientID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: need %d", apperr.ErrInsufficientFunds, j.Amount)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO jobs (id, client_id, title, description, amount, status, escrow_nonce, escrow_vault, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`, j.ID, j.ClientID, j.Title, j.Description, j.Amount, j.Status, j.EscrowNonce, j.EscrowVault, j.StartDate, j.EndDate,
	).Scan(&j.CreatedAt, &j.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: job %q for this client", apperr.ErrAlreadyExists, j.Title)
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO escrow_accounts (job_id, vault, nonce, balance)
		VALUES ($1, $2, $3, $4)
	`, j.ID, j.EscrowVault, j.EscrowNonce, j.Amount)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.JobPost, error) {
	var j models.JobPost
	err := r.pool.QueryRow(ctx, `
		SELECT id, client_id, title, description, amount, status, escrow_nonce, escrow_vault,
		       start_date, end_date, created_at, updated_at
		FROM jobs WHERE id = $1
	`, id).Scan(&j.ID, &j.ClientID, &j.Title, &j.Description, &j.Amount, &j.Status, &j.EscrowNonce, &j.EscrowVault,
		&j.StartDate, &j.EndDate, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

type JobFilter struct {
	ClientID *uuid.UUID
	Status   *string
	Limit    int
	Offset   int
}

func (r *JobRepo) List(ctx context.Context, f JobFilter) ([]models.JobPost, error) {
	query := `
		SELECT id, client_id, title, description, amount, status, escrow_nonce, escrow_vault,
		       start_date, end_date, created_at, updated_at
		FROM jobs
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.ClientID != nil {
		where = append(where, fmt.Sprintf("client_id = $%d", argIdx))
		args = append(args, *f.ClientID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.JobPost
	for rows.Next() {
		var j models.JobPost
		if err := rows.Scan(&j.ID, &j.ClientID, &j.Title, &j.Description, &j.Amount, &j.Status, &j.EscrowNonce, &j.EscrowVault,
			&j.StartDate, &j.EndDate, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// Fill approves one application and marks the job filled in a single
// transaction. The status update is a compare-and-swap: a concurrent
// approval on the same job sees zero rows and fails ErrJobAlreadyFilled.
func (r *JobRepo) Fill(ctx context.Context, jobID, applicationID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ct, err := tx.Exec(ctx, `
		UPDATE jobs SET status = 'filled', updated_at = now()
		WHERE id = $1 AND status = 'open'
	`, jobID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.ErrJobAlreadyFilled
	}

	ct, err = tx.Exec(ctx, `
		UPDATE applications SET approved = true, updated_at = now()
		WHERE id = $1 AND job_id = $2
	`, applicationID, jobID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}

	return tx.Commit(ctx)
}

// ReleaseEscrow pays the vault balance out to the freelancer and freezes
// the job. It requires a custodian-minted voucher; the job row CAS makes
// the payout one-shot, and the vault update refuses to release anything
// other than exactly the job amount.
func (r *JobRepo) ReleaseEscrow(ctx context.Context, v escrow.ReleaseVoucher, applicationID, freelancerID uuid.UUID, review string) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var amount int64
	err = tx.QueryRow(ctx, `
		SELECT amount FROM jobs WHERE id = $1 FOR UPDATE
	`, v.JobID).Scan(&amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperr.ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	ct, err := tx.Exec(ctx, `
		UPDATE jobs SET status = 'paid', updated_at = now()
		WHERE id = $1 AND status = 'work_submitted'
	`, v.JobID)
	if err != nil {
		return 0, err
	}
	if ct.RowsAffected() == 0 {
		return 0, apperr.ErrWorkNotCompleted
	}

	ct, err = tx.Exec(ctx, `
		UPDATE escrow_accounts
		SET balance = 0, status = 'released', released_at = now(), released_to = $1
		WHERE job_id = $2 AND vault = $3 AND status = 'holding' AND balance = $4
	`, freelancerID, v.JobID, v.Vault, amount)
	if err != nil {
		return 0, err
	}
	if ct.RowsAffected() == 0 {
		return 0, fmt.Errorf("%w: vault for job %s does not hold %d", apperr.ErrEscrowMismatch, v.JobID, amount)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE users SET balance = balance + $1 WHERE id = $2
	`, amount, freelancerID); err != nil {
		return 0, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE applications SET client_review = $1, updated_at = now()
		WHERE id = $2 AND job_id = $3
	`, review, applicationID, v.JobID); err != nil {
		return 0, err
	}

	return amount, tx.Commit(ctx)
}

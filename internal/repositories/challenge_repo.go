package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freelance-market/backend/internal/apperr"
	"github.com/freelance-market/backend/internal/models"
)

type ChallengeRepo struct {
	pool *pgxpool.Pool
}

func NewChallengeRepo(pool *pgxpool.Pool) *ChallengeRepo {
	return &ChallengeRepo{pool: pool}
}

// Create issues a login nonce for an address.
func (r *ChallengeRepo) Create(ctx context.Context, address string, ttl time.Duration) (*models.AuthChallenge, error) {
	c := &models.AuthChallenge{
		Address: address,
		Payload: generateNonce(32),
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO auth_challenges (address, payload, expires_at)
		VALUES ($1, $2, now() + $3::interval)
		RETURNING id, created_at, expires_at
	`, address, c.Payload, ttl.String()).Scan(&c.ID, &c.CreatedAt, &c.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Consume marks a challenge used. It succeeds at most once per payload and
// only while unexpired, which is the replay protection for login.
func (r *ChallengeRepo) Consume(ctx context.Context, address, payload string) (*models.AuthChallenge, error) {
	var c models.AuthChallenge
	err := r.pool.QueryRow(ctx, `
		UPDATE auth_challenges
		SET used = true
		WHERE payload = $1 AND address = $2 AND used = false AND expires_at > now()
		RETURNING id, address, payload, created_at, expires_at, used
	`, payload, address).Scan(&c.ID, &c.Address, &c.Payload, &c.CreatedAt, &c.ExpiresAt, &c.Used)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteExpired removes stale nonces; run periodically by the worker.
func (r *ChallengeRepo) DeleteExpired(ctx context.Context) (int64, error) {
	ct, err := r.pool.Exec(ctx, `DELETE FROM auth_challenges WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cloudbr34k84/travel-app-sub000/internal/domain"
	"github.com/cloudbr34k84/travel-app-sub000/internal/repository"
)

// CreateSession inserts a session row.
func (r *Repository) CreateSession(ctx context.Context, session *domain.Session) error {
	const query = `INSERT INTO sessions (id, user_id, token_hash, ip_address, user_agent, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		session.ID, session.UserID, session.TokenHash,
		session.IPAddress, session.UserAgent, session.CreatedAt, session.ExpiresAt)
	return translateError(err)
}

// GetSessionByTokenHash fetches a session by its storage key.
func (r *Repository) GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	const query = `SELECT id, user_id, token_hash, ip_address, user_agent, created_at, expires_at
		FROM sessions WHERE token_hash = $1`
	row := r.pool.QueryRow(ctx, query, tokenHash)
	var s domain.Session
	if err := row.Scan(&s.ID, &s.UserID, &s.TokenHash, &s.IPAddress, &s.UserAgent,
		&s.CreatedAt, &s.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// DeleteSessionByTokenHash removes a session; deleting an absent session is
// not an error so logout stays idempotent.
func (r *Repository) DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE token_hash = $1`, tokenHash)
	return err
}

// DeleteSessionsByUser removes every session belonging to a user.
func (r *Repository) DeleteSessionsByUser(ctx context.Context, userID string) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// DeleteExpiredSessions sweeps rows past their expiry.
func (r *Repository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// CountSessionsByUser reports live sessions for a user.
func (r *Repository) CountSessionsByUser(ctx context.Context, userID string) (int, error) {
	row := r.pool.QueryRow(ctx, `SELECT COUNT(1) FROM sessions WHERE user_id = $1`, userID)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

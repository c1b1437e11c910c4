package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cloudbr34k84/travel-app-sub000/internal/domain"
	"github.com/cloudbr34k84/travel-app-sub000/internal/repository"
)

const userColumns = `id, username, email, password_hash, first_name, last_name,
	bio, location, phone, avatar, created_at, last_login_at, login_count`

// CreateUser inserts a user row.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `INSERT INTO users
		(id, username, email, password_hash, first_name, last_name, bio, location, phone, avatar, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.Bio, user.Location, user.Phone, user.Avatar,
		user.CreatedAt)
	return translateError(err)
}

// GetUserByID retrieves a user by identifier.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetUserByUsername retrieves a user by unique username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// GetUserByEmail retrieves a user by unique email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *Repository) getUser(ctx context.Context, query, arg string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.Bio, &u.Location, &u.Phone, &u.Avatar,
		&u.CreatedAt, &u.LastLoginAt, &u.LoginCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateProfile persists mutable profile fields.
func (r *Repository) UpdateProfile(ctx context.Context, user *domain.User) error {
	const query = `UPDATE users SET email = $2, first_name = $3, last_name = $4,
		bio = $5, location = $6, phone = $7, avatar = $8 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.FirstName, user.LastName,
		user.Bio, user.Location, user.Phone, user.Avatar)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdatePasswordHash replaces the stored credential hash.
func (r *Repository) UpdatePasswordHash(ctx context.Context, userID string, hash []byte) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, userID, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// RecordLogin stamps the login time and bumps the monotonic counter in one
// statement; last-write-wins is acceptable for this metadata.
func (r *Repository) RecordLogin(ctx context.Context, userID string, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET last_login_at = $2, login_count = login_count + 1 WHERE id = $1`,
		userID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

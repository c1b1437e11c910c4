package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cloudbr34k84/travel-app-sub000/internal/repository"
)

// Repository implements persistence interfaces on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New constructs a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ensure Repository satisfies interfaces.
var (
	_ repository.UserRepository          = (*Repository)(nil)
	_ repository.SessionRepository       = (*Repository)(nil)
	_ repository.DestinationRepository   = (*Repository)(nil)
	_ repository.ActivityRepository      = (*Repository)(nil)
	_ repository.AccommodationRepository = (*Repository)(nil)
	_ repository.TripRepository          = (*Repository)(nil)
)

const uniqueViolation = "23505"

// translateError converts driver uniqueness violations into
// repository.ConflictError carrying the constraint name.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &repository.ConflictError{Constraint: pgErr.ConstraintName}
	}
	return err
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/cloudbr34k84/travel-app-sub000/internal/domain"
	"github.com/cloudbr34k84/travel-app-sub000/internal/repository"
)

// CreateDestination inserts a destination.
func (r *Repository) CreateDestination(ctx context.Context, d *domain.Destination) error {
	const query = `INSERT INTO destinations (id, name, country, region, description, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query, d.ID, d.Name, d.Country, d.Region, d.Description, d.ImageURL, d.CreatedAt)
	return translateError(err)
}

// GetDestinationByID fetches one destination.
func (r *Repository) GetDestinationByID(ctx context.Context, id string) (*domain.Destination, error) {
	const query = `SELECT id, name, country, region, description, image_url, created_at
		FROM destinations WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	var d domain.Destination
	if err := row.Scan(&d.ID, &d.Name, &d.Country, &d.Region, &d.Description, &d.ImageURL, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListDestinations returns the full catalog ordered by name.
func (r *Repository) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	const query = `SELECT id, name, country, region, description, image_url, created_at
		FROM destinations ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Destination
	for rows.Next() {
		var d domain.Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Country, &d.Region, &d.Description, &d.ImageURL, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateDestination persists catalog edits.
func (r *Repository) UpdateDestination(ctx context.Context, d *domain.Destination) error {
	const query = `UPDATE destinations SET name = $2, country = $3, region = $4,
		description = $5, image_url = $6 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, d.ID, d.Name, d.Country, d.Region, d.Description, d.ImageURL)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteDestination removes a destination; join rows cascade in the schema.
func (r *Repository) DeleteDestination(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM destinations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CreateActivity inserts an activity.
func (r *Repository) CreateActivity(ctx context.Context, a *domain.Activity) error {
	const query = `INSERT INTO activities (id, name, category, cost, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, a.ID, a.Name, a.Category, a.Cost, a.Description, a.CreatedAt)
	return translateError(err)
}

// GetActivityByID fetches one activity.
func (r *Repository) GetActivityByID(ctx context.Context, id string) (*domain.Activity, error) {
	const query = `SELECT id, name, category, cost, description, created_at FROM activities WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	var a domain.Activity
	if err := row.Scan(&a.ID, &a.Name, &a.Category, &a.Cost, &a.Description, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListActivities returns the activity catalog ordered by name.
func (r *Repository) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	const query = `SELECT id, name, category, cost, description, created_at FROM activities ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Activity
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.Name, &a.Category, &a.Cost, &a.Description, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateActivity persists catalog edits.
func (r *Repository) UpdateActivity(ctx context.Context, a *domain.Activity) error {
	const query = `UPDATE activities SET name = $2, category = $3, cost = $4, description = $5 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, a.ID, a.Name, a.Category, a.Cost, a.Description)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteActivity removes an activity.
func (r *Repository) DeleteActivity(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CreateAccommodation inserts an accommodation.
func (r *Repository) CreateAccommodation(ctx context.Context, a *domain.Accommodation) error {
	const query = `INSERT INTO accommodations (id, name, type, price_per_night, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, a.ID, a.Name, a.Type, a.PricePerNight, a.Description, a.CreatedAt)
	return translateError(err)
}

// GetAccommodationByID fetches one accommodation.
func (r *Repository) GetAccommodationByID(ctx context.Context, id string) (*domain.Accommodation, error) {
	const query = `SELECT id, name, type, price_per_night, description, created_at
		FROM accommodations WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	var a domain.Accommodation
	if err := row.Scan(&a.ID, &a.Name, &a.Type, &a.PricePerNight, &a.Description, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListAccommodations returns the accommodation catalog ordered by name.
func (r *Repository) ListAccommodations(ctx context.Context) ([]domain.Accommodation, error) {
	const query = `SELECT id, name, type, price_per_night, description, created_at
		FROM accommodations ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Accommodation
	for rows.Next() {
		var a domain.Accommodation
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.PricePerNight, &a.Description, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateAccommodation persists catalog edits.
func (r *Repository) UpdateAccommodation(ctx context.Context, a *domain.Accommodation) error {
	const query = `UPDATE accommodations SET name = $2, type = $3, price_per_night = $4, description = $5
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, a.ID, a.Name, a.Type, a.PricePerNight, a.Description)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteAccommodation removes an accommodation.
func (r *Repository) DeleteAccommodation(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM accommodations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

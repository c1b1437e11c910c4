package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cloudbr34k84/travel-app-sub000/internal/domain"
	"github.com/cloudbr34k84/travel-app-sub000/internal/repository"
)

// tripItemTable maps a trip item kind to its join table and item column.
func tripItemTable(kind string) (table, column string, err error) {
	switch kind {
	case repository.TripItemDestination:
		return "trip_destinations", "destination_id", nil
	case repository.TripItemActivity:
		return "trip_activities", "activity_id", nil
	case repository.TripItemAccommodation:
		return "trip_accommodations", "accommodation_id", nil
	default:
		return "", "", fmt.Errorf("unknown trip item kind %q", kind)
	}
}

// CreateTrip inserts a trip row.
func (r *Repository) CreateTrip(ctx context.Context, t *domain.Trip) error {
	const query = `INSERT INTO trips (id, owner_id, name, start_date, end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		t.ID, nullableID(t.OwnerID), t.Name, t.StartDate, t.EndDate, t.Status, t.CreatedAt, t.UpdatedAt)
	return translateError(err)
}

// GetTripByID fetches one trip.
func (r *Repository) GetTripByID(ctx context.Context, id string) (*domain.Trip, error) {
	const query = `SELECT id, owner_id, name, start_date, end_date, status, created_at, updated_at
		FROM trips WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTrip(row)
}

// ListTripsByOwner returns the owner's trips, newest first.
func (r *Repository) ListTripsByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error) {
	const query = `SELECT id, owner_id, name, start_date, end_date, status, created_at, updated_at
		FROM trips WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.listTrips(ctx, query, ownerID)
}

// UpdateTrip persists trip edits and refreshes updated_at.
func (r *Repository) UpdateTrip(ctx context.Context, t *domain.Trip) error {
	const query = `UPDATE trips SET name = $2, start_date = $3, end_date = $4, status = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, t.ID, t.Name, t.StartDate, t.EndDate, t.Status, t.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteTrip removes a trip; join rows cascade in the schema.
func (r *Repository) DeleteTrip(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AttachTripItem links a catalog item to a trip. Re-attaching is a no-op.
func (r *Repository) AttachTripItem(ctx context.Context, tripID, kind, itemID string) error {
	table, column, err := tripItemTable(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s (trip_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`, table, column)
	_, err = r.pool.Exec(ctx, query, tripID, itemID)
	return err
}

// DetachTripItem unlinks a catalog item from a trip.
func (r *Repository) DetachTripItem(ctx context.Context, tripID, kind, itemID string) error {
	table, column, err := tripItemTable(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE trip_id = $1 AND %s = $2`, table, column)
	_, err = r.pool.Exec(ctx, query, tripID, itemID)
	return err
}

// ListTripDestinations resolves a trip's selected destinations.
func (r *Repository) ListTripDestinations(ctx context.Context, tripID string) ([]domain.Destination, error) {
	const query = `SELECT d.id, d.name, d.country, d.region, d.description, d.image_url, d.created_at
		FROM destinations d
		JOIN trip_destinations td ON td.destination_id = d.id
		WHERE td.trip_id = $1 ORDER BY d.name`
	rows, err := r.pool.Query(ctx, query, tripID)
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

// ListTripActivities resolves a trip's selected activities.
func (r *Repository) ListTripActivities(ctx context.Context, tripID string) ([]domain.Activity, error) {
	const query = `SELECT a.id, a.name, a.category, a.cost, a.description, a.created_at
		FROM activities a
		JOIN trip_activities ta ON ta.activity_id = a.id
		WHERE ta.trip_id = $1 ORDER BY a.name`
	rows, err := r.pool.Query(ctx, query, tripID)
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

// ListTripAccommodations resolves a trip's selected accommodations.
func (r *Repository) ListTripAccommodations(ctx context.Context, tripID string) ([]domain.Accommodation, error) {
	const query = `SELECT a.id, a.name, a.type, a.price_per_night, a.description, a.created_at
		FROM accommodations a
		JOIN trip_accommodations ta ON ta.accommodation_id = a.id
		WHERE ta.trip_id = $1 ORDER BY a.name`
	rows, err := r.pool.Query(ctx, query, tripID)
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

// CountTripsByStatus aggregates the owner's trips per lifecycle state.
func (r *Repository) CountTripsByStatus(ctx context.Context, ownerID string) (map[string]int, error) {
	const query = `SELECT status, COUNT(1) FROM trips WHERE owner_id = $1 GROUP BY status`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// ListUpcomingTrips returns trips starting on or after from, soonest first.
func (r *Repository) ListUpcomingTrips(ctx context.Context, ownerID string, from time.Time, limit int) ([]domain.Trip, error) {
	const query = `SELECT id, owner_id, name, start_date, end_date, status, created_at, updated_at
		FROM trips WHERE owner_id = $1 AND start_date >= $2 ORDER BY start_date LIMIT $3`
	return r.listTrips(ctx, query, ownerID, from, limit)
}

func (r *Repository) listTrips(ctx context.Context, query string, args ...any) ([]domain.Trip, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var t domain.Trip
	var owner *string
	if err := row.Scan(&t.ID, &owner, &t.Name, &t.StartDate, &t.EndDate, &t.Status,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if owner != nil {
		t.OwnerID = *owner
	}
	return &t, nil
}

func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

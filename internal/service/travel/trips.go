package travel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cloudbr34k84/travel-app-sub000/internal/domain"
	"github.com/cloudbr34k84/travel-app-sub000/internal/repository"
)

// TripInput is the create/update payload for a trip.
type TripInput struct {
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
}

func validateTripInput(in TripInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if in.EndDate.Before(in.StartDate) {
		return fmt.Errorf("%w: endDate cannot be before startDate", ErrInvalidInput)
	}
	if in.Status != "" && !domain.ValidTripStatus(in.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
	}
	return nil
}

// CreateTrip starts a new itinerary owned by the session's user.
func (s Service) CreateTrip(ctx context.Context, sess domain.SessionContext, in TripInput) (*domain.Trip, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	if err := validateTripInput(in); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = domain.TripStatusPlanning
	}
	now := time.Now().UTC()
	t := &domain.Trip{
		ID:        uuid.NewString(),
		OwnerID:   sess.UserID,
		Name:      in.Name,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.trips.CreateTrip(ctx, t); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}
	s.logger.Info("trip created", "trip_id", t.ID, "user_id", sess.UserID)
	return t, nil
}

// ownedTrip loads a trip and hides other users' trips behind ErrNotFound so
// existence is not leaked.
func (s Service) ownedTrip(ctx context.Context, sess domain.SessionContext, tripID string) (*domain.Trip, error) {
	t, err := s.trips.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != sess.UserID {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

// GetTrip returns the trip with its selections resolved.
func (s Service) GetTrip(ctx context.Context, sess domain.SessionContext, tripID string) (*domain.TripDetail, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	t, err := s.ownedTrip(ctx, sess, tripID)
	if err != nil {
		return nil, err
	}
	return s.assembleDetail(ctx, t)
}

func (s Service) assembleDetail(ctx context.Context, t *domain.Trip) (*domain.TripDetail, error) {
	destinations, err := s.trips.ListTripDestinations(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list trip destinations: %w", err)
	}
	activities, err := s.trips.ListTripActivities(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list trip activities: %w", err)
	}
	accommodations, err := s.trips.ListTripAccommodations(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list trip accommodations: %w", err)
	}
	return &domain.TripDetail{
		Trip:           *t,
		Destinations:   destinations,
		Activities:     activities,
		Accommodations: accommodations,
	}, nil
}

// ListTrips returns the caller's trips.
func (s Service) ListTrips(ctx context.Context, sess domain.SessionContext) ([]domain.Trip, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	return s.trips.ListTripsByOwner(ctx, sess.UserID)
}

// UpdateTrip edits an owned trip.
func (s Service) UpdateTrip(ctx context.Context, sess domain.SessionContext, tripID string, in TripInput) (*domain.Trip, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	t, err := s.ownedTrip(ctx, sess, tripID)
	if err != nil {
		return nil, err
	}
	if err := validateTripInput(in); err != nil {
		return nil, err
	}
	t.Name = in.Name
	t.StartDate = in.StartDate
	t.EndDate = in.EndDate
	if in.Status != "" {
		t.Status = in.Status
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.trips.UpdateTrip(ctx, t); err != nil {
		return nil, fmt.Errorf("update trip: %w", err)
	}
	return t, nil
}

// DeleteTrip removes an owned trip and its selections.
func (s Service) DeleteTrip(ctx context.Context, sess domain.SessionContext, tripID string) error {
	if err := requireUser(sess); err != nil {
		return err
	}
	if _, err := s.ownedTrip(ctx, sess, tripID); err != nil {
		return err
	}
	return s.trips.DeleteTrip(ctx, tripID)
}

// AttachItem links a catalog item to an owned trip after checking the item
// exists. Attaching the same item twice is a no-op.
func (s Service) AttachItem(ctx context.Context, sess domain.SessionContext, tripID, kind, itemID string) error {
	if err := requireUser(sess); err != nil {
		return err
	}
	if _, err := s.ownedTrip(ctx, sess, tripID); err != nil {
		return err
	}
	if err := s.checkItemExists(ctx, kind, itemID); err != nil {
		return err
	}
	if err := s.trips.AttachTripItem(ctx, tripID, kind, itemID); err != nil {
		return fmt.Errorf("attach %s: %w", kind, err)
	}
	return nil
}

// DetachItem unlinks a catalog item from an owned trip.
func (s Service) DetachItem(ctx context.Context, sess domain.SessionContext, tripID, kind, itemID string) error {
	if err := requireUser(sess); err != nil {
		return err
	}
	if _, err := s.ownedTrip(ctx, sess, tripID); err != nil {
		return err
	}
	if err := s.trips.DetachTripItem(ctx, tripID, kind, itemID); err != nil {
		return fmt.Errorf("detach %s: %w", kind, err)
	}
	return nil
}

func (s Service) checkItemExists(ctx context.Context, kind, itemID string) error {
	var err error
	switch kind {
	case repository.TripItemDestination:
		_, err = s.destinations.GetDestinationByID(ctx, itemID)
	case repository.TripItemActivity:
		_, err = s.activities.GetActivityByID(ctx, itemID)
	case repository.TripItemAccommodation:
		_, err = s.accommodations.GetAccommodationByID(ctx, itemID)
	default:
		return fmt.Errorf("%w: unknown item kind %q", ErrInvalidInput, kind)
	}
	return err
}

// DashboardSummary aggregates the caller's planning state for the dashboard.
type DashboardSummary struct {
	TripsByStatus map[string]int `json:"tripsByStatus"`
	UpcomingTrips []domain.Trip  `json:"upcomingTrips"`
	Totals        struct {
		Destinations   int `json:"destinations"`
		Activities     int `json:"activities"`
		Accommodations int `json:"accommodations"`
	} `json:"totals"`
}

// Dashboard returns trip counts by status, the next upcoming trips, and
// catalog sizes.
func (s Service) Dashboard(ctx context.Context, sess domain.SessionContext) (*DashboardSummary, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	counts, err := s.trips.CountTripsByStatus(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("count trips: %w", err)
	}
	upcoming, err := s.trips.ListUpcomingTrips(ctx, sess.UserID, time.Now().UTC(), 5)
	if err != nil {
		return nil, fmt.Errorf("list upcoming trips: %w", err)
	}
	destinations, err := s.destinations.ListDestinations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	activities, err := s.activities.ListActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	accommodations, err := s.accommodations.ListAccommodations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accommodations: %w", err)
	}

	summary := &DashboardSummary{TripsByStatus: counts, UpcomingTrips: upcoming}
	summary.Totals.Destinations = len(destinations)
	summary.Totals.Activities = len(activities)
	summary.Totals.Accommodations = len(accommodations)
	return summary, nil
}

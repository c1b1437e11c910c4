package travel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cloudbr34k84/travel-app-sub000/internal/domain"
	"github.com/cloudbr34k84/travel-app-sub000/internal/repository"
	"github.com/cloudbr34k84/travel-app-sub000/internal/service/auth"
)

// ErrInvalidInput marks malformed travel payloads; the HTTP layer maps it to
// a 400 with the wrapped message.
var ErrInvalidInput = errors.New("invalid input")

// Service owns the destination/activity/accommodation catalog and the trip
// builder. Every operation takes an explicit SessionContext; anonymous
// callers are rejected before any storage access.
type Service struct {
	destinations   repository.DestinationRepository
	activities     repository.ActivityRepository
	accommodations repository.AccommodationRepository
	trips          repository.TripRepository
	logger         *slog.Logger
}

// New constructs a Service.
func New(
	destinations repository.DestinationRepository,
	activities repository.ActivityRepository,
	accommodations repository.AccommodationRepository,
	trips repository.TripRepository,
	logger *slog.Logger,
) Service {
	return Service{
		destinations:   destinations,
		activities:     activities,
		accommodations: accommodations,
		trips:          trips,
		logger:         logger,
	}
}

// requireUser rejects anonymous callers with the gateway's sentinel so the
// HTTP layer maps every unauthenticated path the same way.
func requireUser(sess domain.SessionContext) error {
	if sess.Anonymous() {
		return auth.ErrNotAuthenticated
	}
	return nil
}

// DestinationInput is the create/update payload for a destination.
type DestinationInput struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	Region      string `json:"region"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// CreateDestination adds a destination to the catalog.
func (s Service) CreateDestination(ctx context.Context, sess domain.SessionContext, in DestinationInput) (*domain.Destination, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Country) == "" {
		return nil, fmt.Errorf("%w: country is required", ErrInvalidInput)
	}
	d := &domain.Destination{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Country:     in.Country,
		Region:      in.Region,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.destinations.CreateDestination(ctx, d); err != nil {
		return nil, fmt.Errorf("create destination: %w", err)
	}
	s.logger.Info("destination created", "destination_id", d.ID, "user_id", sess.UserID)
	return d, nil
}

// GetDestination fetches one destination.
func (s Service) GetDestination(ctx context.Context, sess domain.SessionContext, id string) (*domain.Destination, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	return s.destinations.GetDestinationByID(ctx, id)
}

// ListDestinations returns the catalog.
func (s Service) ListDestinations(ctx context.Context, sess domain.SessionContext) ([]domain.Destination, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	return s.destinations.ListDestinations(ctx)
}

// UpdateDestination edits a catalog entry.
func (s Service) UpdateDestination(ctx context.Context, sess domain.SessionContext, id string, in DestinationInput) (*domain.Destination, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	d, err := s.destinations.GetDestinationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	d.Name = in.Name
	d.Country = in.Country
	d.Region = in.Region
	d.Description = in.Description
	d.ImageURL = in.ImageURL
	if err := s.destinations.UpdateDestination(ctx, d); err != nil {
		return nil, fmt.Errorf("update destination: %w", err)
	}
	return d, nil
}

// DeleteDestination removes a catalog entry; trips keep their rows, the join
// entries cascade away.
func (s Service) DeleteDestination(ctx context.Context, sess domain.SessionContext, id string) error {
	if err := requireUser(sess); err != nil {
		return err
	}
	return s.destinations.DeleteDestination(ctx, id)
}

// ActivityInput is the create/update payload for an activity.
type ActivityInput struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Cost        float64 `json:"cost"`
	Description string  `json:"description"`
}

// CreateActivity adds an activity to the catalog.
func (s Service) CreateActivity(ctx context.Context, sess domain.SessionContext, in ActivityInput) (*domain.Activity, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Cost < 0 {
		return nil, fmt.Errorf("%w: cost cannot be negative", ErrInvalidInput)
	}
	a := &domain.Activity{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Category:    in.Category,
		Cost:        in.Cost,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.activities.CreateActivity(ctx, a); err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	return a, nil
}

// GetActivity fetches one activity.
func (s Service) GetActivity(ctx context.Context, sess domain.SessionContext, id string) (*domain.Activity, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	return s.activities.GetActivityByID(ctx, id)
}

// ListActivities returns the catalog.
func (s Service) ListActivities(ctx context.Context, sess domain.SessionContext) ([]domain.Activity, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	return s.activities.ListActivities(ctx)
}

// UpdateActivity edits a catalog entry.
func (s Service) UpdateActivity(ctx context.Context, sess domain.SessionContext, id string, in ActivityInput) (*domain.Activity, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	a, err := s.activities.GetActivityByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Cost < 0 {
		return nil, fmt.Errorf("%w: cost cannot be negative", ErrInvalidInput)
	}
	a.Name = in.Name
	a.Category = in.Category
	a.Cost = in.Cost
	a.Description = in.Description
	if err := s.activities.UpdateActivity(ctx, a); err != nil {
		return nil, fmt.Errorf("update activity: %w", err)
	}
	return a, nil
}

// DeleteActivity removes a catalog entry.
func (s Service) DeleteActivity(ctx context.Context, sess domain.SessionContext, id string) error {
	if err := requireUser(sess); err != nil {
		return err
	}
	return s.activities.DeleteActivity(ctx, id)
}

// AccommodationInput is the create/update payload for an accommodation.
type AccommodationInput struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	PricePerNight float64 `json:"pricePerNight"`
	Description   string  `json:"description"`
}

// CreateAccommodation adds an accommodation to the catalog.
func (s Service) CreateAccommodation(ctx context.Context, sess domain.SessionContext, in AccommodationInput) (*domain.Accommodation, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.PricePerNight < 0 {
		return nil, fmt.Errorf("%w: pricePerNight cannot be negative", ErrInvalidInput)
	}
	a := &domain.Accommodation{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Type:          in.Type,
		PricePerNight: in.PricePerNight,
		Description:   in.Description,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.accommodations.CreateAccommodation(ctx, a); err != nil {
		return nil, fmt.Errorf("create accommodation: %w", err)
	}
	return a, nil
}

// GetAccommodation fetches one accommodation.
func (s Service) GetAccommodation(ctx context.Context, sess domain.SessionContext, id string) (*domain.Accommodation, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	return s.accommodations.GetAccommodationByID(ctx, id)
}

// ListAccommodations returns the catalog.
func (s Service) ListAccommodations(ctx context.Context, sess domain.SessionContext) ([]domain.Accommodation, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	return s.accommodations.ListAccommodations(ctx)
}

// UpdateAccommodation edits a catalog entry.
func (s Service) UpdateAccommodation(ctx context.Context, sess domain.SessionContext, id string, in AccommodationInput) (*domain.Accommodation, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	a, err := s.accommodations.GetAccommodationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.PricePerNight < 0 {
		return nil, fmt.Errorf("%w: pricePerNight cannot be negative", ErrInvalidInput)
	}
	a.Name = in.Name
	a.Type = in.Type
	a.PricePerNight = in.PricePerNight
	a.Description = in.Description
	if err := s.accommodations.UpdateAccommodation(ctx, a); err != nil {
		return nil, fmt.Errorf("update accommodation: %w", err)
	}
	return a, nil
}

// DeleteAccommodation removes a catalog entry.
func (s Service) DeleteAccommodation(ctx context.Context, sess domain.SessionContext, id string) error {
	if err := requireUser(sess); err != nil {
		return err
	}
	return s.accommodations.DeleteAccommodation(ctx, id)
}

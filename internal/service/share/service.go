package share

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudbr34k84/travel-app-sub000/internal/domain"
	"github.com/cloudbr34k84/travel-app-sub000/internal/repository"
	"github.com/cloudbr34k84/travel-app-sub000/internal/service/auth"
	"github.com/cloudbr34k84/travel-app-sub000/pkg/jwt"
)

// ErrInvalidLink covers expired, tampered, or otherwise unusable share
// tokens. Resolution failures never say which.
var ErrInvalidLink = errors.New("share link is invalid or expired")

// Service issues and resolves signed read-only trip share links. A link is a
// stateless JWT: revocation is by expiry only.
type Service struct {
	trips  repository.TripRepository
	logger *slog.Logger
	secret string
	ttl    time.Duration
}

// New constructs a Service.
func New(trips repository.TripRepository, logger *slog.Logger, secret string, ttl time.Duration) Service {
	return Service{trips: trips, logger: logger, secret: secret, ttl: ttl}
}

// Link is an issued share token.
type Link struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CreateLink issues a share token for a trip owned by the caller.
func (s Service) CreateLink(ctx context.Context, sess domain.SessionContext, tripID string) (*Link, error) {
	if sess.Anonymous() {
		return nil, auth.ErrNotAuthenticated
	}
	trip, err := s.trips.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.OwnerID != sess.UserID {
		return nil, repository.ErrNotFound
	}
	expiresAt := time.Now().UTC().Add(s.ttl)
	token, err := jwt.GenerateShareToken(trip.ID, s.secret, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("sign share token: %w", err)
	}
	s.logger.Info("share link issued", "trip_id", trip.ID, "user_id", sess.UserID)
	return &Link{Token: token, ExpiresAt: expiresAt}, nil
}

// Resolve validates a share token and returns the trip read-only, with its
// selections resolved. No session is required.
func (s Service) Resolve(ctx context.Context, token string) (*domain.TripDetail, error) {
	claims, err := jwt.ParseShareToken(token, s.secret)
	if err != nil {
		return nil, ErrInvalidLink
	}
	trip, err := s.trips.GetTripByID(ctx, claims.TripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidLink
		}
		return nil, err
	}
	destinations, err := s.trips.ListTripDestinations(ctx, trip.ID)
	if err != nil {
		return nil, fmt.Errorf("list trip destinations: %w", err)
	}
	activities, err := s.trips.ListTripActivities(ctx, trip.ID)
	if err != nil {
		return nil, fmt.Errorf("list trip activities: %w", err)
	}
	accommodations, err := s.trips.ListTripAccommodations(ctx, trip.ID)
	if err != nil {
		return nil, fmt.Errorf("list trip accommodations: %w", err)
	}
	return &domain.TripDetail{
		Trip:           *trip,
		Destinations:   destinations,
		Activities:     activities,
		Accommodations: accommodations,
	}, nil
}

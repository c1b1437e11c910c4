package repository

import (
	"context"
	"time"

	"github.com/cloudbr34k84/travel-app-sub000/internal/domain"
)

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdatePasswordHash(ctx context.Context, userID string, hash []byte) error
	RecordLogin(ctx context.Context, userID string, at time.Time) error
}

// SessionRepository persists server-side sessions keyed by token hash.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error
	DeleteSessionsByUser(ctx context.Context, userID string) (int, error)
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
	CountSessionsByUser(ctx context.Context, userID string) (int, error)
}

// DestinationRepository persists the destination catalog.
type DestinationRepository interface {
	CreateDestination(ctx context.Context, d *domain.Destination) error
	GetDestinationByID(ctx context.Context, id string) (*domain.Destination, error)
	ListDestinations(ctx context.Context) ([]domain.Destination, error)
	UpdateDestination(ctx context.Context, d *domain.Destination) error
	DeleteDestination(ctx context.Context, id string) error
}

// ActivityRepository persists the activity catalog.
type ActivityRepository interface {
	CreateActivity(ctx context.Context, a *domain.Activity) error
	GetActivityByID(ctx context.Context, id string) (*domain.Activity, error)
	ListActivities(ctx context.Context) ([]domain.Activity, error)
	UpdateActivity(ctx context.Context, a *domain.Activity) error
	DeleteActivity(ctx context.Context, id string) error
}

// AccommodationRepository persists the accommodation catalog.
type AccommodationRepository interface {
	CreateAccommodation(ctx context.Context, a *domain.Accommodation) error
	GetAccommodationByID(ctx context.Context, id string) (*domain.Accommodation, error)
	ListAccommodations(ctx context.Context) ([]domain.Accommodation, error)
	UpdateAccommodation(ctx context.Context, a *domain.Accommodation) error
	DeleteAccommodation(ctx context.Context, id string) error
}

// TripRepository persists trips and their catalog selections.
type TripRepository interface {
	CreateTrip(ctx context.Context, t *domain.Trip) error
	GetTripByID(ctx context.Context, id string) (*domain.Trip, error)
	ListTripsByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error)
	UpdateTrip(ctx context.Context, t *domain.Trip) error
	DeleteTrip(ctx context.Context, id string) error

	AttachTripItem(ctx context.Context, tripID, kind, itemID string) error
	DetachTripItem(ctx context.Context, tripID, kind, itemID string) error
	ListTripDestinations(ctx context.Context, tripID string) ([]domain.Destination, error)
	ListTripActivities(ctx context.Context, tripID string) ([]domain.Activity, error)
	ListTripAccommodations(ctx context.Context, tripID string) ([]domain.Accommodation, error)

	CountTripsByStatus(ctx context.Context, ownerID string) (map[string]int, error)
	ListUpcomingTrips(ctx context.Context, ownerID string, from time.Time, limit int) ([]domain.Trip, error)
}

// Trip item kinds accepted by AttachTripItem/DetachTripItem.
const (
	TripItemDestination   = "destination"
	TripItemActivity      = "activity"
	TripItemAccommodation = "accommodation"
)

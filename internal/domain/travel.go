package domain

import "time"

// Trip statuses follow the planning lifecycle shown in the client.
const (
	TripStatusPlanning  = "planning"
	TripStatusBooked    = "booked"
	TripStatusCompleted = "completed"
)

// Destination is a place a trip can visit.
type Destination struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Country     string    `json:"country"`
	Region      string    `json:"region,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Activity is something to do at a destination.
type Activity struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Cost        float64   `json:"cost"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Accommodation is a place to stay during a trip.
type Accommodation struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type,omitempty"`
	PricePerNight float64   `json:"pricePerNight"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Trip is an owner-scoped itinerary assembled in the trip builder. OwnerID is
// nullable in storage: deleting a user keeps the trip row but orphans it.
type Trip struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId,omitempty"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TripDetail is a trip with its selected catalog items resolved.
type TripDetail struct {
	Trip           Trip            `json:"trip"`
	Destinations   []Destination   `json:"destinations"`
	Activities     []Activity      `json:"activities"`
	Accommodations []Accommodation `json:"accommodations"`
}

// ValidTripStatus reports whether s is one of the known lifecycle states.
func ValidTripStatus(s string) bool {
	switch s {
	case TripStatusPlanning, TripStatusBooked, TripStatusCompleted:
		return true
	}
	return false
}

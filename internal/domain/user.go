package domain

import "time"

// User represents a registered account. PasswordHash never leaves the
// service layer; handlers only ever see Profile.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
	FirstName    string
	LastName     string
	Bio          string
	Location     string
	Phone        string
	Avatar       string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	LoginCount   int
}

// Profile is the public projection of a User returned to clients.
type Profile struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName,omitempty"`
	LastName    string     `json:"lastName,omitempty"`
	Bio         string     `json:"bio,omitempty"`
	Location    string     `json:"location,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Avatar      string     `json:"avatar,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	LoginCount  int        `json:"loginCount"`
}

// PublicProfile strips credential material from a User.
func (u *User) PublicProfile() Profile {
	return Profile{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Bio:         u.Bio,
		Location:    u.Location,
		Phone:       u.Phone,
		Avatar:      u.Avatar,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
		LoginCount:  u.LoginCount,
	}
}

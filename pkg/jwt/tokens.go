package jwt

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ShareClaims defines the payload of a read-only trip share link.
type ShareClaims struct {
	TripID string `json:"trip_id"`
	jwtlib.RegisteredClaims
}

// GenerateShareToken issues a signed share token for a trip.
func GenerateShareToken(tripID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := ShareClaims{
		TripID: tripID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    "travel-app",
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseShareToken validates and extracts claims from a share token.
func ParseShareToken(token, secret string) (*ShareClaims, error) {
	parsed, err := jwtlib.ParseWithClaims(token, &ShareClaims{}, func(t *jwtlib.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Name}))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*ShareClaims)
	if !ok || !parsed.Valid {
		return nil, jwtlib.ErrTokenInvalidClaims
	}
	return claims, nil
}

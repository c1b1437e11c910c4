package jwt

import (
	"testing"
	"time"
)

func TestShareTokenRoundTrip(t *testing.T) {
	token, err := GenerateShareToken("trip-1", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateShareToken returned error: %v", err)
	}
	claims, err := ParseShareToken(token, "secret")
	if err != nil {
		t.Fatalf("ParseShareToken returned error: %v", err)
	}
	if claims.TripID != "trip-1" {
		t.Fatalf("unexpected trip id: %q", claims.TripID)
	}
}

func TestShareTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateShareToken("trip-1", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateShareToken returned error: %v", err)
	}
	if _, err := ParseShareToken(token, "other"); err == nil {
		t.Fatal("token accepted under wrong secret")
	}
}

func TestShareTokenRejectsExpired(t *testing.T) {
	token, err := GenerateShareToken("trip-1", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateShareToken returned error: %v", err)
	}
	if _, err := ParseShareToken(token, "secret"); err == nil {
		t.Fatal("expired token accepted")
	}
}

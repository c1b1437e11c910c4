package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const sessionTokenBytes = 32

// GenerateSessionToken returns a raw opaque token for the session cookie and
// the hash persisted server side. Only the hash ever touches the database, so
// a leaked sessions table cannot be replayed.
func GenerateSessionToken() (token, hash string, err error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate session token: %w", err)
	}
	token = base64.RawURLEncoding.EncodeToString(b)
	return token, HashToken(token), nil
}

// HashToken derives the storage key for a raw session token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// SignMessage produces a hex HMAC-SHA256 tag over msg with the app secret.
// Used for CSRF double-submit tokens.
func SignMessage(secret, msg string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a tag produced by SignMessage in constant time.
func VerifySignature(secret, msg, tag string) bool {
	expected := SignMessage(secret, msg)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(tag)) == 1
}

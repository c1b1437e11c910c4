package crypto

import "golang.org/x/crypto/bcrypt"

// bcryptCost is fixed above the library default so offline brute force stays
// expensive while interactive login remains under ~250ms on commodity hardware.
const bcryptCost = 12

// HashPassword hashes plaintext using bcrypt with the service-wide cost.
func HashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
}

// ComparePassword compares plaintext to a stored bcrypt hash. The comparison
// is constant-time inside bcrypt; never compare hashes as strings.
func ComparePassword(hash []byte, plain string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain))
}

package auth

import (
	"regexp"
	"unicode"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 30
	passwordMinLen = 8
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validateRegister checks the registration payload shape before any storage
// access. Registration only enforces the minimum length; the full complexity
// policy applies on password change.
func validateRegister(in RegisterInput) error {
	var verr ValidationError
	if l := len(in.Username); l < usernameMinLen || l > usernameMaxLen {
		verr.add("username", "Username must be between 3 and 30 characters")
	}
	if !validEmail(in.Email) {
		verr.add("email", "Invalid email address")
	}
	if len(in.Password) < passwordMinLen {
		verr.add("password", "Password must be at least 8 characters")
	}
	return verr.orNil()
}

// validateNewPassword enforces the complexity policy on rotated passwords:
// minimum length plus at least one lowercase, one uppercase, and one digit.
func validateNewPassword(password string) error {
	var verr ValidationError
	if len(password) < passwordMinLen {
		verr.add("newPassword", "Password must be at least 8 characters")
		return verr.orNil()
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower {
		verr.add("newPassword", "Password must contain a lowercase letter")
	}
	if !upper {
		verr.add("newPassword", "Password must contain an uppercase letter")
	}
	if !digit {
		verr.add("newPassword", "Password must contain a digit")
	}
	return verr.orNil()
}

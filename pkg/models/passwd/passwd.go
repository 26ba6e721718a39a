package passwd

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Constants for cost and password length bounds (bcrypt truncates after 72 bytes)
const (
	DefaultCost    = 12 // Usually 10
	MinPasswordLen = 8
	MaxPasswordLen = 72 // bcrypt input limit
)

// ErrWeakPassword is returned by Validate for passwords that do not meet
// the policy: at least MinPasswordLen characters, one uppercase letter and
// one digit.
var ErrWeakPassword = errors.New("password must be at least 8 characters and contain an uppercase letter and a digit")

// Validate checks the password against the registration policy.
// Returns ErrWeakPassword on any violation; the caller is not told which
// rule failed beyond the policy summary.
func Validate(password string) error {
	if len(password) < MinPasswordLen {
		return ErrWeakPassword
	}

	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}

// HashPassword hashes a password using bcrypt with the DefaultCost
func HashPassword(password string) (string, error) {
	// Reject overly long passwords rather than silently truncating
	if len(password) > MaxPasswordLen {
		return "", errors.New("password exceeds 72 bytes and will be truncated by bcrypt")
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plaintext password with a bcrypt hashed password.
// Returns true if they match, false otherwise. The comparison is performed
// by bcrypt and does not leak timing about how close the guess was.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Authenticate verifies whether the input password matches the stored bcrypt hash.
// Returns true if authentication is successful.
func Authenticate(inputPassword, storedHash string) bool {
	return CheckPasswordHash(inputPassword, storedHash)
}

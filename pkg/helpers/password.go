package helpers

import (
	"regexp"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/satriadivo/goshop/pkg/apperror"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password.
// A mismatch is a false return, never an error.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ValidatePassword enforces the account password policy: at least 8
// characters containing at least one letter and one digit.
func ValidatePassword(plain string) error {
	if len(plain) < 8 {
		return apperror.Validation("password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range plain {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperror.Validation("password must contain at least one letter and one number")
	}
	return nil
}

// ValidateEmail checks the address against a standard local@domain pattern.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return apperror.Validation("invalid email")
	}
	return nil
}

package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/ourfinance/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid user or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// Ensure PasswordAuthenticator implements Authenticator
var _ Authenticator = (*PasswordAuthenticator)(nil)

// PasswordAuthenticator checks passwords against configured bcrypt hashes, one per user.
type PasswordAuthenticator struct {
	hashes map[models.Owner][]byte
}

// NewPasswordAuthenticator creates a password authenticator. Users missing from hashes
// cannot sign in.
func NewPasswordAuthenticator(hashes map[models.Owner]string) *PasswordAuthenticator {
	a := &PasswordAuthenticator{hashes: make(map[models.Owner][]byte, len(hashes))}
	for owner, h := range hashes {
		a.hashes[owner] = []byte(h)
	}
	return a
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Authenticate verifies the user's password.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, user, credential string) (models.Owner, error) {
	owner, err := models.ParseUser(user)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	hash, ok := a.hashes[owner]
	if !ok {
		return "", ErrInvalidCredentials
	}

	// Compare password hash
	if err := bcrypt.CompareHashAndPassword(hash, []byte(credential)); err != nil {
		return "", ErrInvalidCredentials
	}
	return owner, nil
}

// HashPassword returns the bcrypt hash to configure for a user.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", ErrWeakPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

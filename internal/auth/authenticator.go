// Package auth signs in the two ledger users and issues session tokens.
package auth

import (
	"context"

	"github.com/mmynk/ourfinance/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, passkeys, OAuth, etc.)
// without changing the API layer code.
type Authenticator interface {
	// Authenticate verifies the credential of a user ("A" or "B") and returns the owner
	// that signed in. Returns ErrInvalidCredentials if authentication fails.
	Authenticate(ctx context.Context, user, credential string) (models.Owner, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}

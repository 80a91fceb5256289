// Package middleware holds the Connect interceptors of the ledger API.
package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/ourfinance/internal/auth"
	"github.com/mmynk/ourfinance/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// OwnerKey is the context key for storing the authenticated user.
const OwnerKey contextKey = "owner"

// GetOwner extracts the authenticated user from the context.
// Returns empty string if not found.
func GetOwner(ctx context.Context) models.Owner {
	owner, _ := ctx.Value(OwnerKey).(models.Owner)
	return owner
}

// WithOwner returns a context carrying owner as the authenticated user.
func WithOwner(ctx context.Context, owner models.Owner) context.Context {
	return context.WithValue(ctx, OwnerKey, owner)
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// RequireAuth returns a middleware that validates JWT tokens and requires authentication.
// It extracts the token from the Authorization header, validates it, and adds
// the signed-in user to the request context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := bearerToken(authHeader)
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithOwner(ctx, claims.Owner), req)
		}
	}
}

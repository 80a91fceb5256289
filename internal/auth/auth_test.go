package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/ourfinance/internal/models"
)

func TestPasswordAuthenticator(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	a := NewPasswordAuthenticator(map[models.Owner]string{models.OwnerA: hash})
	ctx := context.Background()

	t.Run("valid password", func(t *testing.T) {
		owner, err := a.Authenticate(ctx, "A", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, models.OwnerA, owner)
	})

	tests := []struct {
		name, user, password string
	}{
		{"wrong password", "A", "battery staple"},
		{"user without hash", "B", "correct horse"},
		{"shared is not a user", "Shared", "correct horse"},
		{"unknown user", "C", "correct horse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Authenticate(ctx, tt.user, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestHashPassword(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	hash, err := HashPassword("long enough")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("long enough")))
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	t.Run("round trip", func(t *testing.T) {
		token, expires, err := m.Generate(models.OwnerB)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

		claims, err := m.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, models.OwnerB, claims.Owner)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := NewJWTManager("other", time.Hour).Generate(models.OwnerA)
		require.NoError(t, err)
		_, err = m.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token, _, err := NewJWTManager("test-secret", -time.Minute).Generate(models.OwnerA)
		require.NoError(t, err)
		_, err = m.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token without a user", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Owner: models.OwnerShared}).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		_, err = m.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

package tokenstore

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/Jose-https1/pokedex-api/pkg/models"
)

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testSecret = "test-signing-secret"

func testUser() *models.User {
	return &models.User{ID: 1, Username: "ash", IsActive: true}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		algorithm string
	}{
		{name: "empty secret", secret: "", algorithm: "HS256"},
		{name: "unknown algorithm", secret: testSecret, algorithm: "RS256"},
		{name: "lowercase algorithm", secret: testSecret, algorithm: "hs256"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(noopLogger(), tt.secret, time.Hour, tt.algorithm)
			require.Error(t, err)
		})
	}
}

func TestIssueAndValidateRoundTrip(t *testing.T) {
	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		t.Run(alg, func(t *testing.T) {
			store, err := New(noopLogger(), testSecret, time.Hour, alg)
			require.NoError(t, err)

			tokenStr, expiresAt, err := store.Issue(testUser())
			require.NoError(t, err)
			require.NotEmpty(t, tokenStr)
			require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

			payload, err := store.Validate(tokenStr)
			require.NoError(t, err)
			require.Equal(t, "ash", payload.Subject)
			require.NotEmpty(t, payload.ID)
		})
	}
}

func TestValidateExpiredToken(t *testing.T) {
	store, err := New(noopLogger(), testSecret, -time.Minute, "HS256")
	require.NoError(t, err)

	tokenStr, _, err := store.Issue(testUser())
	require.NoError(t, err)

	_, err = store.Validate(tokenStr)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateRejectsBadSignature(t *testing.T) {
	store, err := New(noopLogger(), testSecret, time.Hour, "HS256")
	require.NoError(t, err)

	otherStore, err := New(noopLogger(), "a-different-secret", time.Hour, "HS256")
	require.NoError(t, err)

	tokenStr, _, err := otherStore.Issue(testUser())
	require.NoError(t, err)

	_, err = store.Validate(tokenStr)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRejectsMalformedToken(t *testing.T) {
	store, err := New(noopLogger(), testSecret, time.Hour, "HS256")
	require.NoError(t, err)

	for _, tokenStr := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err = store.Validate(tokenStr)
		require.ErrorIs(t, err, ErrTokenInvalid, "token %q", tokenStr)
	}
}

func TestValidateRejectsWrongAlgorithm(t *testing.T) {
	// A token signed with HS512 must not pass a store configured for HS256,
	// even though the secret matches.
	issuer, err := New(noopLogger(), testSecret, time.Hour, "HS512")
	require.NoError(t, err)
	verifier, err := New(noopLogger(), testSecret, time.Hour, "HS256")
	require.NoError(t, err)

	tokenStr, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Validate(tokenStr)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRejectsMissingSubject(t *testing.T) {
	store, err := New(noopLogger(), testSecret, time.Hour, "HS256")
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	require.True(t, strings.Count(raw, ".") == 2)

	_, err = store.Validate(raw)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

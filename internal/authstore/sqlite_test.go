package authstore

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jose-https1/pokedex-api/database"
	"github.com/Jose-https1/pokedex-api/pkg/models"
)

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) Store {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunSqliteMigrations(db))

	return NewWithSqliteStore(db, noopLogger())
}

func TestRegisterThenVerify(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.Register(ctx, "ash", "Pikachu123")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, "ash", user.Username)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "Pikachu123", user.PasswordHash, "password must never be stored in the clear")

	verified, err := store.Verify(ctx, "ash", "Pikachu123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Register(ctx, "ash", "Pikachu123")
	require.NoError(t, err)

	_, err = store.Register(ctx, "ash", "Different9Pass")
	var conflict *models.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestRegisterWeakPasswords(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		password string
	}{
		{name: "too short", password: "abc123"},
		{name: "no digit or uppercase", password: "abcdefgh"},
		{name: "no digit", password: "Abcdefgh"},
		{name: "no uppercase", password: "abcdefg1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Register(ctx, "trainer", tt.password)
			var validation *models.ValidationError
			require.ErrorAs(t, err, &validation)
		})
	}

	// The boundary case from the policy examples still succeeds.
	_, err := store.Register(ctx, "trainer", "Abcdefg1")
	require.NoError(t, err)
}

func TestRegisterUsernameBounds(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var validation *models.ValidationError
	_, err := store.Register(ctx, "ab", "Pikachu123")
	require.ErrorAs(t, err, &validation)
}

func TestVerifyFailuresAreIndistinguishable(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Register(ctx, "ash", "Pikachu123")
	require.NoError(t, err)

	// Wrong password and unknown username must yield the same error.
	_, wrongPass := store.Verify(ctx, "ash", "WrongPass99")
	_, unknownUser := store.Verify(ctx, "nobody", "Pikachu123")

	require.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), unknownUser.Error())
}

func TestGetUserByUsername(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Register(ctx, "misty", "Starmie12")
	require.NoError(t, err)

	user, err := store.GetUserByUsername(ctx, "misty")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = store.GetUserByUsername(ctx, "ghost")
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

package authstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jose-https1/pokedex-api/internal/db"
	"github.com/Jose-https1/pokedex-api/internal/db/sqliteDB"
	"github.com/Jose-https1/pokedex-api/internal/logutil"
	"github.com/Jose-https1/pokedex-api/pkg/models"
	"github.com/Jose-https1/pokedex-api/pkg/models/passwd"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
)

// dummyHash is a bcrypt hash of an unguessable string, compared against when
// the username is unknown so Verify takes the same time either way.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

type sqliteAuthStore struct {
	db      *sql.DB
	queries sqliteDB.Queries
	log     *slog.Logger
}

func (s *sqliteAuthStore) Ping() error {
	return s.db.Ping()
}

func (s *sqliteAuthStore) Register(ctx context.Context, username, password string) (*models.User, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "Register")()
	errMsg := "failed to register user"

	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return nil, logutil.DebugAndWrapErr(s.log, errMsg,
			models.NewValidationError(fmt.Sprintf("username must be between %d and %d characters", minUsernameLen, maxUsernameLen)),
		)
	}

	if err := passwd.Validate(password); err != nil {
		return nil, logutil.DebugAndWrapErr(s.log, errMsg,
			models.NewValidationError(err.Error()),
		)
	}

	hash, err := passwd.HashPassword(password)
	if err != nil {
		return nil, logutil.LogAndWrapErr(s.log, errMsg,
			models.NewValidationError(err.Error()),
		)
	}

	sqlUser, err := s.queries.CreateUser(ctx, sqliteDB.CreateUserParams{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		if dup, dupErr := db.WrapErrorIfDuplicateConstraint(err); dup {
			s.log.Debug("register rejected, username taken", "username", username)
			return nil, models.NewConflictError(dupErr.Error())
		}
		return nil, logutil.LogAndWrapErr(s.log, errMsg,
			models.NewDatabaseError(err))
	}

	user := sqlUser.ToUserModel()
	s.log.Info("user registered", "user_id", user.ID, "username", user.Username)
	return &user, nil
}

func (s *sqliteAuthStore) Verify(ctx context.Context, username, password string) (*models.User, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "Verify")()

	sqlUser, err := s.queries.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Burn a comparison so an unknown username costs the same
			// as a wrong password.
			passwd.CheckPasswordHash(password, dummyHash)
			s.log.Debug("login failed, unknown username", "username", username)
			return nil, ErrInvalidCredentials
		}
		return nil, logutil.LogAndWrapErr(s.log, "failed to verify credentials",
			models.NewDatabaseError(err))
	}

	user := sqlUser.ToUserModel()
	if !user.IsActive || !passwd.Authenticate(password, user.PasswordHash) {
		s.log.Debug("login failed, bad credentials", "username", username)
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (s *sqliteAuthStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "GetUserByUsername")()
	errMsg := "failed to get user by username"

	sqlUser, err := s.queries.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFoundError("user not found")
		}
		return nil, logutil.DebugAndWrapErr(s.log, errMsg,
			models.NewDatabaseError(err),
		)
	}

	user := sqlUser.ToUserModel()
	return &user, nil
}

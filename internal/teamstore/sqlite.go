package teamstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jose-https1/pokedex-api/internal/db/sqliteDB"
	"github.com/Jose-https1/pokedex-api/internal/logutil"
	"github.com/Jose-https1/pokedex-api/pkg/models"
)

type sqliteTeamStore struct {
	db      *sql.DB
	queries sqliteDB.Queries
	log     *slog.Logger
}

// validateMembers checks size bounds and that every referenced entry is
// owned by the trainer. Entries owned by someone else are reported the same
// way as unknown ids.
func (s *sqliteTeamStore) validateMembers(ctx context.Context, q *sqliteDB.Queries, trainerID int64, entryIDs []int64) error {
	if len(entryIDs) == 0 {
		return models.NewValidationError("team must have at least 1 member")
	}
	if len(entryIDs) > models.MaxTeamSize {
		return models.NewValidationError(fmt.Sprintf("team cannot have more than %d members", models.MaxTeamSize))
	}

	seen := make(map[int64]bool, len(entryIDs))
	for _, id := range entryIDs {
		if seen[id] {
			return models.NewValidationError("team members must be distinct pokedex entries")
		}
		seen[id] = true

		if _, err := q.GetEntryByIDAndOwner(ctx, id, trainerID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.NewValidationError(fmt.Sprintf("pokedex entry %d is not in your pokedex", id))
			}
			return models.NewDatabaseError(err)
		}
	}
	return nil
}

func (s *sqliteTeamStore) loadTeam(ctx context.Context, q *sqliteDB.Queries, sqlTeam sqliteDB.Team) (*models.Team, error) {
	team := sqlTeam.ToTeamModel()

	rows, err := q.ListTeamMembers(ctx, sqlTeam.ID)
	if err != nil {
		return nil, models.NewDatabaseError(err)
	}
	team.Members = make([]models.TeamMember, 0, len(rows))
	for _, row := range rows {
		team.Members = append(team.Members, row.ToTeamMemberModel())
	}
	return &team, nil
}

func (s *sqliteTeamStore) Create(ctx context.Context, params CreateTeamParams) (*models.Team, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "Create")()
	errMsg := "failed to create team"

	if params.Name == "" {
		return nil, models.NewValidationError("team name must not be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}
	defer tx.Rollback()

	q := s.queries.WithTx(tx)

	if err := s.validateMembers(ctx, q, params.TrainerID, params.PokedexEntryIDs); err != nil {
		return nil, err
	}

	sqlTeam, err := q.CreateTeam(ctx, sqliteDB.CreateTeamParams{
		TrainerID:   params.TrainerID,
		Name:        params.Name,
		Description: sqliteDB.NullStringFromPtr(params.Description),
	})
	if err != nil {
		return nil, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}

	for i, entryID := range params.PokedexEntryIDs {
		err := q.InsertTeamMember(ctx, sqliteDB.InsertTeamMemberParams{
			TeamID:         sqlTeam.ID,
			PokedexEntryID: entryID,
			Position:       int64(i + 1),
		})
		if err != nil {
			return nil, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
		}
	}

	team, err := s.loadTeam(ctx, q, sqlTeam)
	if err != nil {
		return nil, logutil.LogAndWrapErr(s.log, errMsg, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}

	s.log.Info("team created", "team_id", team.ID, "trainer_id", team.TrainerID, "members", len(team.Members))
	return team, nil
}

func (s *sqliteTeamStore) List(ctx context.Context, trainerID int64) ([]models.Team, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "List")()

	sqlTeams, err := s.queries.ListTeamsByTrainer(ctx, trainerID)
	if err != nil {
		return nil, logutil.LogAndWrapErr(s.log, "failed to list teams",
			models.NewDatabaseError(err))
	}

	teams := make([]models.Team, 0, len(sqlTeams))
	for _, sqlTeam := range sqlTeams {
		team, err := s.loadTeam(ctx, &s.queries, sqlTeam)
		if err != nil {
			return nil, logutil.LogAndWrapErr(s.log, "failed to list teams", err)
		}
		teams = append(teams, *team)
	}
	return teams, nil
}

func (s *sqliteTeamStore) Get(ctx context.Context, trainerID, teamID int64) (*models.Team, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "Get", "team_id", teamID)()

	sqlTeam, err := s.queries.GetTeamByIDAndTrainer(ctx, teamID, trainerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, logutil.LogAndWrapErr(s.log, "failed to get team",
			models.NewDatabaseError(err))
	}

	team, err := s.loadTeam(ctx, &s.queries, sqlTeam)
	if err != nil {
		return nil, logutil.LogAndWrapErr(s.log, "failed to get team", err)
	}
	return team, nil
}

func (s *sqliteTeamStore) Update(ctx context.Context, trainerID, teamID int64, params UpdateTeamParams) (*models.Team, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "Update", "team_id", teamID)()
	errMsg := "failed to update team"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}
	defer tx.Rollback()

	q := s.queries.WithTx(tx)

	current, err := q.GetTeamByIDAndTrainer(ctx, teamID, trainerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}

	name := current.Name
	if params.Name != nil {
		if *params.Name == "" {
			return nil, models.NewValidationError("team name must not be empty")
		}
		name = *params.Name
	}
	description := current.Description
	if params.Description != nil {
		description = sql.NullString{String: *params.Description, Valid: true}
	}

	sqlTeam, err := q.UpdateTeam(ctx, sqliteDB.UpdateTeamParams{
		Name:        name,
		Description: description,
		ID:          teamID,
		TrainerID:   trainerID,
	})
	if err != nil {
		return nil, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}

	if params.PokedexEntryIDs != nil {
		if err := s.validateMembers(ctx, q, trainerID, params.PokedexEntryIDs); err != nil {
			return nil, err
		}
		if err := q.DeleteTeamMembers(ctx, teamID); err != nil {
			return nil, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
		}
		for i, entryID := range params.PokedexEntryIDs {
			err := q.InsertTeamMember(ctx, sqliteDB.InsertTeamMemberParams{
				TeamID:         teamID,
				PokedexEntryID: entryID,
				Position:       int64(i + 1),
			})
			if err != nil {
				return nil, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
			}
		}
	}

	team, err := s.loadTeam(ctx, q, sqlTeam)
	if err != nil {
		return nil, logutil.LogAndWrapErr(s.log, errMsg, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}
	return team, nil
}

func (s *sqliteTeamStore) Delete(ctx context.Context, trainerID, teamID int64) error {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "Delete", "team_id", teamID)()
	errMsg := "failed to delete team"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}
	defer tx.Rollback()

	q := s.queries.WithTx(tx)

	// Members are removed explicitly so the delete does not depend on the
	// connection having foreign key enforcement enabled.
	affected, err := q.DeleteTeamByIDAndTrainer(ctx, teamID, trainerID)
	if err != nil {
		return logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}
	if affected == 0 {
		return ErrTeamNotFound
	}
	if err := q.DeleteTeamMembers(ctx, teamID); err != nil {
		return logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}

	if err := tx.Commit(); err != nil {
		return logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}
	return nil
}

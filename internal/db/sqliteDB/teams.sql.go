package sqliteDB

import (
	"context"
	"database/sql"
)

const createTeam = `
INSERT INTO teams (trainer_id, name, description)
VALUES (?, ?, ?)
RETURNING id, trainer_id, name, description, created_at
`

type CreateTeamParams struct {
	TrainerID   int64
	Name        string
	Description sql.NullString
}

func (q *Queries) CreateTeam(ctx context.Context, arg CreateTeamParams) (Team, error) {
	row := q.db.QueryRowContext(ctx, createTeam, arg.TrainerID, arg.Name, arg.Description)
	return scanTeam(row)
}

const getTeamByIDAndTrainer = `
SELECT id, trainer_id, name, description, created_at
FROM teams
WHERE id = ? AND trainer_id = ?
`

// GetTeamByIDAndTrainer returns sql.ErrNoRows both for a missing team and
// for a team owned by a different trainer.
func (q *Queries) GetTeamByIDAndTrainer(ctx context.Context, id, trainerID int64) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeamByIDAndTrainer, id, trainerID)
	return scanTeam(row)
}

const listTeamsByTrainer = `
SELECT id, trainer_id, name, description, created_at
FROM teams
WHERE trainer_id = ?
ORDER BY id ASC
`

func (q *Queries) ListTeamsByTrainer(ctx context.Context, trainerID int64) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listTeamsByTrainer, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.TrainerID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

const updateTeam = `
UPDATE teams
SET name = ?, description = ?
WHERE id = ? AND trainer_id = ?
RETURNING id, trainer_id, name, description, created_at
`

type UpdateTeamParams struct {
	Name        string
	Description sql.NullString
	ID          int64
	TrainerID   int64
}

func (q *Queries) UpdateTeam(ctx context.Context, arg UpdateTeamParams) (Team, error) {
	row := q.db.QueryRowContext(ctx, updateTeam, arg.Name, arg.Description, arg.ID, arg.TrainerID)
	return scanTeam(row)
}

const deleteTeamByIDAndTrainer = `
DELETE FROM teams WHERE id = ? AND trainer_id = ?
`

func (q *Queries) DeleteTeamByIDAndTrainer(ctx context.Context, id, trainerID int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTeamByIDAndTrainer, id, trainerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const insertTeamMember = `
INSERT INTO team_members (team_id, pokedex_entry_id, position)
VALUES (?, ?, ?)
`

type InsertTeamMemberParams struct {
	TeamID         int64
	PokedexEntryID int64
	Position       int64
}

func (q *Queries) InsertTeamMember(ctx context.Context, arg InsertTeamMemberParams) error {
	_, err := q.db.ExecContext(ctx, insertTeamMember, arg.TeamID, arg.PokedexEntryID, arg.Position)
	return err
}

const deleteTeamMembers = `
DELETE FROM team_members WHERE team_id = ?
`

func (q *Queries) DeleteTeamMembers(ctx context.Context, teamID int64) error {
	_, err := q.db.ExecContext(ctx, deleteTeamMembers, teamID)
	return err
}

const listTeamMembers = `
SELECT tm.id, tm.position, tm.pokedex_entry_id, pe.pokemon_id, pe.pokemon_name
FROM team_members tm
JOIN pokedex_entries pe ON pe.id = tm.pokedex_entry_id
WHERE tm.team_id = ?
ORDER BY tm.position ASC
`

func (q *Queries) ListTeamMembers(ctx context.Context, teamID int64) ([]TeamMemberRow, error) {
	rows, err := q.db.QueryContext(ctx, listTeamMembers, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []TeamMemberRow
	for rows.Next() {
		var m TeamMemberRow
		if err := rows.Scan(&m.ID, &m.Position, &m.PokedexEntryID, &m.PokemonID, &m.PokemonName); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func scanTeam(row *sql.Row) (Team, error) {
	var t Team
	err := row.Scan(&t.ID, &t.TrainerID, &t.Name, &t.Description, &t.CreatedAt)
	return t, err
}

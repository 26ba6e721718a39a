package teamstore

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jose-https1/pokedex-api/database"
	"github.com/Jose-https1/pokedex-api/internal/pokedexstore"
	"github.com/Jose-https1/pokedex-api/pkg/models"
)

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	teams   Store
	pokedex pokedexstore.Store
	ash     int64
	misty   int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunSqliteMigrations(db))

	ids := make([]int64, 0, 2)
	for _, username := range []string{"ash", "misty"} {
		res, err := db.Exec("INSERT INTO users (username, password_hash) VALUES (?, ?)", username, "x")
		require.NoError(t, err)
		id, err := res.LastInsertId()
		require.NoError(t, err)
		ids = append(ids, id)
	}

	return &fixture{
		teams:   NewWithSqliteStore(db, noopLogger()),
		pokedex: pokedexstore.NewWithSqliteStore(db, noopLogger()),
		ash:     ids[0],
		misty:   ids[1],
	}
}

func (f *fixture) addEntry(t *testing.T, owner int64, pokemonID int64, name string) int64 {
	t.Helper()
	entry, err := f.pokedex.Create(context.Background(), models.CreateEntryParams{
		OwnerID:   owner,
		PokemonID: pokemonID,
		Name:      name,
		Sprite:    "https://sprites.example/x.png",
	})
	require.NoError(t, err)
	return entry.ID
}

func TestCreateTeam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pikachu := f.addEntry(t, f.ash, 25, "pikachu")
	squirtle := f.addEntry(t, f.ash, 7, "squirtle")

	team, err := f.teams.Create(ctx, CreateTeamParams{
		TrainerID:       f.ash,
		Name:            "Kanto Starters",
		PokedexEntryIDs: []int64{pikachu, squirtle},
	})
	require.NoError(t, err)
	require.Len(t, team.Members, 2)
	assert.Equal(t, 1, team.Members[0].Position)
	assert.Equal(t, "pikachu", team.Members[0].PokemonName)
	assert.Equal(t, 2, team.Members[1].Position)
	assert.Equal(t, "squirtle", team.Members[1].PokemonName)
}

func TestCreateTeamSizeBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var entryIDs []int64
	for i := int64(1); i <= 7; i++ {
		entryIDs = append(entryIDs, f.addEntry(t, f.ash, i, "mon"))
	}

	var validation *models.ValidationError

	_, err := f.teams.Create(ctx, CreateTeamParams{TrainerID: f.ash, Name: "Empty"})
	require.ErrorAs(t, err, &validation)

	_, err = f.teams.Create(ctx, CreateTeamParams{
		TrainerID: f.ash, Name: "Too Big", PokedexEntryIDs: entryIDs,
	})
	require.ErrorAs(t, err, &validation)

	team, err := f.teams.Create(ctx, CreateTeamParams{
		TrainerID: f.ash, Name: "Full", PokedexEntryIDs: entryIDs[:6],
	})
	require.NoError(t, err)
	assert.Len(t, team.Members, 6)
}

func TestCreateTeamRejectsForeignEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	staryu := f.addEntry(t, f.misty, 120, "staryu")

	// Misty's entry is reported exactly like an unknown id.
	var validation *models.ValidationError
	_, err := f.teams.Create(ctx, CreateTeamParams{
		TrainerID: f.ash, Name: "Stolen", PokedexEntryIDs: []int64{staryu},
	})
	require.ErrorAs(t, err, &validation)

	_, err = f.teams.Create(ctx, CreateTeamParams{
		TrainerID: f.ash, Name: "Ghost", PokedexEntryIDs: []int64{9999},
	})
	require.ErrorAs(t, err, &validation)
}

func TestTeamOwnershipIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pikachu := f.addEntry(t, f.ash, 25, "pikachu")
	team, err := f.teams.Create(ctx, CreateTeamParams{
		TrainerID: f.ash, Name: "Solo", PokedexEntryIDs: []int64{pikachu},
	})
	require.NoError(t, err)

	_, err = f.teams.Get(ctx, f.misty, team.ID)
	require.ErrorIs(t, err, ErrTeamNotFound)

	name := "Hijacked"
	_, err = f.teams.Update(ctx, f.misty, team.ID, UpdateTeamParams{Name: &name})
	require.ErrorIs(t, err, ErrTeamNotFound)

	require.ErrorIs(t, f.teams.Delete(ctx, f.misty, team.ID), ErrTeamNotFound)

	got, err := f.teams.Get(ctx, f.ash, team.ID)
	require.NoError(t, err)
	assert.Equal(t, "Solo", got.Name)
}

func TestUpdateTeamReplacesMembers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pikachu := f.addEntry(t, f.ash, 25, "pikachu")
	squirtle := f.addEntry(t, f.ash, 7, "squirtle")

	team, err := f.teams.Create(ctx, CreateTeamParams{
		TrainerID: f.ash, Name: "Original", PokedexEntryIDs: []int64{pikachu},
	})
	require.NoError(t, err)

	name := "Renamed"
	updated, err := f.teams.Update(ctx, f.ash, team.ID, UpdateTeamParams{
		Name:            &name,
		PokedexEntryIDs: []int64{squirtle, pikachu},
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	require.Len(t, updated.Members, 2)
	assert.Equal(t, "squirtle", updated.Members[0].PokemonName)
	assert.Equal(t, 1, updated.Members[0].Position)
}

func TestUpdateTeamKeepsMembersWhenNil(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pikachu := f.addEntry(t, f.ash, 25, "pikachu")
	team, err := f.teams.Create(ctx, CreateTeamParams{
		TrainerID: f.ash, Name: "Keep", PokedexEntryIDs: []int64{pikachu},
	})
	require.NoError(t, err)

	desc := "still the same lineup"
	updated, err := f.teams.Update(ctx, f.ash, team.ID, UpdateTeamParams{Description: &desc})
	require.NoError(t, err)
	require.Len(t, updated.Members, 1)
	require.NotNil(t, updated.Description)
	assert.Equal(t, desc, *updated.Description)
}

func TestDeleteTeam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pikachu := f.addEntry(t, f.ash, 25, "pikachu")
	team, err := f.teams.Create(ctx, CreateTeamParams{
		TrainerID: f.ash, Name: "Doomed", PokedexEntryIDs: []int64{pikachu},
	})
	require.NoError(t, err)

	require.NoError(t, f.teams.Delete(ctx, f.ash, team.ID))
	_, err = f.teams.Get(ctx, f.ash, team.ID)
	require.ErrorIs(t, err, ErrTeamNotFound)

	// The pokedex entry itself survives team deletion.
	_, err = f.pokedex.Get(ctx, f.ash, pikachu)
	require.NoError(t, err)
}

package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jose-https1/pokedex-api/pkg/models"
)

func strPtr(s string) *string { return &s }

func TestRenderPokedex(t *testing.T) {
	caught := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	entries := []models.PokedexEntry{
		{PokemonID: 25, Name: "pikachu", Nickname: strPtr("Sparky"), IsCaptured: true, CaptureDate: &caught, Favorite: true},
		{PokemonID: 150, Name: "mewtwo"},
	}

	got, err := RenderPokedex("ash", entries)
	require.NoError(t, err)

	require.True(t, len(got) > 0)
	assert.Equal(t, "%PDF", string(got[:4]))
	assert.Contains(t, string(got[len(got)-16:]), "%%EOF")
}

func TestRenderEmptyPokedex(t *testing.T) {
	got, err := RenderPokedex("ash", nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(got[:4]))
}

func TestRenderManyEntriesPaginates(t *testing.T) {
	entries := make([]models.PokedexEntry, 0, 60)
	for i := 1; i <= 60; i++ {
		entries = append(entries, models.PokedexEntry{PokemonID: int64(i), Name: "species"})
	}

	got, err := RenderPokedex("ash", entries)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(got[:4]))
}

func TestFilename(t *testing.T) {
	name := Filename("ash")
	assert.Contains(t, name, "pokedex-ash-")
	assert.Contains(t, name, ".pdf")
}

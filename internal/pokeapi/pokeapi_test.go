package pokeapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pikachuJSON = `{
	"id": 25,
	"name": "pikachu",
	"sprites": {
		"front_default": "https://sprites.example/25.png",
		"other": {
			"official-artwork": {
				"front_default": "https://art.example/25.png"
			}
		}
	},
	"types": [
		{"type": {"name": "electric"}}
	],
	"stats": [
		{"base_stat": 35, "stat": {"name": "hp"}},
		{"base_stat": 90, "stat": {"name": "speed"}}
	],
	"abilities": [
		{"ability": {"name": "static"}},
		{"ability": {"name": "lightning-rod"}}
	]
}`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(logger, srv.URL, 2*time.Second), srv
}

func TestGetPokemonTrimsPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pokemon/pikachu", r.URL.Path)
		fmt.Fprint(w, pikachuJSON)
	}))

	got, err := client.GetPokemon(context.Background(), "Pikachu")
	require.NoError(t, err)

	assert.Equal(t, int64(25), got.ID)
	assert.Equal(t, "pikachu", got.Name)
	assert.Equal(t, "https://art.example/25.png", got.Sprite)
	assert.Equal(t, []string{"electric"}, got.Types)
	assert.Equal(t, []Stat{{Name: "hp", Base: 35}, {Name: "speed", Base: 90}}, got.Stats)
	assert.Equal(t, []string{"static", "lightning-rod"}, got.Abilities)
}

func TestGetPokemonSpriteFallback(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": 7, "name": "squirtle", "sprites": {}}`)
	}))

	got, err := client.GetPokemon(context.Background(), "squirtle")
	require.NoError(t, err)
	assert.Equal(t, spriteBaseURL+"/7.png", got.Sprite)
}

func TestGetPokemonNotFoundIsPermanent(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetPokemon(context.Background(), "missingno")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), calls.Load(), "404 must not be retried")
}

func TestGetPokemonRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, pikachuJSON)
	}))

	got, err := client.GetPokemon(context.Background(), "pikachu")
	require.NoError(t, err)
	assert.Equal(t, "pikachu", got.Name)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetPokemonUpstreamDown(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.GetPokemon(context.Background(), "pikachu")
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestGetPokemonCaches(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, pikachuJSON)
	}))

	_, err := client.GetPokemon(context.Background(), "pikachu")
	require.NoError(t, err)

	// name hit and the id alias both come from cache
	_, err = client.GetPokemon(context.Background(), "PIKACHU")
	require.NoError(t, err)
	_, err = client.GetPokemon(context.Background(), "25")
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
}

func TestListResolvesPage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pokemon" {
			assert.Equal(t, "2", r.URL.Query().Get("limit"))
			assert.Equal(t, "0", r.URL.Query().Get("offset"))
			fmt.Fprint(w, `{"count": 1302, "results": [{"name": "bulbasaur"}, {"name": "ivysaur"}]}`)
			return
		}
		name := r.URL.Path[len("/pokemon/"):]
		id := map[string]int{"bulbasaur": 1, "ivysaur": 2}[name]
		fmt.Fprintf(w, `{"id": %d, "name": %q, "sprites": {"front_default": "s"}}`, id, name)
	}))

	count, page, err := client.List(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 1302, count)
	require.Len(t, page, 2)
	assert.Equal(t, "bulbasaur", page[0].Name)
	assert.Equal(t, "ivysaur", page[1].Name)
}

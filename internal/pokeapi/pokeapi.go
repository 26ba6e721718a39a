// Package pokeapi is the gateway to the external Pokemon data service. It
// trims the upstream's verbose payloads down to the handful of fields the
// API exposes and classifies failures as either retryable (upstream down)
// or permanent (species does not exist).
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultBaseURL is the public PokeAPI endpoint.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// spriteBaseURL is the fallback artwork location used when the upstream
// payload carries no sprite.
const spriteBaseURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork"

const maxRetries = 2

var (
	// ErrNotFound means the upstream does not know the species. Not
	// retryable.
	ErrNotFound = errors.New("pokemon not found in upstream service")

	// ErrUpstreamUnavailable covers upstream 5xx, timeouts and network
	// failures. Safe for the caller to retry later.
	ErrUpstreamUnavailable = errors.New("upstream pokemon service unavailable")
)

// Pokemon is the trimmed species record: only what the API needs, nothing
// else from the upstream payload is exposed.
type Pokemon struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Sprite    string   `json:"sprite"`
	Types     []string `json:"types"`
	Stats     []Stat   `json:"stats"`
	Abilities []string `json:"abilities"`
}

// Stat is a named base stat.
type Stat struct {
	Name string `json:"name"`
	Base int    `json:"base"`
}

// Client talks to the upstream service with a bounded per-request timeout
// and an in-memory cache keyed by lowercase id/name.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger

	mu    sync.RWMutex
	cache map[string]*Pokemon
}

// NewClient builds a gateway client. baseURL may be empty to use the public
// service; timeout bounds every upstream call.
func NewClient(logger *slog.Logger, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger,
		cache:   make(map[string]*Pokemon),
	}
}

func cacheKey(idOrName string) string {
	return strings.ToLower(strings.TrimSpace(idOrName))
}

// GetPokemon fetches one species by numeric id or name.
func (c *Client) GetPokemon(ctx context.Context, idOrName string) (*Pokemon, error) {
	key := cacheKey(idOrName)
	if key == "" {
		return nil, ErrNotFound
	}

	c.mu.RLock()
	cached, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/pokemon/%s", c.baseURL, url.PathEscape(key)))
	if err != nil {
		return nil, err
	}

	var payload upstreamPokemon
	if err := json.Unmarshal(body, &payload); err != nil {
		c.log.Error("upstream returned unparseable payload", "err", err)
		return nil, ErrUpstreamUnavailable
	}

	pokemon := payload.trim()

	c.mu.Lock()
	c.cache[key] = pokemon
	// also cache by numeric id so later lookups by number hit
	c.cache[fmt.Sprint(pokemon.ID)] = pokemon
	c.mu.Unlock()

	return pokemon, nil
}

// List pages through the upstream species index, resolving each result to
// its trimmed record. Returns the upstream total count alongside the page.
func (c *Client) List(ctx context.Context, limit, offset int) (int, []*Pokemon, error) {
	endpoint := fmt.Sprintf("%s/pokemon?limit=%d&offset=%d", c.baseURL, limit, offset)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return 0, nil, err
	}

	var page struct {
		Count   int `json:"count"`
		Results []struct {
			Name string `json:"name"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		c.log.Error("upstream returned unparseable page", "err", err)
		return 0, nil, ErrUpstreamUnavailable
	}

	results := make([]*Pokemon, 0, len(page.Results))
	for _, item := range page.Results {
		pokemon, err := c.GetPokemon(ctx, item.Name)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				// index entries can lag behind species data; skip
				continue
			}
			return 0, nil, err
		}
		results = append(results, pokemon)
	}

	return page.Count, results, nil
}

// get performs a GET with bounded retries. Upstream 5xx and transport
// errors are retried; 404 aborts immediately.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	operation := func() ([]byte, error) {
		c.log.Debug("upstream GET", "url", endpoint)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, backoff.Permanent(ErrNotFound)
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return nil, backoff.Permanent(fmt.Errorf("upstream returned status %d", resp.StatusCode))
		}

		return io.ReadAll(resp.Body)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(newRetryBackOff(), maxRetries), ctx)
	body, err := backoff.RetryWithData(operation, policy)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		c.log.Warn("upstream request failed", "url", endpoint, "err", err)
		return nil, ErrUpstreamUnavailable
	}
	return body, nil
}

func newRetryBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = time.Second
	return b
}

// upstreamPokemon maps just the slice of the upstream schema we read.
type upstreamPokemon struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
	Abilities []struct {
		Ability struct {
			Name string `json:"name"`
		} `json:"ability"`
	} `json:"abilities"`
}

// trim reduces the upstream payload to the exposed record, preferring the
// official artwork sprite, then the default sprite, then a derived URL.
func (p *upstreamPokemon) trim() *Pokemon {
	sprite := p.Sprites.Other.OfficialArtwork.FrontDefault
	if sprite == "" {
		sprite = p.Sprites.FrontDefault
	}
	if sprite == "" {
		sprite = fmt.Sprintf("%s/%d.png", spriteBaseURL, p.ID)
	}

	pokemon := &Pokemon{
		ID:     p.ID,
		Name:   p.Name,
		Sprite: sprite,
	}
	for _, t := range p.Types {
		pokemon.Types = append(pokemon.Types, t.Type.Name)
	}
	for _, s := range p.Stats {
		pokemon.Stats = append(pokemon.Stats, Stat{Name: s.Stat.Name, Base: s.BaseStat})
	}
	for _, a := range p.Abilities {
		pokemon.Abilities = append(pokemon.Abilities, a.Ability.Name)
	}
	return pokemon
}

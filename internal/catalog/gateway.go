package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tmdb"
)

// Gateway implements domain.Catalog over a raw client and two cache tiers.
// Lookups go memory, then session (promoted to memory on hit), then network.
// Cached bodies are immutable: the first successful response for a key wins.
type Gateway struct {
	client  domain.CatalogClient
	memory  domain.KVStore
	session domain.KVStore
	logger  *slog.Logger

	// mu serializes the check-then-store so concurrent misses keep the first body
	mu sync.Mutex
}

// NewGateway creates a gateway. session may be nil for memory-only caching.
func NewGateway(client domain.CatalogClient, memory, session domain.KVStore, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		client:  client,
		memory:  memory,
		session: session,
		logger:  logger,
	}
}

// Search returns one page of text search results in relevance order
func (g *Gateway) Search(ctx context.Context, query string, page int) (domain.Page, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("page", strconv.Itoa(normalizePage(page)))
	return fetch(ctx, g, "search", tmdb.PathSearchMovie, params, tmdb.DecodePage)
}

// Popular returns one page of the popularity-ranked listing
func (g *Gateway) Popular(ctx context.Context, page int) (domain.Page, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(normalizePage(page)))
	return fetch(ctx, g, "popular", tmdb.PathPopular, params, tmdb.DecodePage)
}

// Genres returns the movie genre taxonomy
func (g *Gateway) Genres(ctx context.Context) ([]domain.Genre, error) {
	return fetch(ctx, g, "genres", tmdb.PathGenres, nil, tmdb.DecodeGenres)
}

// DiscoverByGenres returns movies tagged with every id in genreIDs, most popular first.
// The ids are sent in the given order.
func (g *Gateway) DiscoverByGenres(ctx context.Context, genreIDs []int, page int) (domain.Page, error) {
	params := url.Values{}
	if len(genreIDs) > 0 {
		ids := make([]string, len(genreIDs))
		for i, id := range genreIDs {
			ids[i] = strconv.Itoa(id)
		}
		params.Set("with_genres", strings.Join(ids, ","))
	}
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	params.Set("page", strconv.Itoa(normalizePage(page)))
	return fetch(ctx, g, "discover", tmdb.PathDiscover, params, tmdb.DecodePage)
}

// Details returns the enriched record for one movie in a single round trip
func (g *Gateway) Details(ctx context.Context, id int) (*domain.MovieDetail, error) {
	if id <= 0 {
		return nil, fmt.Errorf("details: invalid movie id %d: %w", id, domain.ErrNotFound)
	}
	params := url.Values{}
	params.Set("append_to_response", "credits,images,videos,external_ids")
	params.Set("include_image_language", "en,null")
	return fetch(ctx, g, "details", tmdb.MoviePath(id), params, tmdb.DecodeDetails)
}

// fetch resolves one request through the cache tiers. Only bodies that
// decode cleanly are stored, so failures are never cached.
func fetch[T any](ctx context.Context, g *Gateway, op, path string, params url.Values, decode func(string, []byte) (T, error)) (T, error) {
	var zero T
	key := CacheKey(path, params)

	corrupt := false
	if body, ok := g.lookup(key); ok {
		v, err := decode(op, body)
		if err == nil {
			g.logger.Debug("cache hit", "key", key)
			return v, nil
		}
		g.logger.Warn("discarding unreadable cache entry", "key", key, "error", err)
		corrupt = true
	}

	body, err := g.client.Get(ctx, path, params)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	v, err := decode(op, body)
	if err != nil {
		g.logger.Error("failed to decode response", "op", op, "key", key, "error", err)
		return zero, err
	}

	if existing, stored := g.put(key, body, corrupt); !stored {
		// A concurrent fetch stored first; return what the cache holds
		if cached, err := decode(op, existing); err == nil {
			return cached, nil
		}
	}
	return v, nil
}

// lookup checks memory then session, promoting session hits into memory
func (g *Gateway) lookup(key string) ([]byte, bool) {
	if body, ok, err := g.memory.Get(key); err == nil && ok {
		return body, true
	}
	if g.session == nil {
		return nil, false
	}

	body, ok, err := g.session.Get(key)
	if err != nil {
		g.logger.Debug("session cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	if err := g.memory.Set(key, body); err != nil {
		g.logger.Debug("failed to promote session entry", "key", key, "error", err)
	}
	return body, true
}

// put stores body under key in both tiers unless an entry already exists,
// in which case the existing body is returned with stored=false. replace
// overwrites an entry that failed to decode.
func (g *Gateway) put(key string, body []byte, replace bool) (existing []byte, stored bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !replace {
		if existing, ok, err := g.memory.Get(key); err == nil && ok {
			return existing, false
		}
	}

	if err := g.memory.Set(key, body); err != nil {
		g.logger.Warn("memory cache write failed", "key", key, "error", err)
	}
	if g.session != nil {
		if err := g.session.Set(key, body); err != nil {
			g.logger.Warn("session cache write failed", "key", key, "error", err)
		}
	}
	return nil, true
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

package domain

import (
	"context"
	"net/url"
)

// Catalog is the typed read API over the remote movie catalog.
// Implementations cache by request signature; views only see typed results.
type Catalog interface {
	// Search returns one page of text search results in relevance order
	Search(ctx context.Context, query string, page int) (Page, error)

	// Popular returns one page of the popularity-ranked listing
	Popular(ctx context.Context, page int) (Page, error)

	// Genres returns the genre taxonomy
	Genres(ctx context.Context) ([]Genre, error)

	// DiscoverByGenres returns movies matching all genreIDs, most popular first
	DiscoverByGenres(ctx context.Context, genreIDs []int, page int) (Page, error)

	// Details returns the enriched record (credits, images, videos, external IDs) in one round trip
	Details(ctx context.Context, id int) (*MovieDetail, error)
}

// CatalogClient performs raw GET requests against the catalog.
// The client injects credentials; callers pass only the endpoint path and its parameters.
type CatalogClient interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// URLOpener opens an external URL (trailer, IMDb page, homepage) outside the terminal
type URLOpener interface {
	Open(url string) error
}

package catalog

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"sync"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
)

var _ domain.Catalog = (*Gateway)(nil)

// fakeClient serves canned bodies by path and records every call
type fakeClient struct {
	mu     sync.Mutex
	bodies map[string]string
	err    error
	calls  []call
}

type call struct {
	path  string
	query url.Values
}

func (f *fakeClient) Get(_ context.Context, path string, query url.Values) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{path: path, query: query})
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.bodies[path]
	if !ok {
		return nil, &domain.NetworkError{Op: "get", URL: path, StatusCode: 404, Err: errors.New("not found")}
	}
	return []byte(body), nil
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

const searchBody = `{"page":1,"results":[
  {"id":268,"title":"Batman","release_date":"1989-06-23","vote_average":7.2,"popularity":40},
  {"id":155,"title":"The Dark Knight","release_date":"2008-07-16","vote_average":8.5,"popularity":120}
],"total_pages":1,"total_results":2}`

func newGateway(client domain.CatalogClient) (*Gateway, *store.MemoryKV, *store.MemoryKV) {
	memory := store.NewMemoryKV()
	session := store.NewMemoryKV()
	return NewGateway(client, memory, session, nil), memory, session
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		params url.Values
		want   string
	}{
		{"no params", "/genre/movie/list", nil, "/genre/movie/list"},
		{"sorted", "/search/movie", url.Values{"query": {"batman"}, "page": {"1"}, "include_adult": {"false"}}, "/search/movie?include_adult=false&page=1&query=batman"},
		{"credential excluded", "/movie/popular", url.Values{"page": {"2"}, "api_key": {"secret"}}, "/movie/popular?page=2"},
		{"only credential", "/genre/movie/list", url.Values{"api_key": {"secret"}}, "/genre/movie/list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CacheKey(tt.path, tt.params); got != tt.want {
				t.Errorf("CacheKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGateway_SearchIsIdempotent(t *testing.T) {
	client := &fakeClient{bodies: map[string]string{"/search/movie": searchBody}}
	g, memory, session := newGateway(client)
	ctx := context.Background()

	first, err := g.Search(ctx, "batman", 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	second, err := g.Search(ctx, "batman", 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeat Search() = %+v, want %+v", second, first)
	}
	if client.callCount() != 1 {
		t.Errorf("network calls = %d, want 1", client.callCount())
	}
	if memory.Len() != 1 || session.Len() != 1 {
		t.Errorf("cache sizes memory=%d session=%d, want 1 and 1", memory.Len(), session.Len())
	}

	q := client.calls[0].query
	if q.Get("query") != "batman" || q.Get("include_adult") != "false" || q.Get("page") != "1" {
		t.Errorf("search params = %v", q)
	}
	if ids := domain.MovieIDs(first.Results); !reflect.DeepEqual(ids, []int{268, 155}) {
		t.Errorf("result order = %v, want [268 155]", ids)
	}
}

func TestGateway_SessionHitIsPromoted(t *testing.T) {
	client := &fakeClient{}
	g, memory, session := newGateway(client)

	key := CacheKey("/movie/popular", url.Values{"page": {"1"}})
	if err := session.Set(key, []byte(searchBody)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	page, err := g.Popular(context.Background(), 1)
	if err != nil {
		t.Fatalf("Popular() error = %v", err)
	}
	if len(page.Results) != 2 {
		t.Errorf("len(Results) = %d, want 2", len(page.Results))
	}
	if client.callCount() != 0 {
		t.Errorf("network calls = %d, want 0", client.callCount())
	}
	if _, ok, _ := memory.Get(key); !ok {
		t.Error("session hit should be promoted to memory")
	}
}

func TestGateway_FailuresAreNotCached(t *testing.T) {
	client := &fakeClient{err: &domain.NetworkError{Op: "get", URL: "/movie/popular", Err: errors.New("connection refused")}}
	g, memory, session := newGateway(client)
	ctx := context.Background()

	_, err := g.Popular(ctx, 1)
	if !errors.Is(err, domain.ErrLoadFailed) {
		t.Fatalf("Popular() error = %v, want a load failure", err)
	}
	if memory.Len() != 0 || session.Len() != 0 {
		t.Error("failed fetch must not be cached")
	}

	client.err = nil
	client.bodies = map[string]string{"/movie/popular": searchBody}
	if _, err := g.Popular(ctx, 1); err != nil {
		t.Fatalf("Popular() after recovery error = %v", err)
	}
	if client.callCount() != 2 {
		t.Errorf("network calls = %d, want 2", client.callCount())
	}
}

func TestGateway_DecodeErrorNotCached(t *testing.T) {
	client := &fakeClient{bodies: map[string]string{"/genre/movie/list": `{"unexpected":true}`}}
	g, memory, _ := newGateway(client)

	_, err := g.Genres(context.Background())
	var decErr *domain.DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("Genres() error = %v, want *domain.DecodeError", err)
	}
	if memory.Len() != 0 {
		t.Error("undecodable body must not be cached")
	}
}

func TestGateway_CorruptEntryIsReplaced(t *testing.T) {
	client := &fakeClient{bodies: map[string]string{"/genre/movie/list": `{"genres":[{"id":28,"name":"Action"}]}`}}
	g, memory, session := newGateway(client)

	key := CacheKey("/genre/movie/list", nil)
	session.Set(key, []byte(`not json`))

	genres, err := g.Genres(context.Background())
	if err != nil {
		t.Fatalf("Genres() error = %v", err)
	}
	if len(genres) != 1 || genres[0].Name != "Action" {
		t.Errorf("Genres() = %+v", genres)
	}
	body, _, _ := memory.Get(key)
	if string(body) == "not json" {
		t.Error("corrupt entry should be overwritten")
	}
}

func TestGateway_DiscoverByGenres(t *testing.T) {
	client := &fakeClient{bodies: map[string]string{"/discover/movie": searchBody}}
	g, _, _ := newGateway(client)

	page, err := g.DiscoverByGenres(context.Background(), []int{28, 12}, 0)
	if err != nil {
		t.Fatalf("DiscoverByGenres() error = %v", err)
	}
	if len(page.Results) != 2 {
		t.Errorf("len(Results) = %d, want 2", len(page.Results))
	}

	q := client.calls[0].query
	want := map[string]string{
		"with_genres":   "28,12",
		"sort_by":       "popularity.desc",
		"include_adult": "false",
		"page":          "1",
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Errorf("param %s = %q, want %q", k, got, v)
		}
	}

	// Order is part of identity: [12,28] is a different request
	if _, err := g.DiscoverByGenres(context.Background(), []int{12, 28}, 1); err != nil {
		t.Fatalf("DiscoverByGenres() error = %v", err)
	}
	if client.callCount() != 2 {
		t.Errorf("network calls = %d, want 2", client.callCount())
	}
}

func TestGateway_Details(t *testing.T) {
	client := &fakeClient{bodies: map[string]string{
		"/movie/155": `{"id":155,"title":"The Dark Knight","external_ids":{"imdb_id":"tt0468569"}}`,
	}}
	g, _, _ := newGateway(client)

	d, err := g.Details(context.Background(), 155)
	if err != nil {
		t.Fatalf("Details() error = %v", err)
	}
	if d.Title != "The Dark Knight" || d.ExternalIDs.IMDbID != "tt0468569" {
		t.Errorf("Details() = %+v", d)
	}
	q := client.calls[0].query
	if q.Get("append_to_response") != "credits,images,videos,external_ids" {
		t.Errorf("append_to_response = %q", q.Get("append_to_response"))
	}
	if q.Get("include_image_language") != "en,null" {
		t.Errorf("include_image_language = %q", q.Get("include_image_language"))
	}

	if _, err := g.Details(context.Background(), 0); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Details(0) error = %v, want ErrNotFound", err)
	}
	if client.callCount() != 1 {
		t.Errorf("network calls = %d, want 1", client.callCount())
	}
}

func TestGateway_ConcurrentMissesAgree(t *testing.T) {
	client := &fakeClient{bodies: map[string]string{"/movie/popular": searchBody}}
	g, memory, _ := newGateway(client)

	var wg sync.WaitGroup
	results := make([]domain.Page, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			page, err := g.Popular(context.Background(), 1)
			if err != nil {
				t.Errorf("Popular() error = %v", err)
			}
			results[i] = page
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if !reflect.DeepEqual(results[0], results[i]) {
			t.Errorf("result %d differs from result 0", i)
		}
	}
	if memory.Len() != 1 {
		t.Errorf("memory.Len() = %d, want 1", memory.Len())
	}
}

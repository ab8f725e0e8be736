package tmdb

import (
	"errors"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
)

const popularBody = `{
  "page": 1,
  "results": [
    {"id": 155, "title": "The Dark Knight", "poster_path": "/qJ2tW6WMUDux911r6m7haRef0WH.jpg", "backdrop_path": null,
     "overview": "Batman raises the stakes.", "release_date": "2008-07-16", "vote_average": 8.5, "popularity": 123.4, "genre_ids": [18, 28]},
    {"id": 272, "title": "Batman Begins", "poster_path": "", "release_date": "", "vote_average": 7.7, "popularity": 80.1}
  ],
  "total_pages": 3,
  "total_results": 52
}`

const detailBody = `{
  "id": 155,
  "title": "The Dark Knight",
  "poster_path": "/poster.jpg",
  "release_date": "2008-07-16",
  "vote_average": 8.5,
  "runtime": 152,
  "homepage": "https://www.warnerbros.com/movies/dark-knight/",
  "status": "Released",
  "tagline": "Why So Serious?",
  "genres": [{"id": 18, "name": "Drama"}, {"id": 28, "name": "Action"}],
  "credits": {
    "cast": [{"id": 3894, "name": "Christian Bale", "character": "Bruce Wayne", "order": 0}],
    "crew": [{"id": 525, "name": "Christopher Nolan", "department": "Directing", "job": "Director"}]
  },
  "videos": {"results": [{"key": "EXeTwQWrcwY", "name": "Official Trailer", "site": "YouTube", "type": "Trailer", "official": true}]},
  "images": {"posters": [{"file_path": "/p1.jpg", "width": 2000, "height": 3000, "iso_639_1": "en", "vote_average": 5.3}], "backdrops": []},
  "external_ids": {"imdb_id": "tt0468569", "wikidata_id": null}
}`

func TestDecodePage(t *testing.T) {
	page, err := DecodePage("popular", []byte(popularBody))
	if err != nil {
		t.Fatalf("DecodePage() error = %v", err)
	}

	if page.Page != 1 || page.TotalPages != 3 || page.TotalResults != 52 {
		t.Errorf("envelope = %+v", page)
	}
	if len(page.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(page.Results))
	}

	first := page.Results[0]
	if first.ID != 155 || first.Title != "The Dark Knight" || first.VoteAverage != 8.5 {
		t.Errorf("first = %+v", first)
	}
	if first.PosterPath == nil || *first.PosterPath != "/qJ2tW6WMUDux911r6m7haRef0WH.jpg" {
		t.Errorf("PosterPath = %v", first.PosterPath)
	}
	if first.BackdropPath != nil {
		t.Errorf("BackdropPath = %v, want nil", *first.BackdropPath)
	}

	second := page.Results[1]
	if second.PosterPath != nil {
		t.Error("empty poster path should map to nil")
	}
	if second.ReleaseDate != "" {
		t.Errorf("ReleaseDate = %q, want empty", second.ReleaseDate)
	}
}

func TestDecodePage_ShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>`},
		{"missing results", `{"page": 1}`},
		{"wrong type", `{"results": {"id": 1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePage("search", []byte(tt.body))
			var decErr *domain.DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("error = %v, want *domain.DecodeError", err)
			}
			if decErr.Op != "search" {
				t.Errorf("Op = %q, want search", decErr.Op)
			}
			if !errors.Is(err, domain.ErrLoadFailed) {
				t.Error("decode errors should match ErrLoadFailed")
			}
		})
	}
}

func TestDecodePage_EmptyResults(t *testing.T) {
	page, err := DecodePage("search", []byte(`{"page":1,"results":[],"total_pages":0,"total_results":0}`))
	if err != nil {
		t.Fatalf("DecodePage() error = %v", err)
	}
	if page.Results == nil || len(page.Results) != 0 {
		t.Errorf("Results = %#v, want empty non-nil slice", page.Results)
	}
}

func TestDecodeGenres(t *testing.T) {
	genres, err := DecodeGenres("genres", []byte(`{"genres":[{"id":28,"name":"Action"},{"id":12,"name":"Adventure"}]}`))
	if err != nil {
		t.Fatalf("DecodeGenres() error = %v", err)
	}
	want := []domain.Genre{{ID: 28, Name: "Action"}, {ID: 12, Name: "Adventure"}}
	if len(genres) != len(want) {
		t.Fatalf("len = %d, want %d", len(genres), len(want))
	}
	for i := range want {
		if genres[i] != want[i] {
			t.Errorf("genres[%d] = %+v, want %+v", i, genres[i], want[i])
		}
	}

	if _, err := DecodeGenres("genres", []byte(`{}`)); err == nil {
		t.Error("missing genres should be a decode error")
	}
}

func TestDecodeDetails(t *testing.T) {
	d, err := DecodeDetails("details", []byte(detailBody))
	if err != nil {
		t.Fatalf("DecodeDetails() error = %v", err)
	}

	if d.ID != 155 || d.Year() != 2008 {
		t.Errorf("movie = %+v", d.Movie)
	}
	if d.FormattedRuntime() != "2h 32m" {
		t.Errorf("FormattedRuntime() = %q", d.FormattedRuntime())
	}
	if d.Tagline == nil || *d.Tagline != "Why So Serious?" {
		t.Errorf("Tagline = %v", d.Tagline)
	}
	if len(d.GenreIDs) != 2 || d.GenreIDs[0] != 18 {
		t.Errorf("GenreIDs = %v, want [18 28]", d.GenreIDs)
	}
	if names := d.GenreNames(); len(names) != 2 || names[1] != "Action" {
		t.Errorf("GenreNames() = %v", names)
	}
	if len(d.Cast) != 1 || d.Cast[0].Character != "Bruce Wayne" {
		t.Errorf("Cast = %+v", d.Cast)
	}
	if dirs := d.Directors(); len(dirs) != 1 || dirs[0] != "Christopher Nolan" {
		t.Errorf("Directors() = %v", dirs)
	}
	if got, want := d.TrailerURL(), "https://www.youtube.com/watch?v=EXeTwQWrcwY"; got != want {
		t.Errorf("TrailerURL() = %q, want %q", got, want)
	}
	if got, want := d.IMDbURL(), "https://www.imdb.com/title/tt0468569/"; got != want {
		t.Errorf("IMDbURL() = %q, want %q", got, want)
	}
	if d.ExternalIDs.WikidataID != "" {
		t.Errorf("WikidataID = %q, want empty", d.ExternalIDs.WikidataID)
	}
	if len(d.Posters) != 1 || d.Posters[0].Language != "en" {
		t.Errorf("Posters = %+v", d.Posters)
	}
	if d.Backdrops != nil {
		t.Errorf("Backdrops = %+v, want nil", d.Backdrops)
	}
}

func TestDecodeDetails_MissingID(t *testing.T) {
	_, err := DecodeDetails("details", []byte(`{"title":"ghost"}`))
	if !errors.Is(err, domain.ErrLoadFailed) {
		t.Errorf("error = %v, want a load failure", err)
	}
}

package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMovie_Year(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2008-07-16", 2008},
		{"", 0},
		{"20", 0},
		{"abcd-01-01", 0},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			m := Movie{ReleaseDate: tt.date}
			if got := m.Year(); got != tt.want {
				t.Errorf("Year() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMovie_DisplayTitle(t *testing.T) {
	if got := (Movie{Title: "Heat", ReleaseDate: "1995-12-15"}).DisplayTitle(); got != "Heat (1995)" {
		t.Errorf("DisplayTitle() = %q, want %q", got, "Heat (1995)")
	}
	if got := (Movie{Title: "Untitled"}).DisplayTitle(); got != "Untitled" {
		t.Errorf("DisplayTitle() = %q, want %q", got, "Untitled")
	}
}

func TestMovieDetail_Links(t *testing.T) {
	home := " https://example.com/film "
	d := MovieDetail{
		Homepage: &home,
		Videos: []Video{
			{Key: "tease", Site: "YouTube", Type: "Teaser"},
			{Key: "vimeo", Site: "Vimeo", Type: "Trailer"},
			{Key: "abc123", Site: "YouTube", Type: "Trailer"},
		},
		ExternalIDs: ExternalIDs{IMDbID: "tt0468569"},
	}

	if got, want := d.TrailerURL(), "https://www.youtube.com/watch?v=abc123"; got != want {
		t.Errorf("TrailerURL() = %q, want %q", got, want)
	}
	if got, want := d.IMDbURL(), "https://www.imdb.com/title/tt0468569/"; got != want {
		t.Errorf("IMDbURL() = %q, want %q", got, want)
	}
	if got, want := d.HomepageURL(), "https://example.com/film"; got != want {
		t.Errorf("HomepageURL() = %q, want %q", got, want)
	}

	var empty MovieDetail
	if empty.TrailerURL() != "" || empty.IMDbURL() != "" || empty.HomepageURL() != "" {
		t.Error("empty detail should have no links")
	}
}

func TestMovieDetail_TopCast(t *testing.T) {
	d := MovieDetail{Cast: []CastMember{{Name: "A"}, {Name: "B"}, {Name: "C"}}}

	if got := d.TopCast(2); len(got) != 2 || got[1].Name != "B" {
		t.Errorf("TopCast(2) = %v", got)
	}
	if got := d.TopCast(6); len(got) != 3 {
		t.Errorf("TopCast(6) len = %d, want 3", len(got))
	}
	if got := d.TopCast(0); got != nil {
		t.Errorf("TopCast(0) = %v, want nil", got)
	}
}

func TestMovieDetail_FormattedRuntime(t *testing.T) {
	r := 152
	short := 45
	tests := []struct {
		name    string
		runtime *int
		want    string
	}{
		{"long", &r, "2h 32m"},
		{"short", &short, "45m"},
		{"unknown", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := MovieDetail{Runtime: tt.runtime}
			if got := d.FormattedRuntime(); got != tt.want {
				t.Errorf("FormattedRuntime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrors_CollapseToLoadFailed(t *testing.T) {
	netErr := fmt.Errorf("search: %w", &NetworkError{Op: "search", URL: "/search/movie", Err: errors.New("refused")})
	decErr := fmt.Errorf("popular: %w", &DecodeError{Op: "popular", Err: errors.New("bad json")})
	authErr := &NetworkError{Op: "genres", StatusCode: http.StatusUnauthorized, Err: errors.New("denied")}

	for _, err := range []error{netErr, decErr, authErr} {
		if !errors.Is(err, ErrLoadFailed) {
			t.Errorf("errors.Is(%v, ErrLoadFailed) = false, want true", err)
		}
	}
	if !errors.Is(authErr, ErrInvalidAPIKey) {
		t.Error("401 should match ErrInvalidAPIKey")
	}
	if errors.Is(netErr, ErrInvalidAPIKey) {
		t.Error("connectivity failure should not match ErrInvalidAPIKey")
	}

	var se *StorageReadError
	wrapped := fmt.Errorf("load: %w", &StorageReadError{Key: "k", Err: errors.New("eof")})
	if !errors.As(wrapped, &se) || se.Key != "k" {
		t.Errorf("errors.As StorageReadError failed for %v", wrapped)
	}
	if errors.Is(wrapped, ErrLoadFailed) {
		t.Error("storage read errors are not load failures")
	}
}

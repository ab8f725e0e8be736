// Package sorting reorders movie result sets client-side.
package sorting

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/mmcdole/marquee/internal/domain"
)

// Key names the field a result set is ordered by
type Key string

const (
	// Relevance keeps the order the catalog returned
	Relevance   Key = "relevance"
	Title       Key = "title"
	Popularity  Key = "popularity"
	VoteAverage Key = "vote_average"
	ReleaseDate Key = "release_date"
)

// Direction is ascending or descending
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Keys returns the sort keys in menu order
func Keys() []Key {
	return []Key{Relevance, Title, Popularity, VoteAverage, ReleaseDate}
}

// Label returns the display name for the key
func (k Key) Label() string {
	switch k {
	case Relevance:
		return "Relevance"
	case Title:
		return "Title"
	case Popularity:
		return "Popularity"
	case VoteAverage:
		return "Rating"
	case ReleaseDate:
		return "Release Date"
	default:
		return "Unknown"
	}
}

// Label returns the display name for the direction
func (d Direction) Label() string {
	if d == Asc {
		return "Ascending"
	}
	return "Descending"
}

// Toggle returns the opposite direction
func (d Direction) Toggle() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// ParseKey parses a configured sort key
func ParseKey(s string) (Key, error) {
	k := Key(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Keys(), k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// ParseDirection parses a configured sort direction
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// Reorder returns a new slice ordered by key and dir; items is not modified.
// The sort is stable in both directions. Relevance and unknown keys return
// an unmodified copy.
func Reorder(items []domain.Movie, key Key, dir Direction) []domain.Movie {
	out := slices.Clone(items)
	if out == nil {
		out = []domain.Movie{}
	}

	var compare func(a, b domain.Movie) int
	switch key {
	case Title:
		return byTitle(out, dir)
	case Popularity:
		compare = func(a, b domain.Movie) int { return cmp.Compare(a.Popularity, b.Popularity) }
	case VoteAverage:
		compare = func(a, b domain.Movie) int { return cmp.Compare(a.VoteAverage, b.VoteAverage) }
	case ReleaseDate:
		// ISO dates order lexicographically; empty sorts lowest
		compare = func(a, b domain.Movie) int { return strings.Compare(a.ReleaseDate, b.ReleaseDate) }
	default:
		return out
	}

	slices.SortStableFunc(out, directed(compare, dir))
	return out
}

// byTitle sorts on case-folded titles, folding each title once
func byTitle(out []domain.Movie, dir Direction) []domain.Movie {
	type keyed struct {
		folded string
		movie  domain.Movie
	}

	fold := cases.Fold()
	rows := make([]keyed, len(out))
	for i, m := range out {
		rows[i] = keyed{folded: fold.String(m.Title), movie: m}
	}

	slices.SortStableFunc(rows, directed(func(a, b keyed) int {
		return strings.Compare(a.folded, b.folded)
	}, dir))

	for i, r := range rows {
		out[i] = r.movie
	}
	return out
}

// directed inverts compare for descending order; equal elements stay equal
func directed[T any](compare func(a, b T) int, dir Direction) func(a, b T) int {
	if dir == Desc {
		return func(a, b T) int { return compare(b, a) }
	}
	return compare
}

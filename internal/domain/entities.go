package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Movie is the summary record returned by list endpoints (search, popular, discover)
type Movie struct {
	ID           int     // Catalog identifier, unique
	Title        string  // Display title
	PosterPath   *string // Opaque image path, nil when the catalog has no poster
	BackdropPath *string // Opaque image path, nil when the catalog has no backdrop
	Overview     string  // Plot synopsis
	ReleaseDate  string  // ISO date (YYYY-MM-DD), empty when unknown
	VoteAverage  float64 // Community rating, 0-10
	Popularity   float64 // Catalog popularity score
	GenreIDs     []int   // Genre identifiers, may be empty
}

// GetID returns the catalog identifier
func (m Movie) GetID() int {
	return m.ID
}

// Year returns the release year, or 0 when the release date is unknown
func (m Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// DisplayTitle returns "Title (Year)" or just the title when the year is unknown
func (m Movie) DisplayTitle() string {
	if y := m.Year(); y > 0 {
		return fmt.Sprintf("%s (%d)", m.Title, y)
	}
	return m.Title
}

// FormattedRating returns the rating with one decimal, e.g. "7.3"
func (m Movie) FormattedRating() string {
	return strconv.FormatFloat(m.VoteAverage, 'f', 1, 64)
}

// Genre is a catalog genre. The list is effectively static for a session.
type Genre struct {
	ID   int
	Name string
}

// Page is one page of a list endpoint response
type Page struct {
	Page         int
	Results      []Movie
	TotalPages   int
	TotalResults int
}

// HasNext returns true if the catalog reports more pages after this one
func (p Page) HasNext() bool {
	return p.Page < p.TotalPages
}

// MovieDetail is the enriched record returned by a single detail fetch.
// Credits, videos, images and external identifiers arrive in the same response.
type MovieDetail struct {
	Movie

	Genres   []Genre
	Runtime  *int    // Minutes
	Homepage *string // Official site
	Status   string  // e.g. "Released"
	Tagline  *string

	Cast        []CastMember
	Crew        []CrewMember
	Videos      []Video
	Posters     []Image
	Backdrops   []Image
	ExternalIDs ExternalIDs
}

// CastMember is one credited performer
type CastMember struct {
	ID        int
	Name      string
	Character string
	Order     int
}

// CrewMember is one credited crew member
type CrewMember struct {
	ID         int
	Name       string
	Department string
	Job        string
}

// Video is a trailer, teaser or clip hosted on an external site
type Video struct {
	Key      string // Site-specific key, e.g. the YouTube video ID
	Name     string
	Site     string // "YouTube", "Vimeo"
	Type     string // "Trailer", "Teaser", "Clip"
	Official bool
}

// Image is one entry of the poster/backdrop galleries
type Image struct {
	FilePath    string
	Width       int
	Height      int
	Language    string
	VoteAverage float64
}

// ExternalIDs links the movie to other catalogs
type ExternalIDs struct {
	IMDbID      string
	WikidataID  string
	FacebookID  string
	InstagramID string
	TwitterID   string
}

// Trailer returns the first YouTube trailer, if any
func (d MovieDetail) Trailer() (Video, bool) {
	for _, v := range d.Videos {
		if v.Type == "Trailer" && v.Site == "YouTube" && v.Key != "" {
			return v, true
		}
	}
	return Video{}, false
}

// TrailerURL returns the watch URL of the first YouTube trailer, or "" when there is none
func (d MovieDetail) TrailerURL() string {
	v, ok := d.Trailer()
	if !ok {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + v.Key
}

// IMDbURL returns the IMDb title page, or "" when the external ID is unknown
func (d MovieDetail) IMDbURL() string {
	if d.ExternalIDs.IMDbID == "" {
		return ""
	}
	return "https://www.imdb.com/title/" + d.ExternalIDs.IMDbID + "/"
}

// HomepageURL returns the official site, or "" when there is none
func (d MovieDetail) HomepageURL() string {
	if d.Homepage == nil {
		return ""
	}
	return strings.TrimSpace(*d.Homepage)
}

// TopCast returns the first n cast members in billing order
func (d MovieDetail) TopCast(n int) []CastMember {
	if n <= 0 || len(d.Cast) == 0 {
		return nil
	}
	if n > len(d.Cast) {
		n = len(d.Cast)
	}
	return d.Cast[:n]
}

// Directors returns the names of crew members credited with the "Director" job
func (d MovieDetail) Directors() []string {
	var names []string
	for _, c := range d.Crew {
		if c.Job == "Director" {
			names = append(names, c.Name)
		}
	}
	return names
}

// GenreNames returns the genre display names in catalog order
func (d MovieDetail) GenreNames() []string {
	names := make([]string, len(d.Genres))
	for i, g := range d.Genres {
		names[i] = g.Name
	}
	return names
}

// FormattedRuntime returns the runtime as "2h 14m", or "" when unknown
func (d MovieDetail) FormattedRuntime() string {
	if d.Runtime == nil || *d.Runtime <= 0 {
		return ""
	}
	h := *d.Runtime / 60
	mins := *d.Runtime % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// MovieIDs returns the identifiers of movies in the given order
func MovieIDs(movies []Movie) []int {
	ids := make([]int, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}
	return ids
}

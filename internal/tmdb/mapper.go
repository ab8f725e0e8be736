package tmdb

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmcdole/marquee/internal/domain"
)

// DecodePage converts a paginated list body to a domain page
func DecodePage(op string, body []byte) (domain.Page, error) {
	var dto pageDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return domain.Page{}, &domain.DecodeError{Op: op, Err: err}
	}
	if dto.Results == nil {
		return domain.Page{}, &domain.DecodeError{Op: op, Err: errors.New("missing results")}
	}

	return domain.Page{
		Page:         dto.Page,
		Results:      MapMovies(*dto.Results),
		TotalPages:   dto.TotalPages,
		TotalResults: dto.TotalResults,
	}, nil
}

// DecodeGenres converts a genre list body to domain genres
func DecodeGenres(op string, body []byte) ([]domain.Genre, error) {
	var dto genreListDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, &domain.DecodeError{Op: op, Err: err}
	}
	if dto.Genres == nil {
		return nil, &domain.DecodeError{Op: op, Err: errors.New("missing genres")}
	}

	genres := make([]domain.Genre, 0, len(*dto.Genres))
	for _, g := range *dto.Genres {
		genres = append(genres, domain.Genre{ID: g.ID, Name: g.Name})
	}
	return genres, nil
}

// DecodeDetails converts an enriched movie body to a domain detail
func DecodeDetails(op string, body []byte) (*domain.MovieDetail, error) {
	var dto detailDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, &domain.DecodeError{Op: op, Err: err}
	}
	if dto.ID == 0 {
		return nil, &domain.DecodeError{Op: op, Err: fmt.Errorf("missing id")}
	}

	detail := &domain.MovieDetail{
		Movie:    mapMovie(dto.movieDTO),
		Runtime:  dto.Runtime,
		Homepage: dto.Homepage,
		Status:   dto.Status,
		Tagline:  dto.Tagline,
		ExternalIDs: domain.ExternalIDs{
			IMDbID:      deref(dto.ExternalIDs.IMDbID),
			WikidataID:  deref(dto.ExternalIDs.WikidataID),
			FacebookID:  deref(dto.ExternalIDs.FacebookID),
			InstagramID: deref(dto.ExternalIDs.InstagramID),
			TwitterID:   deref(dto.ExternalIDs.TwitterID),
		},
	}

	for _, g := range dto.Genres {
		detail.Genres = append(detail.Genres, domain.Genre{ID: g.ID, Name: g.Name})
		// Details omits genre_ids, derive them so summaries stay consistent
		detail.GenreIDs = append(detail.GenreIDs, g.ID)
	}
	for _, c := range dto.Credits.Cast {
		detail.Cast = append(detail.Cast, domain.CastMember{
			ID:        c.ID,
			Name:      c.Name,
			Character: c.Character,
			Order:     c.Order,
		})
	}
	for _, c := range dto.Credits.Crew {
		detail.Crew = append(detail.Crew, domain.CrewMember{
			ID:         c.ID,
			Name:       c.Name,
			Department: c.Department,
			Job:        c.Job,
		})
	}
	for _, v := range dto.Videos.Results {
		detail.Videos = append(detail.Videos, domain.Video{
			Key:      v.Key,
			Name:     v.Name,
			Site:     v.Site,
			Type:     v.Type,
			Official: v.Official,
		})
	}
	detail.Posters = mapImages(dto.Images.Posters)
	detail.Backdrops = mapImages(dto.Images.Backdrops)

	return detail, nil
}

// MapMovies converts result DTOs to domain movies, preserving order
func MapMovies(dtos []movieDTO) []domain.Movie {
	movies := make([]domain.Movie, 0, len(dtos))
	for _, d := range dtos {
		movies = append(movies, mapMovie(d))
	}
	return movies
}

func mapMovie(d movieDTO) domain.Movie {
	return domain.Movie{
		ID:           d.ID,
		Title:        d.Title,
		PosterPath:   nonEmpty(d.PosterPath),
		BackdropPath: nonEmpty(d.BackdropPath),
		Overview:     d.Overview,
		ReleaseDate:  d.ReleaseDate,
		VoteAverage:  d.VoteAverage,
		Popularity:   d.Popularity,
		GenreIDs:     d.GenreIDs,
	}
}

func mapImages(dtos []imageDTO) []domain.Image {
	if len(dtos) == 0 {
		return nil
	}
	images := make([]domain.Image, 0, len(dtos))
	for _, i := range dtos {
		images = append(images, domain.Image{
			FilePath:    i.FilePath,
			Width:       i.Width,
			Height:      i.Height,
			Language:    deref(i.Language),
			VoteAverage: i.VoteAverage,
		})
	}
	return images
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nonEmpty maps "" to nil so views only check for nil
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

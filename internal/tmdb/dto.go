package tmdb

// movieDTO is a movie summary as it appears in list results
type movieDTO struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	Popularity   float64 `json:"popularity"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
}

// pageDTO is the envelope of every paginated list endpoint.
// Results is a pointer so a missing array can be told apart from an empty one.
type pageDTO struct {
	Page         int         `json:"page"`
	Results      *[]movieDTO `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

type genreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type genreListDTO struct {
	Genres *[]genreDTO `json:"genres"`
}

type castDTO struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

type crewDTO struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Job        string `json:"job"`
}

type videoDTO struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type imageDTO struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Language    *string `json:"iso_639_1"`
	VoteAverage float64 `json:"vote_average"`
}

type externalIDsDTO struct {
	IMDbID      *string `json:"imdb_id"`
	WikidataID  *string `json:"wikidata_id"`
	FacebookID  *string `json:"facebook_id"`
	InstagramID *string `json:"instagram_id"`
	TwitterID   *string `json:"twitter_id"`
}

// detailDTO is /movie/{id} with append_to_response=credits,images,videos,external_ids
type detailDTO struct {
	movieDTO
	Genres   []genreDTO `json:"genres"`
	Runtime  *int       `json:"runtime"`
	Homepage *string    `json:"homepage"`
	Status   string     `json:"status"`
	Tagline  *string    `json:"tagline"`
	Credits  struct {
		Cast []castDTO `json:"cast"`
		Crew []crewDTO `json:"crew"`
	} `json:"credits"`
	Videos struct {
		Results []videoDTO `json:"results"`
	} `json:"videos"`
	Images struct {
		Posters   []imageDTO `json:"posters"`
		Backdrops []imageDTO `json:"backdrops"`
	} `json:"images"`
	ExternalIDs externalIDsDTO `json:"external_ids"`
}

// errorResponse is the body TMDB sends with non-2xx statuses
type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}

package tmdb

import (
	"fmt"
	"strings"
)

// Kind discriminates movie and TV records
type Kind string

const (
	// KindMovie represents a movie
	KindMovie Kind = "movie"
	// KindTV represents a TV show
	KindTV Kind = "tv"
	// KindMulti is a search-only kind spanning movies and TV shows
	KindMulti Kind = "multi"
)

// ParseKind parses a kind string, accepting a few common aliases
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies", "film":
		return KindMovie, nil
	case "tv", "show", "shows", "series":
		return KindTV, nil
	case "multi", "all":
		return KindMulti, nil
	default:
		return "", fmt.Errorf("unknown kind %q (must be movie, tv or multi)", s)
	}
}

// IsResource reports whether the kind addresses a list or detail resource
func (k Kind) IsResource() bool {
	return k == KindMovie || k == KindTV
}

// IsValid reports whether the kind can be used as a search kind
func (k Kind) IsValid() bool {
	return k.IsResource() || k == KindMulti
}

// Label returns a human readable label
func (k Kind) Label() string {
	switch k {
	case KindMovie:
		return "Movie"
	case KindTV:
		return "TV"
	case KindMulti:
		return "Multi"
	default:
		return string(k)
	}
}

// UntitledLabel is shown when a record carries neither title nor name
const UntitledLabel = "(Untitled)"

// Entity is a movie or TV show summary as returned by list and search endpoints.
// Every field except ID may be absent.
type Entity struct {
	ID               int      `json:"id"`
	Title            string   `json:"title,omitempty"`
	Name             string   `json:"name,omitempty"`
	OriginalTitle    string   `json:"original_title,omitempty"`
	OriginalName     string   `json:"original_name,omitempty"`
	Overview         string   `json:"overview,omitempty"`
	Popularity       *float64 `json:"popularity,omitempty"`
	VoteAverage      float64  `json:"vote_average,omitempty"`
	VoteCount        int      `json:"vote_count,omitempty"`
	ReleaseDate      string   `json:"release_date,omitempty"`
	FirstAirDate     string   `json:"first_air_date,omitempty"`
	PosterPath       string   `json:"poster_path,omitempty"`
	BackdropPath     string   `json:"backdrop_path,omitempty"`
	MediaType        string   `json:"media_type,omitempty"`
	OriginalLanguage string   `json:"original_language,omitempty"`
	Adult            bool     `json:"adult,omitempty"`
}

// DisplayName returns the best available name for the entity
func (e *Entity) DisplayName() string {
	if e.Title != "" {
		return e.Title
	}
	if e.Name != "" {
		return e.Name
	}
	return UntitledLabel
}

// Date returns the release date for movies or the first air date for TV shows.
// The result may be empty.
func (e *Entity) Date() string {
	if e.ReleaseDate != "" {
		return e.ReleaseDate
	}
	return e.FirstAirDate
}

// Year returns the year part of Date, or 0 when unknown
func (e *Entity) Year() int {
	d := e.Date()
	if len(d) < 4 {
		return 0
	}
	var y int
	if _, err := fmt.Sscanf(d[:4], "%d", &y); err != nil {
		return 0
	}
	return y
}

// HasPoster reports whether a poster path is present
func (e *Entity) HasPoster() bool {
	return e.PosterPath != ""
}

// PopularityValue returns the popularity score and whether it was present
func (e *Entity) PopularityValue() (float64, bool) {
	if e.Popularity == nil {
		return 0, false
	}
	return *e.Popularity, true
}

// ListPage is one page of a categorized list
type ListPage struct {
	Page         int      `json:"page"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
	Results      []Entity `json:"results"`

	// Received counts the records the service returned, including dropped ones
	Received int `json:"-"`
}

// HasMorePages checks if the service reports pages after this one
func (lp *ListPage) HasMorePages() bool {
	return lp.Page < lp.TotalPages
}

// SearchPage is the response of a search endpoint
type SearchPage struct {
	Page         int      `json:"page"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
	Results      []Entity `json:"results"`
}

// Genre is a movie or TV genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DetailRecord is a single movie or TV show with its overview and extended fields
type DetailRecord struct {
	Entity
	Kind             Kind    `json:"-"`
	Tagline          string  `json:"tagline,omitempty"`
	Genres           []Genre `json:"genres,omitempty"`
	Runtime          int     `json:"runtime,omitempty"`
	NumberOfSeasons  int     `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int     `json:"number_of_episodes,omitempty"`
	Status           string  `json:"status,omitempty"`
	Homepage         string  `json:"homepage,omitempty"`
	IMDbID           string  `json:"imdb_id,omitempty"`
}

// GenreNames returns the genre names in service order
func (d *DetailRecord) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return names
}

// errorEnvelope is the body TMDB returns alongside non-2xx statuses
type errorEnvelope struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       *bool  `json:"success,omitempty"`
}

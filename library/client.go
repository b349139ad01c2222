package library

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golift.io/starr"
	"golift.io/starr/radarr"
)

// DefaultTimeout bounds a single Radarr request
const DefaultTimeout = 30 * time.Second

// Status describes a movie's presence in the Radarr library
type Status struct {
	TMDBID    int
	InLibrary bool
	RadarrID  int64
	Monitored bool
	HasFile   bool
	Path      string
}

// Label returns a short human readable description
func (s Status) Label() string {
	switch {
	case !s.InLibrary:
		return "Not in library"
	case s.HasFile:
		return "In library"
	case s.Monitored:
		return "In library (wanted)"
	default:
		return "In library (unmonitored)"
	}
}

// Client looks movies up in Radarr. It never modifies the library.
type Client struct {
	api    RadarrAPI
	logger zerolog.Logger
}

// NewClient creates a Radarr client and verifies the connection
func NewClient(url, apiKey string, logger zerolog.Logger) (*Client, error) {
	config := starr.New(apiKey, url, DefaultTimeout)
	radarrClient := radarr.New(config)

	if err := radarrClient.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to Radarr: %w", err)
	}

	return NewWithAPI(radarrClient, logger), nil
}

// NewWithAPI wraps an existing Radarr API implementation
func NewWithAPI(api RadarrAPI, logger zerolog.Logger) *Client {
	return &Client{
		api:    api,
		logger: logger.With().Str("component", "radarr").Logger(),
	}
}

// Lookup finds the movie with the given TMDB id
func (c *Client) Lookup(ctx context.Context, tmdbID int) (Status, error) {
	status := Status{TMDBID: tmdbID}

	movies, err := c.api.GetMovieContext(ctx, &radarr.GetMovie{TMDBID: int64(tmdbID)})
	if err != nil {
		return status, fmt.Errorf("failed to look up tmdb id %d: %w", tmdbID, err)
	}

	for _, movie := range movies {
		if movie == nil || movie.TmdbID != int64(tmdbID) {
			continue
		}
		status.InLibrary = true
		status.RadarrID = movie.ID
		status.Monitored = movie.Monitored
		status.HasFile = movie.HasFile
		status.Path = movie.Path
		break
	}

	c.logger.Debug().
		Int("tmdb_id", tmdbID).
		Bool("in_library", status.InLibrary).
		Msg("Looked up movie in Radarr")

	return status, nil
}

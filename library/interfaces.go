package library

import (
	"context"

	"golift.io/starr/radarr"
)

// RadarrAPI is the subset of the starr Radarr client the lookup needs
type RadarrAPI interface {
	GetMovieContext(ctx context.Context, params *radarr.GetMovie) ([]*radarr.Movie, error)
	Ping() error
}

// Checker reports whether TMDB movies are already in the library
type Checker interface {
	Lookup(ctx context.Context, tmdbID int) (Status, error)
	LookupMany(ctx context.Context, tmdbIDs []int) (map[int]Status, error)
}

var _ Checker = (*Client)(nil)

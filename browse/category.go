package browse

import (
	"fmt"
	"strings"

	"github.com/s0up4200/cinescope/tmdb"
)

// Category is one list category of a resource
type Category struct {
	ID    string
	Label string
}

// Resource describes a listable resource and the categories it offers
type Resource struct {
	Kind       tmdb.Kind
	Label      string
	Categories []Category
	Default    string
}

// MovieResource lists movies
var MovieResource = Resource{
	Kind:  tmdb.KindMovie,
	Label: "Movies",
	Categories: []Category{
		{ID: "now_playing", Label: "Now Playing"},
		{ID: "popular", Label: "Popular"},
		{ID: "top_rated", Label: "Top Rated"},
		{ID: "upcoming", Label: "Upcoming"},
	},
	Default: "popular",
}

// TVResource lists TV shows
var TVResource = Resource{
	Kind:  tmdb.KindTV,
	Label: "TV Shows",
	Categories: []Category{
		{ID: "popular", Label: "Popular"},
		{ID: "top_rated", Label: "Top Rated"},
		{ID: "airing_today", Label: "Airing Today"},
		{ID: "on_the_air", Label: "On The Air"},
	},
	Default: "popular",
}

// ResourceFor returns the resource for a list kind
func ResourceFor(kind tmdb.Kind) (Resource, error) {
	switch kind {
	case tmdb.KindMovie:
		return MovieResource, nil
	case tmdb.KindTV:
		return TVResource, nil
	default:
		return Resource{}, fmt.Errorf("%w: %q has no lists", ErrUnknownResource, kind)
	}
}

// Lookup finds a category by id
func (r Resource) Lookup(id string) (Category, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, c := range r.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryIDs returns the category ids in display order
func (r Resource) CategoryIDs() []string {
	ids := make([]string, len(r.Categories))
	for i, c := range r.Categories {
		ids[i] = c.ID
	}
	return ids
}

// Next returns the category after id, wrapping around. A negative step moves backwards.
func (r Resource) Next(id string, step int) Category {
	if len(r.Categories) == 0 {
		return Category{}
	}
	idx := 0
	for i, c := range r.Categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	n := len(r.Categories)
	idx = ((idx+step)%n + n) % n
	return r.Categories[idx]
}

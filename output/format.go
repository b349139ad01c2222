package output

import (
	"fmt"
	"strings"

	"github.com/s0up4200/cinescope/tmdb"
)

// Placeholders shown for absent fields
const (
	NoImage      = "No Image"
	Missing      = "-"
	NoOverview   = "No overview available."
	SearchPrompt = "Please initiate a search"
	NoResults    = "No results found."
	EmptyList    = "Nothing to show."
)

// Popularity formats the popularity score, or Missing when absent
func Popularity(e *tmdb.Entity) string {
	p, ok := e.PopularityValue()
	if !ok {
		return Missing
	}
	return fmt.Sprintf("%.1f", p)
}

// Date returns the release or first-air date, or Missing
func Date(e *tmdb.Entity) string {
	if d := e.Date(); d != "" {
		return d
	}
	return Missing
}

// Poster returns the poster URL, or NoImage when the entity has none
func Poster(imageBase, size string, e *tmdb.Entity) string {
	url, ok := tmdb.ImageURL(imageBase, size, e.PosterPath)
	if !ok {
		return NoImage
	}
	return url
}

// Overview returns text, or NoOverview when blank
func Overview(text string) string {
	if strings.TrimSpace(text) == "" {
		return NoOverview
	}
	return text
}

// Rating formats the vote average with its vote count
func Rating(e *tmdb.Entity) string {
	if e.VoteCount == 0 {
		return Missing
	}
	return fmt.Sprintf("%.1f/10 (%d votes)", e.VoteAverage, e.VoteCount)
}

// Runtime formats a runtime in minutes as "2h 19m"
func Runtime(minutes int) string {
	if minutes <= 0 {
		return Missing
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// SearchEmptyState returns the text shown when a search has no results to list
func SearchEmptyState(hasSearched bool) string {
	if hasSearched {
		return NoResults
	}
	return SearchPrompt
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

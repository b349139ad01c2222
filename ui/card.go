package ui

import (
	"fmt"
	"strings"

	"github.com/s0up4200/cinescope/output"
	"github.com/s0up4200/cinescope/tmdb"
)

const (
	// cardHeight is the number of lines one card occupies
	cardHeight = 2

	// endReachedThreshold is how close to the end, in viewports, the
	// cursor must be before the next page is requested
	endReachedThreshold = 0.5
)

// shouldRequestMore reports whether the cursor is close enough to the end of
// a list of total items, visible at a time, to load the next page
func shouldRequestMore(cursor, total, visible int) bool {
	if total == 0 || visible <= 0 {
		return false
	}
	if total <= visible {
		return true
	}
	remaining := total - 1 - cursor
	return float64(remaining) <= float64(visible)*endReachedThreshold
}

// scrollOffset keeps the cursor inside the window of visible cards
func scrollOffset(cursor, offset, visible, total int) int {
	if visible <= 0 {
		return 0
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+visible {
		offset = cursor - visible + 1
	}
	if maxOffset := total - visible; offset > maxOffset {
		offset = maxOffset
	}
	return max(offset, 0)
}

// renderCard renders a title line and a metadata line for e
func renderCard(e *tmdb.Entity, badge string, selected bool, width int, opts *Options) string {
	title := e.DisplayName()
	if badge != "" {
		title = fmt.Sprintf("[%s] %s", badge, title)
	}
	title = output.Truncate(title, max(width-4, 8))

	meta := strings.Join([]string{
		"★ " + output.Popularity(e),
		output.Date(e),
		output.Poster(opts.ImageBaseURL, opts.PosterSize, e),
	}, " · ")
	meta = output.Truncate(meta, max(width-4, 8))

	if selected {
		return cursorStyle.Render("▸ "+title) + "\n" + metaStyle.Render("  "+meta)
	}
	return itemStyle.Render("  "+title) + "\n" + metaStyle.Render("  "+meta)
}

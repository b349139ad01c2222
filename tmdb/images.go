package tmdb

import "strings"

// DefaultImageBaseURL is the TMDB image CDN root
const DefaultImageBaseURL = "https://image.tmdb.org/t/p"

// Poster sizes accepted by the image CDN
const (
	SizeW185     = "w185"
	SizeW200     = "w200"
	SizeW500     = "w500"
	SizeOriginal = "original"
)

// ValidImageSize reports whether size is one the CDN serves
func ValidImageSize(size string) bool {
	switch size {
	case SizeW185, SizeW200, SizeW500, SizeOriginal:
		return true
	default:
		return false
	}
}

// ImageURL joins the CDN base, a size and an image path.
// An empty path yields ok=false; a missing image is never an error.
func ImageURL(base, size, path string) (string, bool) {
	if path == "" {
		return "", false
	}
	if base == "" {
		base = DefaultImageBaseURL
	}
	if size == "" {
		size = SizeW185
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(base, "/") + "/" + size + path, true
}

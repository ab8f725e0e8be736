package tmdb

import "strings"

// DefaultImageBaseURL is the TMDB image CDN root
const DefaultImageBaseURL = "https://image.tmdb.org/t/p"

// ImageSize is a TMDB rendition width
type ImageSize string

const (
	SizeW92      ImageSize = "w92"
	SizeW185     ImageSize = "w185"
	SizeW342     ImageSize = "w342"
	SizeW500     ImageSize = "w500"
	SizeOriginal ImageSize = "original"
)

// ImageURL builds a CDN URL for an image path, or "" when path is nil or empty.
func ImageURL(base string, size ImageSize, path *string) string {
	if path == nil || *path == "" {
		return ""
	}
	if base == "" {
		base = DefaultImageBaseURL
	}
	p := *path
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(base, "/") + "/" + string(size) + p
}

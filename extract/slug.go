package extract

import "strings"

// Slug positions inside absolute links split on "/".
//
//	https://host/anime/{slug}/         -> 4
//	https://host/{episode}/            -> 3
//	https://host/genre/{slug}/         -> 4
const (
	detailSegment  = 4
	episodeSegment = 3
	tagSegment     = 4
)

// Segment returns the i-th "/"-separated part of href, trimmed.
// An out of range index yields "".
func Segment(href string, i int) string {
	if href == "" || i < 0 {
		return ""
	}

	parts := strings.Split(href, "/")
	if i >= len(parts) {
		return ""
	}

	return strings.TrimSpace(parts[i])
}

// DetailSlug returns the slug of an anime detail link.
func DetailSlug(href string) string {
	return Segment(href, detailSegment)
}

// EpisodeSlug returns the slug of an episode link.
func EpisodeSlug(href string) string {
	return Segment(href, episodeSegment)
}

// TagSlug returns the slug of a genre or character-type link.
func TagSlug(href string) string {
	return Segment(href, tagSegment)
}

// TrailingSlug returns the last non-empty path segment of href.
func TrailingSlug(href string) string {
	parts := strings.Split(strings.TrimSpace(href), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if p := strings.TrimSpace(parts[i]); p != "" {
			// a bare host is not a slug
			if i <= 2 && strings.Contains(href, "://") {
				return ""
			}
			return p
		}
	}

	return ""
}

// Package extract turns Animasu markup into the normalized catalog model.
//
// Every function here is pure and total: missing markup yields an empty value
// or a sentinel, never an error.
package extract

import (
	"strings"

	"github.com/anikatalog/anikatalog/source"
)

var (
	ongoingMarkers  = []string{"🔥🔥🔥", "Ongoing"}
	finishedMarkers = []string{"Selesai ✓", "[Selesai]"}
)

// Status maps a status marker to a Status.
// Anything outside the known markers, including an empty marker, is upcoming.
func Status(marker string) source.Status {
	marker = strings.TrimSpace(marker)

	for _, m := range finishedMarkers {
		if marker == m {
			return source.StatusComplete
		}
	}

	for _, m := range ongoingMarkers {
		if marker == m {
			return source.StatusOngoing
		}
	}

	return source.StatusUpcoming
}

// StatusIn is like Status but looks for the markers anywhere inside text.
// Finished markers win over ongoing ones.
func StatusIn(text string) source.Status {
	for _, m := range finishedMarkers {
		if strings.Contains(text, m) {
			return source.StatusComplete
		}
	}

	for _, m := range ongoingMarkers {
		if strings.Contains(text, m) {
			return source.StatusOngoing
		}
	}

	return source.StatusUpcoming
}

package source

import "golang.org/x/exp/slices"

// Clone returns a copy of the page that shares no storage with p.
func (p ResponsePagination) Clone() ResponsePagination {
	return ResponsePagination{
		Data:    slices.Clone(p.Data),
		HasNext: p.HasNext,
	}
}

// Clone returns a copy of the detail that shares no storage with a.
func (a AnimeDetail) Clone() AnimeDetail {
	a.Genres = slices.Clone(a.Genres)
	a.CharacterTypes = slices.Clone(a.CharacterTypes)
	a.Episodes = slices.Clone(a.Episodes)
	a.Batches = slices.Clone(a.Batches)
	return a
}

// Clone returns a copy of the schedule with its own map and day slices.
func (s Schedules) Clone() Schedules {
	if s == nil {
		return nil
	}

	clone := make(Schedules, len(s))
	for day, animes := range s {
		clone[day] = slices.Clone(animes)
	}
	return clone
}

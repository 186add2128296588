package source

import "github.com/samber/mo"

// Option tunes a single provider call.
type Option struct {
	// NoCache bypasses the cache store for this call only. The fresh result still replaces the cached one.
	NoCache bool `json:"noCache"`
}

// AnimesParams describes a catalog query.
//
// The single-value filters take precedence over their list counterparts.
type AnimesParams struct {
	Search         string            `json:"search,omitempty"`
	Page           int               `json:"page,omitempty"`
	Sort           string            `json:"sort,omitempty"`
	Genre          mo.Option[string] `json:"genre"`
	Genres         []string          `json:"genres,omitempty"`
	Season         mo.Option[string] `json:"season"`
	Seasons        []string          `json:"seasons,omitempty"`
	CharacterType  mo.Option[string] `json:"characterType"`
	CharacterTypes []string          `json:"characterTypes,omitempty"`
	Status         string            `json:"status,omitempty"`
	Type           string            `json:"type,omitempty"`
}

// GenreFilter resolves the effective genre filter.
func (p *AnimesParams) GenreFilter() []string {
	return pick(p.Genre, p.Genres)
}

// SeasonFilter resolves the effective season filter.
func (p *AnimesParams) SeasonFilter() []string {
	return pick(p.Season, p.Seasons)
}

// CharacterTypeFilter resolves the effective character-type filter.
func (p *AnimesParams) CharacterTypeFilter() []string {
	return pick(p.CharacterType, p.CharacterTypes)
}

func pick(single mo.Option[string], many []string) []string {
	if v, ok := single.Get(); ok {
		return []string{v}
	}
	if many == nil {
		return []string{}
	}
	return many
}

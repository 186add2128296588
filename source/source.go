// Package source defines the domain models and the provider contract for catalog aggregation.
package source

import (
	"context"

	"github.com/samber/mo"
)

// Source is the uniform operation set every external catalog site implements.
//
// Operations never return errors. A failed fetch or parse is logged by the
// implementation and degrades to the zero result of the operation: an empty
// list, a pagination without next page, or mo.None for a detail page.
type Source interface {
	// Name returns the human readable name of the provider.
	Name() string

	// ID returns the identifier used to tag results and namespace cache keys.
	ID() ProviderID

	// ListAnimes returns one page of the catalog, filtered by params. A nil params lists the default catalog.
	ListAnimes(ctx context.Context, params *AnimesParams, opt Option) ResponsePagination

	// GetAnimeDetail returns the full catalog entry for slug.
	GetAnimeDetail(ctx context.Context, slug string, opt Option) mo.Option[AnimeDetail]

	// GetStreams returns the playable mirrors of an episode.
	GetStreams(ctx context.Context, episodeSlug string, opt Option) []Stream

	// ListGenres returns the genre taxonomy.
	ListGenres(ctx context.Context, opt Option) []Genre

	// ListCharacterTypes returns the character-type taxonomy.
	ListCharacterTypes(ctx context.Context, opt Option) []Character

	// ListAnimesByDay returns the release schedule of a single day.
	ListAnimesByDay(ctx context.Context, day Day, opt Option) []AnimeSimple

	// GetWeeklySchedule returns the release schedule of the whole week.
	GetWeeklySchedule(ctx context.Context, opt Option) Schedules

	// ListAnimesByAlphabet returns one page of the letter-indexed catalog.
	ListAnimesByAlphabet(ctx context.Context, letter string, page int, opt Option) ResponsePagination
}

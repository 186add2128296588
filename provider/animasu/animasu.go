// Package animasu implements source.Source for the Animasu catalog site.
package animasu

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anikatalog/anikatalog/event"
	"github.com/anikatalog/anikatalog/extract"
	"github.com/anikatalog/anikatalog/internal/cache"
	"github.com/anikatalog/anikatalog/log"
	"github.com/anikatalog/anikatalog/network"
	"github.com/anikatalog/anikatalog/source"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

const (
	Name           = "Animasu"
	DefaultBaseURL = "https://v0.animasu.app/"
	DefaultSort    = "update"
)

// cache operation names
const (
	opAnimes           = "animes"
	opAnimeDetail      = "anime-detail"
	opAnimeStreams     = "anime-streams"
	opGenres           = "genres"
	opCharacters       = "characters"
	opAnimesByDay      = "animes-by-jadwal"
	opScheduleAnimes   = "schedule-animes"
	opAnimesByAlphabet = "animes-by-alphabet"
)

// Animasu scrapes the Animasu site.
type Animasu struct {
	baseURL string
	cache   *cache.Store
	bus     *event.Bus
	fetcher network.Fetcher
}

// New creates the source. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, store *cache.Store, bus *event.Bus, fetcher network.Fetcher) *Animasu {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}

	return &Animasu{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		cache:   store,
		bus:     bus,
		fetcher: fetcher,
	}
}

func (*Animasu) Name() string {
	return Name
}

func (*Animasu) ID() source.ProviderID {
	return source.Animasu
}

// BaseURL returns the site root without a trailing slash.
func (a *Animasu) BaseURL() string {
	return a.baseURL
}

func (a *Animasu) ListAnimes(ctx context.Context, params *source.AnimesParams, opt source.Option) source.ResponsePagination {
	p := normalize(params)

	endpoint := a.baseURL + "/pencarian/"
	if p.Search != "" {
		endpoint = fmt.Sprintf("%s/page/%d/", a.baseURL, p.Page)
	}

	page, err := load(a, opt, a.key(opAnimes, p), func() (source.ResponsePagination, error) {
		doc, err := a.document(ctx, endpoint, searchQuery(p))
		if err != nil {
			return source.ResponsePagination{}, err
		}

		return source.ResponsePagination{
			Data:    extract.AnimeCards(doc.Selection),
			HasNext: extract.HasNext(doc.Selection),
		}, nil
	}, source.ResponsePagination.Clone)
	if err != nil {
		a.fail(opAnimes, err)
		return source.EmptyPage()
	}

	a.publishAnimes(page.Data)
	return page
}

func (a *Animasu) GetAnimeDetail(ctx context.Context, slug string, opt source.Option) mo.Option[source.AnimeDetail] {
	endpoint := fmt.Sprintf("%s/anime/%s/", a.baseURL, url.PathEscape(slug))

	detail, err := load(a, opt, a.key(opAnimeDetail, slug), func() (source.AnimeDetail, error) {
		doc, err := a.document(ctx, endpoint, nil)
		if err != nil {
			return source.AnimeDetail{}, err
		}

		return extract.Detail(doc.Selection, slug), nil
	}, source.AnimeDetail.Clone)
	if err != nil {
		a.fail(opAnimeDetail, err)
		return mo.None[source.AnimeDetail]()
	}

	a.bus.Publish(event.TopicGetAnimeDetail, event.AnimeDetailPayload{
		Provider: a.ID(),
		Anime:    detail.Clone(),
	})
	return mo.Some(detail)
}

func (a *Animasu) GetStreams(ctx context.Context, episodeSlug string, opt source.Option) []source.Stream {
	endpoint := fmt.Sprintf("%s/%s/", a.baseURL, url.PathEscape(episodeSlug))

	streams, err := load(a, opt, a.key(opAnimeStreams, episodeSlug), func() ([]source.Stream, error) {
		doc, err := a.document(ctx, endpoint, nil)
		if err != nil {
			return nil, err
		}

		return extract.Streams(doc.Selection), nil
	}, slices.Clone[[]source.Stream, source.Stream])
	if err != nil {
		a.fail(opAnimeStreams, err)
		return []source.Stream{}
	}

	return streams
}

func (a *Animasu) ListGenres(ctx context.Context, opt source.Option) []source.Genre {
	genres, err := load(a, opt, a.key(opGenres), func() ([]source.Genre, error) {
		doc, err := a.document(ctx, a.baseURL+"/kumpulan-genre-anime-lengkap/", nil)
		if err != nil {
			return nil, err
		}

		return extract.Tags(doc.Find(".genrepage a")), nil
	}, slices.Clone[[]source.Genre, source.Genre])
	if err != nil {
		a.fail(opGenres, err)
		return []source.Genre{}
	}

	return genres
}

func (a *Animasu) ListCharacterTypes(ctx context.Context, opt source.Option) []source.Character {
	characters, err := load(a, opt, a.key(opCharacters), func() ([]source.Character, error) {
		doc, err := a.document(ctx, a.baseURL+"/kumpulan-tipe-karakter-lengkap/", nil)
		if err != nil {
			return nil, err
		}

		tags := extract.Tags(doc.Find(".genrepage a"))
		characters := make([]source.Character, len(tags))
		for i, tag := range tags {
			characters[i] = source.Character(tag)
		}
		return characters, nil
	}, slices.Clone[[]source.Character, source.Character])
	if err != nil {
		a.fail(opCharacters, err)
		return []source.Character{}
	}

	return characters
}

func (a *Animasu) ListAnimesByDay(ctx context.Context, day source.Day, opt source.Option) []source.AnimeSimple {
	if !day.Valid() {
		a.fail(opAnimesByDay, fmt.Errorf("unknown day %q", day))
		return []source.AnimeSimple{}
	}

	animes, err := load(a, opt, a.key(opAnimesByDay, day), func() ([]source.AnimeSimple, error) {
		blocks, err := a.scheduleBlocks(ctx)
		if err != nil {
			return nil, err
		}

		animes := make([]source.AnimeSimple, 0)
		for _, block := range blocks {
			if block.Day == day {
				animes = append(animes, block.Animes...)
			}
		}
		return animes, nil
	}, slices.Clone[[]source.AnimeSimple, source.AnimeSimple])
	if err != nil {
		a.fail(opAnimesByDay, err)
		return []source.AnimeSimple{}
	}

	a.publishAnimes(animes)
	return animes
}

func (a *Animasu) GetWeeklySchedule(ctx context.Context, opt source.Option) source.Schedules {
	schedules, err := load(a, opt, a.key(opScheduleAnimes), func() (source.Schedules, error) {
		blocks, err := a.scheduleBlocks(ctx)
		if err != nil {
			return nil, err
		}

		schedules := source.NewSchedules()
		for _, block := range blocks {
			if !block.Day.Valid() {
				log.WithFields(log.Fields{
					"provider": a.ID(),
					"header":   block.Header,
				}).Warn("dropping schedule block with unknown day")
				continue
			}

			schedules[block.Day] = append(schedules[block.Day], block.Animes...)
		}
		return schedules, nil
	}, source.Schedules.Clone)
	if err != nil {
		a.fail(opScheduleAnimes, err)
		return source.NewSchedules()
	}

	for _, day := range source.Days() {
		a.publishAnimes(schedules[day])
	}
	return schedules
}

func (a *Animasu) ListAnimesByAlphabet(ctx context.Context, letter string, page int, opt source.Option) source.ResponsePagination {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if page < 1 {
		page = 1
	}

	endpoint := fmt.Sprintf("%s/daftar-anime/page/%d/", a.baseURL, page)

	result, err := load(a, opt, a.key(opAnimesByAlphabet, letter, page), func() (source.ResponsePagination, error) {
		doc, err := a.document(ctx, endpoint, url.Values{"show": {letter}})
		if err != nil {
			return source.ResponsePagination{}, err
		}

		return source.ResponsePagination{
			Data:    extract.IndexEntries(doc.Selection),
			HasNext: extract.HasNext(doc.Selection),
		}, nil
	}, source.ResponsePagination.Clone)
	if err != nil {
		a.fail(opAnimesByAlphabet, err)
		return source.EmptyPage()
	}

	a.publishAnimes(result.Data)
	return result
}

func (a *Animasu) key(operation string, args ...any) string {
	return cache.Key(a.ID().String(), operation, args...)
}

func (a *Animasu) scheduleBlocks(ctx context.Context) ([]extract.ScheduleBlock, error) {
	doc, err := a.document(ctx, a.baseURL+"/jadwal/", nil)
	if err != nil {
		return nil, err
	}

	return extract.ScheduleBlocks(doc.Selection), nil
}

func (a *Animasu) document(ctx context.Context, endpoint string, query url.Values) (*goquery.Document, error) {
	body, err := a.fetcher.Fetch(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", endpoint, err)
	}

	return doc, nil
}

func (a *Animasu) publishAnimes(animes []source.AnimeSimple) {
	a.bus.Publish(event.TopicGetAnimes, event.AnimesPayload{
		Provider: a.ID(),
		Animes:   slices.Clone(animes),
	})
}

func (a *Animasu) fail(operation string, err error) {
	log.WithFields(log.Fields{
		"provider":  a.ID(),
		"operation": operation,
	}).WithError(err).Error("provider operation failed")
}

// load serves key from the cache unless opt bypasses it, otherwise runs fetch
// and stores its result. Failed fetches are never stored.
// The stored value never leaves load: callers get a copy made by clone.
func load[T any](a *Animasu, opt source.Option, key string, fetch func() (T, error), clone func(T) T) (T, error) {
	if !opt.NoCache {
		if cached, ok := cache.Get[T](a.cache, key).Get(); ok {
			log.WithFields(log.Fields{"key": key}).Debug("cache hit")
			return clone(cached), nil
		}
	}

	value, err := fetch()
	if err != nil {
		return value, err
	}

	a.cache.Set(key, value)
	return clone(value), nil
}

func normalize(params *source.AnimesParams) source.AnimesParams {
	var p source.AnimesParams
	if params != nil {
		p = *params
	}

	if p.Page < 1 {
		p.Page = 1
	}

	if p.Sort == "" {
		p.Sort = DefaultSort
	}

	return p
}

func searchQuery(p source.AnimesParams) url.Values {
	return url.Values{
		"s":          {p.Search},
		"halaman":    {strconv.Itoa(p.Page)},
		"urutan":     {p.Sort},
		"genre[]":    p.GenreFilter(),
		"season[]":   p.SeasonFilter(),
		"karakter[]": p.CharacterTypeFilter(),
		"status":     {p.Status},
		"tipe":       {p.Type},
	}
}

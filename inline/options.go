package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/anikatalog/anikatalog/source"
	"github.com/anikatalog/anikatalog/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type (
	AnimePicker    func([]source.AnimeSimple) mo.Option[source.AnimeSimple]
	EpisodesFilter func([]source.Episode) ([]source.Episode, error)
)

type Options struct {
	Out            io.Writer
	Source         source.Source
	Option         source.Option
	Json           bool
	Query          string
	AnimePicker    mo.Option[AnimePicker]
	EpisodesFilter mo.Option[EpisodesFilter]
	Streams        bool
}

// ParseAnimePicker parses an anime selector: first, last, exact or an index.
func ParseAnimePicker(description, query string) (AnimePicker, error) {
	switch description {
	case "first":
		return func(animes []source.AnimeSimple) mo.Option[source.AnimeSimple] {
			if len(animes) == 0 {
				return mo.None[source.AnimeSimple]()
			}
			return mo.Some(animes[0])
		}, nil
	case "last":
		return func(animes []source.AnimeSimple) mo.Option[source.AnimeSimple] {
			if len(animes) == 0 {
				return mo.None[source.AnimeSimple]()
			}
			return mo.Some(animes[len(animes)-1])
		}, nil
	case "exact":
		return func(animes []source.AnimeSimple) mo.Option[source.AnimeSimple] {
			anime, ok := lo.Find(animes, func(a source.AnimeSimple) bool {
				return strings.EqualFold(a.Title, query)
			})
			return mo.TupleToOption(anime, ok)
		}, nil
	default:
		idx, err := strconv.ParseUint(description, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid anime picker: %s", description)
		}
		return func(animes []source.AnimeSimple) mo.Option[source.AnimeSimple] {
			if len(animes) == 0 {
				return mo.None[source.AnimeSimple]()
			}
			return mo.Some(animes[util.Min(idx, uint64(len(animes)-1))])
		}, nil
	}
}

// ParseEpisodesFilter parses an episode selector:
// first, last, all, a range "from-to", a substring "@text@" or a single index.
func ParseEpisodesFilter(description string) (EpisodesFilter, error) {
	switch description {
	case "first":
		return func(episodes []source.Episode) ([]source.Episode, error) {
			return episodes[:util.Min(1, len(episodes))], nil
		}, nil
	case "last":
		return func(episodes []source.Episode) ([]source.Episode, error) {
			return episodes[util.Max(0, len(episodes)-1):], nil
		}, nil
	case "all":
		return func(episodes []source.Episode) ([]source.Episode, error) {
			return episodes, nil
		}, nil
	}

	if from, to, ok := strings.Cut(description, "-"); ok {
		start, err1 := strconv.ParseUint(from, 10, 16)
		end, err2 := strconv.ParseUint(to, 10, 16)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("invalid episode range: %s", description)
		}

		return func(episodes []source.Episode) ([]source.Episode, error) {
			n := uint64(len(episodes))
			start, end := util.Min(start, n), util.Min(end+1, n)
			if start > end {
				return []source.Episode{}, nil
			}
			return episodes[start:end], nil
		}, nil
	}

	if len(description) >= 2 && strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(episodes []source.Episode) ([]source.Episode, error) {
			return lo.Filter(episodes, func(e source.Episode, _ int) bool {
				return strings.Contains(strings.ToLower(e.Episode), sub)
			}), nil
		}, nil
	}

	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(episodes []source.Episode) ([]source.Episode, error) {
			if uint64(len(episodes)) <= idx {
				return []source.Episode{}, nil
			}
			return []source.Episode{episodes[idx]}, nil
		}, nil
	}

	return nil, fmt.Errorf("invalid episode filter: %s", description)
}

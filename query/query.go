// Package query keeps the history of catalog search terms and suggests them back.
package query

import (
	"strings"
	"sync"

	"github.com/anikatalog/anikatalog/filesystem"
	"github.com/anikatalog/anikatalog/key"
	"github.com/anikatalog/anikatalog/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type record struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

var cacher = gache.New[map[string]*record](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var (
	mu          sync.Mutex
	suggestions = make(map[string][]*record)
)

// Remember bumps the rank of q by weight. Empty queries are ignored,
// and nothing is stored unless search.remember_queries is set.
func Remember(q string, weight int) error {
	if !viper.GetBool(key.SearchRememberQueries) {
		return nil
	}

	q = sanitize(q)
	if q == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	records, expired, err := cacher.Get()
	if expired || err != nil || records == nil {
		records = make(map[string]*record)
	}

	if r, ok := records[q]; ok {
		r.Rank += weight
	} else {
		records[q] = &record{Rank: weight, Query: q}
	}

	// ranks changed, memoized suggestions are stale
	suggestions = make(map[string][]*record)

	return cacher.Set(records)
}

// Suggest returns the best ranked past query matching q.
func Suggest(q string) mo.Option[string] {
	many := SuggestMany(q)
	if len(many) == 0 {
		return mo.None[string]()
	}
	return mo.Some(many[0])
}

// SuggestMany returns past queries fuzzy-matching q, best ranked first.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	mu.Lock()
	defer mu.Unlock()

	matched, ok := suggestions[q]
	if !ok {
		records, expired, err := cacher.Get()
		if err != nil || expired || records == nil {
			return []string{}
		}

		for _, r := range records {
			if fuzzy.MatchFold(q, r.Query) {
				matched = append(matched, r)
			}
		}

		slices.SortFunc(matched, func(a, b *record) int {
			if a.Rank != b.Rank {
				return b.Rank - a.Rank
			}
			return strings.Compare(a.Query, b.Query)
		})

		suggestions[q] = matched
	}

	return lo.Map(matched, func(r *record, _ int) string {
		return r.Query
	})
}

func sanitize(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

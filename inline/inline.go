// Package inline implements the non-interactive, scriptable mode:
// search, pick an anime, filter its episodes and optionally resolve their streams.
package inline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/anikatalog/anikatalog/log"
	"github.com/anikatalog/anikatalog/source"
)

func Run(ctx context.Context, options *Options) error {
	if options.Source == nil {
		return errors.New("source not set")
	}

	if options.Out == nil {
		options.Out = os.Stdout
	}

	page := options.Source.ListAnimes(ctx, &source.AnimesParams{Search: options.Query}, options.Option)

	selected := page.Data
	if picker, ok := options.AnimePicker.Get(); ok {
		selected = nil
		if choice, ok := picker(page.Data).Get(); ok {
			selected = []source.AnimeSimple{choice}
		}
	}

	result := make([]*Anime, 0, len(selected))
	for _, anime := range selected {
		prepared, err := prepareAnime(ctx, anime, options)
		if err != nil {
			return err
		}

		if prepared != nil {
			result = append(result, prepared)
		}
	}

	if options.Json {
		return writeJson(options.Out, result, options)
	}

	for _, anime := range result {
		for _, ep := range anime.Episodes {
			if options.Streams && len(ep.Streams) > 0 {
				for _, s := range ep.Streams {
					fmt.Fprintln(options.Out, s.URL)
				}
			} else {
				fmt.Fprintln(options.Out, ep.Slug)
			}
		}
	}

	return nil
}

func prepareAnime(ctx context.Context, anime source.AnimeSimple, options *Options) (*Anime, error) {
	detail, ok := options.Source.GetAnimeDetail(ctx, anime.Slug, options.Option).Get()
	if !ok {
		log.Warnf("no detail for %s, skipping", anime.Slug)
		return nil, nil
	}

	episodes := detail.Episodes
	if filter, ok := options.EpisodesFilter.Get(); ok {
		filtered, err := filter(episodes)
		if err != nil {
			return nil, err
		}
		episodes = filtered
	}

	prepared := &Anime{
		Source:   options.Source.Name(),
		Anime:    detail,
		Episodes: make([]Episode, len(episodes)),
	}

	for i, ep := range episodes {
		prepared.Episodes[i] = Episode{Episode: ep}
		if options.Streams {
			prepared.Episodes[i].Streams = options.Source.GetStreams(ctx, ep.Slug, options.Option)
		}
	}

	return prepared, nil
}

func writeJson(out io.Writer, result []*Anime, options *Options) error {
	data, err := asJson(result, options.Query)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

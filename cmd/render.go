package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/anikatalog/anikatalog/icon"
	"github.com/anikatalog/anikatalog/source"
	"github.com/anikatalog/anikatalog/style"
	"github.com/anikatalog/anikatalog/util"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
)

const (
	labelWidth    = 10
	synopsisWidth = 100
)

func printJson(out io.Writer, v any) error {
	return json.NewEncoder(out).Encode(v)
}

func statusBadge(s source.Status) string {
	switch s {
	case source.StatusOngoing:
		return style.Fg(style.Ongoing)(icon.Get(icon.Ongoing))
	case source.StatusComplete:
		return style.Fg(style.Complete)(icon.Get(icon.Complete))
	default:
		return style.Fg(style.Upcoming)(icon.Get(icon.Upcoming))
	}
}

func fit(s string) string {
	return truncate.StringWithTail(s, uint(util.TerminalWidth()), "…")
}

func renderAnimes(out io.Writer, animes []source.AnimeSimple) {
	if len(animes) == 0 {
		_, _ = fmt.Fprintln(out, style.Faint("no animes found"))
		return
	}

	for _, a := range animes {
		_, _ = fmt.Fprintln(out, fit(fmt.Sprintf("%s %s %s", statusBadge(a.Status), style.Bold(a.Title), style.Faint(a.Slug))))

		meta := lo.Filter([]string{a.Type, a.Episode}, func(s string, _ int) bool {
			return s != "" && s != source.Unknown
		})
		if len(meta) > 0 {
			_, _ = fmt.Fprintln(out, fit(indent.String(style.Italic(strings.Join(meta, " · ")), 3)))
		}
	}
}

func renderPage(out io.Writer, page source.ResponsePagination, current int) {
	renderAnimes(out, page.Data)

	if page.HasNext {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, style.Faint(fmt.Sprintf("more results available, use --page %d", util.Max(current, 1)+1)))
	}
}

func field(out io.Writer, label, value string) {
	if value == "" {
		return
	}

	_, _ = fmt.Fprintf(out, "%s %s\n", style.New().Width(labelWidth).Bold(true).Render(label), value)
}

func renderDetail(out io.Writer, detail source.AnimeDetail) {
	_, _ = fmt.Fprintln(out, style.Title(detail.Title))
	if detail.Synonym != "" {
		_, _ = fmt.Fprintln(out, style.Italic(detail.Synonym))
	}
	_, _ = fmt.Fprintln(out)

	field(out, "Status", statusBadge(detail.Status)+" "+util.Capitalize(strings.ToLower(detail.Status.String())))
	field(out, "Type", detail.Type)
	field(out, "Episodes", detail.Episode)
	field(out, "Aired", detail.Aired)
	field(out, "Duration", detail.Duration)
	if detail.Rating > 0 {
		field(out, "Rating", fmt.Sprintf("%.2f", detail.Rating))
	}
	field(out, "Studio", detail.Studio)
	field(out, "Season", detail.Season)
	field(out, "Author", detail.Author)
	field(out, "Genres", strings.Join(lo.Map(detail.Genres, func(g source.Genre, _ int) string {
		return g.Name
	}), ", "))
	field(out, "Updated", detail.UpdatedAt)
	field(out, "Trailer", detail.Trailer)

	if detail.Synopsis != "" {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, wordwrap.String(detail.Synopsis, util.Min(util.TerminalWidth(), synopsisWidth)))
	}

	if len(detail.Episodes) > 0 {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, style.Underline(util.Quantify(len(detail.Episodes), "episode", "episodes")))
		for _, e := range detail.Episodes {
			_, _ = fmt.Fprintf(out, "%s %s\n", e.Episode, style.Faint(e.Slug))
		}
	}

	if len(detail.Batches) > 0 {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, style.Underline("Batches"))
		for _, b := range detail.Batches {
			_, _ = fmt.Fprintf(out, "%s %s %s\n", style.Tag(style.Ink, style.Accent)(b.Resolution), b.Name, style.Faint(b.URL))
		}
	}
}

func renderStreams(out io.Writer, streams []source.Stream) {
	if len(streams) == 0 {
		_, _ = fmt.Fprintln(out, style.Faint("no streams found"))
		return
	}

	for _, s := range streams {
		_, _ = fmt.Fprintf(out, "%s %s\n", icon.Get(icon.Stream), style.Bold(s.String()))
		_, _ = fmt.Fprintln(out, indent.String(s.URL, 3))
	}
}

func renderTags[T source.Genre | source.Character](out io.Writer, tags []T) {
	for _, t := range tags {
		name, slug := tagFields(t)
		_, _ = fmt.Fprintf(out, "%s %s\n", name, style.Faint(slug))
	}
}

func tagFields[T source.Genre | source.Character](t T) (name, slug string) {
	switch v := any(t).(type) {
	case source.Genre:
		return v.Name, v.Slug
	case source.Character:
		return v.Name, v.Slug
	}
	return
}

func renderSchedule(out io.Writer, schedules source.Schedules) {
	for i, day := range source.Days() {
		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}

		animes := schedules[day]
		_, _ = fmt.Fprintf(out, "%s %s\n",
			style.Tag(style.Ink, style.Section)(util.Capitalize(string(day))),
			style.Faint(util.Quantify(len(animes), "anime", "animes")),
		)
		renderAnimes(out, animes)
	}
}

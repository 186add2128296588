package extract

import (
	"encoding/base64"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anikatalog/anikatalog/source"
	"github.com/samber/lo"
)

// ScheduleBlock is one day section of the schedule page.
type ScheduleBlock struct {
	Header string
	Day    source.Day
	Animes []source.AnimeSimple
}

// AnimeCard extracts a catalog card (".bs").
func AnimeCard(card *goquery.Selection) source.AnimeSimple {
	return source.AnimeSimple{
		Title:   text(card.Find(".tt")),
		Slug:    DetailSlug(card.Find("a").First().AttrOr("href", "")),
		Image:   Image(card.Find("img").First()),
		Type:    text(card.Find(".typez")),
		Episode: text(card.Find(".epx")),
		Status:  Status(card.Find(".sb").Text()),
	}
}

// AnimeCards extracts every catalog card under root, in document order.
func AnimeCards(root *goquery.Selection) []source.AnimeSimple {
	return each(root.Find(".bs"), AnimeCard)
}

// IndexEntry extracts an alphabet index entry (".bx").
func IndexEntry(entry *goquery.Selection) source.AnimeSimple {
	link := entry.Find(".inx h2 a").First()
	spans := entry.Find(".inx span")

	return source.AnimeSimple{
		Title:   text(link),
		Slug:    TrailingSlug(link.AttrOr("href", "")),
		Image:   Image(entry.Find(".imgx > a > img").First()),
		Type:    text(spans.Eq(3)),
		Episode: strings.Trim(strings.ReplaceAll(text(spans.Eq(4)), ", ", ""), ", "),
		Status:  StatusIn(spans.Text()),
	}
}

// IndexEntries extracts every alphabet index entry under root.
func IndexEntries(root *goquery.Selection) []source.AnimeSimple {
	return each(root.Find(".bx"), IndexEntry)
}

// Detail extracts a full anime record from a detail page.
// Fields that cannot be found fall back to their sentinel.
func Detail(page *goquery.Selection, slug string) source.AnimeDetail {
	info := page.Find(".infox").First()
	spe := info.Find(".spe span")

	return source.AnimeDetail{
		Slug:           slug,
		Title:          text(info.Find("h1[itemprop='headline']")),
		Synonym:        text(info.Find(".alter")),
		Synopsis:       text(page.Find(".sinopsis p")),
		Image:          Image(page.Find(".bigcontent .thumb img").First()),
		Rating:         Rating(page.Find(".rating strong").First().Text()),
		Author:         LabeledLink(spe, "pengarang"),
		Studio:         LabeledLink(spe, "studio"),
		Season:         LabeledLink(spe, "musim"),
		Genres:         Tags(spe.First().Find("a")),
		CharacterTypes: Characters(page),
		Status:         Status(LabeledOr(spe, "status", "")),
		Aired:          LabeledOr(spe, "rilis", source.Unknown),
		Type:           LabeledOr(spe, "jenis", source.Unknown),
		Episode:        LabeledOr(spe, "episode", source.Unknown),
		Duration:       LabeledOr(spe, "durasi", source.Unknown),
		Trailer:        strings.TrimSpace(page.Find(".trailer iframe").First().AttrOr("src", "")),
		UpdatedAt:      info.Find("time[itemprop='dateModified']").First().AttrOr("datetime", ""),
		Episodes:       Episodes(page),
		Batches:        Batches(page),
	}
}

// Episodes extracts the episode list of a detail page.
func Episodes(page *goquery.Selection) []source.Episode {
	return each(page.Find("#daftarepisode li"), func(li *goquery.Selection) source.Episode {
		a := li.Find(".lchx a").First()
		return source.Episode{
			Episode: text(a),
			Slug:    EpisodeSlug(a.AttrOr("href", "")),
		}
	})
}

// Batches extracts the bulk-download mirrors of a detail page, one per link.
func Batches(page *goquery.Selection) []source.Batch {
	batches := make([]source.Batch, 0)

	page.Find(".soraddlx .soraurlx").Each(func(_ int, row *goquery.Selection) {
		resolution := text(row.Find("strong"))
		row.Find("a").Each(func(_ int, a *goquery.Selection) {
			batches = append(batches, source.Batch{
				Name:       text(a),
				Resolution: resolution,
				URL:        a.AttrOr("href", ""),
			})
		})
	})

	return batches
}

// Characters extracts the character-type tags of a detail page.
// A page without the block yields an empty list.
func Characters(page *goquery.Selection) []source.Character {
	return lo.Map(Tags(page.Find("#tikar_shw a")), func(g source.Genre, _ int) source.Character {
		return source.Character(g)
	})
}

// Tags extracts name and slug pairs from tag links.
func Tags(links *goquery.Selection) []source.Genre {
	return each(links, func(a *goquery.Selection) source.Genre {
		return source.Genre{
			Name: text(a),
			Slug: TagSlug(a.AttrOr("href", "")),
		}
	})
}

// Streams extracts the mirrors of an episode page.
// Each option value is a base64 encoded embed fragment; fragments that do not decode are skipped.
func Streams(page *goquery.Selection) []source.Stream {
	streams := make([]source.Stream, 0)

	page.Find(".mirror option").Each(func(_ int, option *goquery.Selection) {
		value := strings.TrimSpace(option.AttrOr("value", ""))
		if value == "" {
			return
		}

		url, ok := embedURL(value)
		if !ok {
			return
		}

		streams = append(streams, source.Stream{
			Name: text(option),
			URL:  url,
		})
	})

	return streams
}

func embedURL(encoded string) (string, bool) {
	fragment, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		fragment, err = base64.RawStdEncoding.DecodeString(encoded)
		if err != nil {
			return "", false
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<div>" + string(fragment) + "</div>"))
	if err != nil {
		return "", false
	}

	return strings.TrimSpace(doc.Find("iframe").First().AttrOr("src", "")), true
}

// ScheduleBlocks extracts the day sections of the schedule page in document order.
func ScheduleBlocks(page *goquery.Selection) []ScheduleBlock {
	return each(page.Find(".bixbox"), func(block *goquery.Selection) ScheduleBlock {
		header := text(block.Find(".releases h3 span"))
		return ScheduleBlock{
			Header: header,
			Day:    Day(header),
			Animes: AnimeCards(block),
		}
	})
}

func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

func each[T any](s *goquery.Selection, fn func(*goquery.Selection) T) []T {
	items := make([]T, 0, s.Length())
	s.Each(func(_ int, item *goquery.Selection) {
		items = append(items, fn(item))
	})
	return items
}

package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/anikatalog/anikatalog/source"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type stubSource struct {
	animes  []source.AnimeSimple
	details map[string]source.AnimeDetail
	streams map[string][]source.Stream
}

func (*stubSource) Name() string          { return "Stub" }
func (*stubSource) ID() source.ProviderID { return "stub" }

func (s *stubSource) ListAnimes(context.Context, *source.AnimesParams, source.Option) source.ResponsePagination {
	return source.ResponsePagination{Data: s.animes}
}

func (s *stubSource) GetAnimeDetail(_ context.Context, slug string, _ source.Option) mo.Option[source.AnimeDetail] {
	detail, ok := s.details[slug]
	return mo.TupleToOption(detail, ok)
}

func (s *stubSource) GetStreams(_ context.Context, slug string, _ source.Option) []source.Stream {
	return s.streams[slug]
}

func (*stubSource) ListGenres(context.Context, source.Option) []source.Genre { return nil }

func (*stubSource) ListCharacterTypes(context.Context, source.Option) []source.Character { return nil }

func (*stubSource) ListAnimesByDay(context.Context, source.Day, source.Option) []source.AnimeSimple {
	return nil
}

func (*stubSource) GetWeeklySchedule(context.Context, source.Option) source.Schedules {
	return source.NewSchedules()
}

func (*stubSource) ListAnimesByAlphabet(context.Context, string, int, source.Option) source.ResponsePagination {
	return source.EmptyPage()
}

func newStub() *stubSource {
	return &stubSource{
		animes: []source.AnimeSimple{
			{Title: "Bleach", Slug: "bleach"},
			{Title: "Bleach: Sennen Kessen-hen", Slug: "bleach-tybw"},
		},
		details: map[string]source.AnimeDetail{
			"bleach": {
				Slug:  "bleach",
				Title: "Bleach",
				Episodes: []source.Episode{
					{Episode: "Episode 2", Slug: "bleach-2"},
					{Episode: "Episode 1", Slug: "bleach-1"},
				},
			},
		},
		streams: map[string][]source.Stream{
			"bleach-1": {{Name: "Server 1", URL: "https://embed/1"}},
		},
	}
}

func TestWriteJson(t *testing.T) {
	Convey("writeJson", t, func() {
		Convey("Should produce valid JSON for an empty result", func() {
			var buf bytes.Buffer
			err := writeJson(&buf, nil, &Options{Query: "test", Json: true})
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Query, ShouldEqual, "test")
			So(output.Result, ShouldNotBeNil)
			So(output.Result, ShouldHaveLength, 0)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a source", t, func() {
		var buf bytes.Buffer
		options := &Options{Out: &buf, Source: newStub(), Query: "bleach"}

		Convey("Without a source Run fails", func() {
			So(Run(context.Background(), &Options{}), ShouldNotBeNil)
		})

		Convey("Picking the first anime prints its episode slugs", func() {
			options.AnimePicker = mo.Some(mustPicker(ParseAnimePicker("first", "")))
			So(Run(context.Background(), options), ShouldBeNil)
			So(buf.String(), ShouldEqual, "bleach-2\nbleach-1\n")
		})

		Convey("Streams are printed instead of slugs when requested", func() {
			options.AnimePicker = mo.Some(mustPicker(ParseAnimePicker("exact", "BLEACH")))
			options.EpisodesFilter = mo.Some(mustFilter(ParseEpisodesFilter("last")))
			options.Streams = true
			So(Run(context.Background(), options), ShouldBeNil)
			So(buf.String(), ShouldEqual, "https://embed/1\n")
		})

		Convey("Animes without detail are skipped in JSON output", func() {
			options.Json = true
			So(Run(context.Background(), options), ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Result, ShouldHaveLength, 1)
			So(output.Result[0].Source, ShouldEqual, "Stub")
			So(output.Result[0].Episodes, ShouldHaveLength, 2)
		})
	})
}

func TestParseEpisodesFilter(t *testing.T) {
	episodes := []source.Episode{
		{Episode: "Episode 1", Slug: "e1"},
		{Episode: "Episode 2", Slug: "e2"},
		{Episode: "Episode 3 END", Slug: "e3"},
	}

	apply := func(description string) []source.Episode {
		f, err := ParseEpisodesFilter(description)
		So(err, ShouldBeNil)
		out, err := f(episodes)
		So(err, ShouldBeNil)
		return out
	}

	Convey("ParseEpisodesFilter", t, func() {
		So(apply("first"), ShouldResemble, episodes[:1])
		So(apply("last"), ShouldResemble, episodes[2:])
		So(apply("all"), ShouldResemble, episodes)
		So(apply("1-2"), ShouldResemble, episodes[1:3])
		So(apply("2-9"), ShouldResemble, episodes[2:])
		So(apply("@end@"), ShouldResemble, episodes[2:])
		So(apply("7"), ShouldBeEmpty)

		_, err := ParseEpisodesFilter("a-b")
		So(err, ShouldNotBeNil)
		_, err = ParseEpisodesFilter("nope")
		So(err, ShouldNotBeNil)
	})
}

func TestParseAnimePicker(t *testing.T) {
	animes := newStub().animes

	Convey("ParseAnimePicker", t, func() {
		So(mustPicker(ParseAnimePicker("last", ""))(animes).MustGet().Slug, ShouldEqual, "bleach-tybw")
		So(mustPicker(ParseAnimePicker("9", ""))(animes).MustGet().Slug, ShouldEqual, "bleach-tybw")
		So(mustPicker(ParseAnimePicker("exact", "naruto"))(animes).IsAbsent(), ShouldBeTrue)
		So(mustPicker(ParseAnimePicker("first", ""))(nil).IsAbsent(), ShouldBeTrue)

		_, err := ParseAnimePicker("random", "")
		So(err, ShouldNotBeNil)
	})
}

func mustPicker(picker AnimePicker, err error) AnimePicker {
	if err != nil {
		panic(err)
	}
	return picker
}

func mustFilter(f EpisodesFilter, err error) EpisodesFilter {
	if err != nil {
		panic(err)
	}
	return f
}

package animasu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/anikatalog/anikatalog/event"
	"github.com/anikatalog/anikatalog/internal/cache"
	"github.com/anikatalog/anikatalog/network"
	"github.com/anikatalog/anikatalog/source"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type site struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []*url.URL
	fail     bool
}

func newSite(t *testing.T) *site {
	s := &site{}

	routes := map[string]string{
		"/pencarian/":                      "list.html",
		"/page/2/":                         "search.html",
		"/anime/frieren/":                  "detail.html",
		"/nonton-frieren-episode-1/":       "episode.html",
		"/kumpulan-genre-anime-lengkap/":   "genres.html",
		"/kumpulan-tipe-karakter-lengkap/": "characters.html",
		"/jadwal/":                         "schedule.html",
		"/daftar-anime/page/1/":            "alphabet.html",
	}

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL)
		fail := s.fail
		s.mu.Unlock()

		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		fixture, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}

		body, err := os.ReadFile(filepath.Join("testdata", fixture))
		if err != nil {
			t.Errorf("read fixture: %v", err)
			return
		}
		_, _ = w.Write(body)
	}))

	return s
}

func (s *site) hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *site) last() *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[len(s.requests)-1]
}

func (s *site) setFail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

type recorder struct {
	animes  []event.AnimesPayload
	details []event.AnimeDetailPayload
}

func record(bus *event.Bus) *recorder {
	r := &recorder{}
	event.On(bus, event.TopicGetAnimes, func(p event.AnimesPayload) error {
		r.animes = append(r.animes, p)
		return nil
	})
	event.On(bus, event.TopicGetAnimeDetail, func(p event.AnimeDetailPayload) error {
		r.details = append(r.details, p)
		return nil
	})
	return r
}

func TestAnimasu(t *testing.T) {
	ctx := context.Background()

	Convey("Given an Animasu source backed by a fixture site", t, func() {
		site := newSite(t)
		defer site.server.Close()

		bus := event.NewBus()
		events := record(bus)
		store := cache.New(0, time.Hour)
		animasu := New(site.server.URL+"/", store, bus, network.NewFetcher(site.server.Client()))

		Convey("The base URL loses its trailing slash", func() {
			So(animasu.BaseURL(), ShouldEqual, site.server.URL)
			So(animasu.ID(), ShouldEqual, source.Animasu)
		})

		Convey("ListAnimes", func() {
			page := animasu.ListAnimes(ctx, nil, source.Option{})

			Convey("Returns the cards in document order with normalized status", func() {
				So(page.Data, ShouldHaveLength, 2)
				So(page.Data[0].Status, ShouldEqual, source.StatusComplete)
				So(page.Data[1].Status, ShouldEqual, source.StatusUpcoming)
				So(page.Data[0].Slug, ShouldEqual, "bleach")
				So(page.Data[0].Image, ShouldEqual, "https://cdn.animasu.app/bleach.jpg")
				So(page.Data[1].Image, ShouldEqual, "https://cdn.animasu.app/kaiju.jpg")
				So(page.HasNext, ShouldBeFalse)
			})

			Convey("Uses the catalog route with default page and sort", func() {
				query := site.last().Query()
				So(site.last().Path, ShouldEqual, "/pencarian/")
				So(query.Get("halaman"), ShouldEqual, "1")
				So(query.Get("urutan"), ShouldEqual, DefaultSort)
			})

			Convey("Publishes the page", func() {
				So(events.animes, ShouldHaveLength, 1)
				So(events.animes[0].Provider, ShouldEqual, source.Animasu)
				So(events.animes[0].Animes, ShouldResemble, page.Data)
			})

			Convey("A second call is served from the cache and still published", func() {
				again := animasu.ListAnimes(ctx, &source.AnimesParams{}, source.Option{})
				So(again, ShouldResemble, page)
				So(site.hits(), ShouldEqual, 1)
				So(events.animes, ShouldHaveLength, 2)
				So(events.animes[1].Animes, ShouldResemble, page.Data)
			})

			Convey("NoCache always fetches", func() {
				animasu.ListAnimes(ctx, nil, source.Option{NoCache: true})
				So(site.hits(), ShouldEqual, 2)
			})
		})

		Convey("ListAnimes with a search term uses the paged search route", func() {
			page := animasu.ListAnimes(ctx, &source.AnimesParams{
				Search: "one",
				Page:   2,
				Genre:  mo.Some("action"),
				Genres: []string{"ignored"},
			}, source.Option{})

			So(site.last().Path, ShouldEqual, "/page/2/")
			So(site.last().Query().Get("s"), ShouldEqual, "one")
			So(site.last().Query()["genre[]"], ShouldResemble, []string{"action"})
			So(page.HasNext, ShouldBeTrue)
			So(page.Data[0].Status, ShouldEqual, source.StatusOngoing)
		})

		Convey("Failures degrade and are not cached", func() {
			site.setFail(true)
			page := animasu.ListAnimes(ctx, nil, source.Option{})
			So(page, ShouldResemble, source.EmptyPage())
			So(events.animes, ShouldBeEmpty)

			site.setFail(false)
			page = animasu.ListAnimes(ctx, nil, source.Option{})
			So(page.Data, ShouldHaveLength, 2)
			So(site.hits(), ShouldEqual, 2)
		})

		Convey("GetAnimeDetail", func() {
			detail, ok := animasu.GetAnimeDetail(ctx, "frieren", source.Option{}).Get()
			So(ok, ShouldBeTrue)

			Convey("Extracts the whole record", func() {
				So(detail.Slug, ShouldEqual, "frieren")
				So(detail.Title, ShouldEqual, "Sousou no Frieren")
				So(detail.Image, ShouldEqual, "https://cdn.animasu.app/frieren.jpg")
				So(detail.Rating, ShouldAlmostEqual, 9.12)
				So(detail.Status, ShouldEqual, source.StatusComplete)
				So(detail.Type, ShouldEqual, "TV")
				So(detail.Episode, ShouldEqual, "28")
				So(detail.Season, ShouldEqual, "Fall 2023")
				So(detail.Studio, ShouldBeEmpty)
				So(detail.UpdatedAt, ShouldEqual, "2024-03-22T21:10:00+07:00")
				So(detail.CharacterTypes, ShouldHaveLength, 2)
				So(detail.Episodes, ShouldHaveLength, 2)
				So(detail.Batches, ShouldHaveLength, 3)
			})

			Convey("Publishes the detail, also from the cache", func() {
				animasu.GetAnimeDetail(ctx, "frieren", source.Option{})
				So(site.hits(), ShouldEqual, 1)
				So(events.details, ShouldHaveLength, 2)
				So(events.details[1].Anime, ShouldResemble, detail)
			})
		})

		Convey("GetAnimeDetail on a missing page is absent", func() {
			So(animasu.GetAnimeDetail(ctx, "nope", source.Option{}).IsAbsent(), ShouldBeTrue)
			So(events.details, ShouldBeEmpty)
		})

		Convey("GetStreams decodes mirrors without publishing", func() {
			streams := animasu.GetStreams(ctx, "nonton-frieren-episode-1", source.Option{})
			So(streams, ShouldResemble, []source.Stream{
				{Name: "Server 1 480p", URL: "https://embed/1"},
				{Name: "Server 2 720p", URL: "https://embed/22"},
			})
			So(events.animes, ShouldBeEmpty)
			So(events.details, ShouldBeEmpty)
		})

		Convey("GetStreams degrades to an empty list", func() {
			streams := animasu.GetStreams(ctx, "missing", source.Option{})
			So(streams, ShouldNotBeNil)
			So(streams, ShouldBeEmpty)
		})

		Convey("ListGenres and ListCharacterTypes read the taxonomy pages", func() {
			So(animasu.ListGenres(ctx, source.Option{}), ShouldResemble, []source.Genre{
				{Name: "Action", Slug: "action"},
				{Name: "Slice of Life", Slug: "slice-of-life"},
			})
			So(animasu.ListCharacterTypes(ctx, source.Option{}), ShouldResemble, []source.Character{
				{Name: "Elf", Slug: "elf"},
				{Name: "Iblis", Slug: "iblis"},
			})
		})

		Convey("GetWeeklySchedule", func() {
			schedules := animasu.GetWeeklySchedule(ctx, source.Option{})

			Convey("Populates only the days present on the page", func() {
				So(schedules, ShouldHaveLength, len(source.Days()))
				So(schedules[source.Senin], ShouldHaveLength, 2)
				So(schedules[source.Random], ShouldHaveLength, 1)
				for _, day := range []source.Day{source.Selasa, source.Rabu, source.Kamis, source.Jumat, source.Sabtu, source.Minggu} {
					So(schedules[day], ShouldNotBeNil)
					So(schedules[day], ShouldBeEmpty)
				}
			})

			Convey("Publishes once per day in canonical order", func() {
				So(events.animes, ShouldHaveLength, len(source.Days()))
				So(events.animes[0].Animes, ShouldResemble, schedules[source.Senin])
				So(events.animes[7].Animes, ShouldResemble, schedules[source.Random])
			})

			Convey("Publishes again on a cache hit", func() {
				animasu.GetWeeklySchedule(ctx, source.Option{})
				So(site.hits(), ShouldEqual, 1)
				So(events.animes, ShouldHaveLength, 2*len(source.Days()))
			})
		})

		Convey("GetWeeklySchedule degrades to an empty schedule", func() {
			site.setFail(true)
			schedules := animasu.GetWeeklySchedule(ctx, source.Option{})
			So(schedules, ShouldResemble, source.NewSchedules())
		})

		Convey("ListAnimesByDay filters the schedule page", func() {
			animes := animasu.ListAnimesByDay(ctx, source.Random, source.Option{})
			So(animes, ShouldHaveLength, 1)
			So(animes[0].Slug, ShouldEqual, "detective-conan")
			So(events.animes, ShouldHaveLength, 1)

			Convey("Each day is cached separately", func() {
				So(animasu.ListAnimesByDay(ctx, source.Senin, source.Option{}), ShouldHaveLength, 2)
				So(site.hits(), ShouldEqual, 2)
			})
		})

		Convey("ListAnimesByDay rejects unknown days without fetching", func() {
			So(animasu.ListAnimesByDay(ctx, source.Day("libur"), source.Option{}), ShouldBeEmpty)
			So(site.hits(), ShouldEqual, 0)
		})

		Convey("ListAnimesByAlphabet", func() {
			page := animasu.ListAnimesByAlphabet(ctx, "a", 0, source.Option{})

			So(site.last().Path, ShouldEqual, "/daftar-anime/page/1/")
			So(site.last().Query().Get("show"), ShouldEqual, "A")
			So(page.HasNext, ShouldBeTrue)
			So(page.Data, ShouldResemble, []source.AnimeSimple{
				{Title: "Akira", Slug: "akira", Image: "https://cdn.animasu.app/akira.jpg", Type: "Movie", Episode: "1 Episode", Status: source.StatusComplete},
				{Title: "Ao no Hako", Slug: "ao-no-hako", Image: "https://cdn.animasu.app/ao.jpg", Type: "TV", Episode: "25 Episode", Status: source.StatusOngoing},
			})
			So(events.animes, ShouldHaveLength, 1)
			So(store.Get(cache.Key("animasu", "animes-by-alphabet", "A", 1)).IsPresent(), ShouldBeTrue)
		})

		Convey("Given subscribers that edit their payloads", func() {
			const renamed = "renamed by a subscriber"

			event.On(bus, event.TopicGetAnimes, func(p event.AnimesPayload) error {
				for i := range p.Animes {
					p.Animes[i].Title = renamed
				}
				return nil
			})
			event.On(bus, event.TopicGetAnimeDetail, func(p event.AnimeDetailPayload) error {
				p.Anime.Episodes[0].Slug = renamed
				return nil
			})

			Convey("Returned and cached pages keep their titles", func() {
				first := animasu.ListAnimes(ctx, nil, source.Option{})
				second := animasu.ListAnimes(ctx, nil, source.Option{})

				So(site.hits(), ShouldEqual, 1)
				So(first.Data[0].Title, ShouldNotEqual, renamed)
				So(second, ShouldResemble, first)
			})

			Convey("Returned and cached details keep their episodes", func() {
				first := animasu.GetAnimeDetail(ctx, "frieren", source.Option{}).MustGet()
				second := animasu.GetAnimeDetail(ctx, "frieren", source.Option{}).MustGet()

				So(first.Episodes[0].Slug, ShouldNotEqual, renamed)
				So(second, ShouldResemble, first)
			})

			Convey("Returned and cached schedules keep their days", func() {
				first := animasu.GetWeeklySchedule(ctx, source.Option{})
				So(first[source.Senin][0].Title, ShouldNotEqual, renamed)

				senin := first[source.Senin][0].Title
				first[source.Senin][0].Title = "edited by the caller"
				delete(first, source.Random)

				second := animasu.GetWeeklySchedule(ctx, source.Option{})
				So(site.hits(), ShouldEqual, 1)
				So(second, ShouldHaveLength, len(source.Days()))
				So(second[source.Random], ShouldHaveLength, 1)
				So(second[source.Senin][0].Title, ShouldEqual, senin)
			})
		})

		Convey("Edits to a returned list do not reach the cache", func() {
			genres := animasu.ListGenres(ctx, source.Option{})
			So(genres, ShouldNotBeEmpty)

			name := genres[0].Name
			genres[0].Name = "edited by the caller"

			So(animasu.ListGenres(ctx, source.Option{})[0].Name, ShouldEqual, name)
			So(site.hits(), ShouldEqual, 1)
		})
	})
}

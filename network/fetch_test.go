package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/anikatalog/anikatalog/constant"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/time/rate"
)

func TestFetch(t *testing.T) {
	Convey("Given a test server", t, func() {
		var last *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			last = r
			switch r.URL.Path {
			case "/missing/":
				w.WriteHeader(http.StatusNotFound)
			case "/slow/":
				time.Sleep(200 * time.Millisecond)
				_, _ = w.Write([]byte("late"))
			default:
				_, _ = w.Write([]byte("<html>ok</html>"))
			}
		}))
		defer server.Close()

		fetcher := NewFetcher(server.Client())

		Convey("The body is returned for 2xx responses", func() {
			body, err := fetcher.Fetch(context.Background(), server.URL+"/jadwal/", nil)
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, "<html>ok</html>")
			So(last.Header.Get("User-Agent"), ShouldEqual, constant.UserAgent)
		})

		Convey("Query values are merged into the URL", func() {
			_, err := fetcher.Fetch(context.Background(), server.URL+"/daftar-anime/page/2/?show=A", url.Values{
				"genre[]": {"action", "comedy"},
			})
			So(err, ShouldBeNil)
			So(last.URL.Query().Get("show"), ShouldEqual, "A")
			So(last.URL.Query()["genre[]"], ShouldResemble, []string{"action", "comedy"})
		})

		Convey("Non-2xx responses are StatusErrors", func() {
			_, err := fetcher.Fetch(context.Background(), server.URL+"/missing/", nil)
			So(err, ShouldNotBeNil)

			var statusErr *StatusError
			So(errors.As(err, &statusErr), ShouldBeTrue)
			So(statusErr.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("A cancelled context aborts the request", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()

			_, err := fetcher.Fetch(ctx, server.URL+"/slow/", nil)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		})

		Convey("A limiter paces requests", func() {
			limited := NewFetcher(server.Client())
			limited.Limiter = rate.NewLimiter(rate.Every(time.Hour), 1)

			_, err := limited.Fetch(context.Background(), server.URL+"/jadwal/", nil)
			So(err, ShouldBeNil)

			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()

			_, err = limited.Fetch(ctx, server.URL+"/jadwal/", nil)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "rate limit")
		})

		Convey("Malformed URLs are rejected before any request", func() {
			_, err := fetcher.Fetch(context.Background(), "://bad", nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNewClient(t *testing.T) {
	Convey("NewClient", t, func() {
		Convey("A non-positive timeout falls back to the default", func() {
			So(NewClient(0, false).Timeout, ShouldEqual, DefaultTimeout)
		})

		Convey("The fingerprinting transport is only installed on request", func() {
			_, plain := NewClient(time.Second, false).Transport.(*chromeTransport)
			_, chrome := NewClient(time.Second, true).Transport.(*chromeTransport)
			So(plain, ShouldBeFalse)
			So(chrome, ShouldBeTrue)
		})

		Convey("Plain HTTP bypasses the fingerprinting dialer", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("plain"))
			}))
			defer server.Close()

			body, err := NewFetcher(NewClient(time.Second, true)).Fetch(context.Background(), server.URL, nil)
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, "plain")
		})
	})
}

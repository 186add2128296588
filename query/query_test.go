package query

import (
	"testing"

	"github.com/anikatalog/anikatalog/filesystem"
	"github.com/anikatalog/anikatalog/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
	viper.Set(key.SearchRememberQueries, true)
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		So(Remember("Frieren", 1), ShouldBeNil)
		So(Remember("  fire   force ", 10), ShouldBeNil)

		Convey("Suggestions are sorted by rank", func() {
			s := SuggestMany("fr")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
			So(s[0], ShouldEqual, "fire force")
		})

		Convey("Remembering again re-ranks memoized suggestions", func() {
			_ = SuggestMany("fri")
			So(Remember("frieren", 100), ShouldBeNil)
			So(Suggest("fr").MustGet(), ShouldEqual, "frieren")
		})

		Convey("Nothing matches an unrelated query", func() {
			So(Suggest("zzz").IsAbsent(), ShouldBeTrue)
		})

		Convey("Empty queries are not stored", func() {
			So(Remember("   ", 1), ShouldBeNil)
			So(SuggestMany(""), ShouldNotContain, "")
		})
	})

	Convey("With suggestions disabled", t, func() {
		viper.Set(key.SearchShowQuerySuggestions, false)
		defer viper.Set(key.SearchShowQuerySuggestions, true)

		So(SuggestMany("fr"), ShouldBeEmpty)
	})

	Convey("It sanitizes input", t, func() {
		So(sanitize("  ONE   Piece  "), ShouldEqual, "one piece")
	})
}

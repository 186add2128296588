package config

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/anikatalog/anikatalog/filesystem"
	"github.com/anikatalog/anikatalog/key"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.CacheTTL), ShouldEqual, 60)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("providers.animasu.base_url")
			So(result, ShouldEqual, "providers_animasu_base_url")
		})

		Convey("EnvName should add the application prefix once", func() {
			So(EnvName(key.CacheTTL), ShouldEqual, "ANIKATALOG_CACHE_TTL")
			So(EnvName("anikatalog.cache.ttl"), ShouldEqual, "ANIKATALOG_CACHE_TTL")
		})

		Convey("The legacy base address variable should override the default", func() {
			So(os.Setenv("ANIMASU_BASE_URL", "https://mirror.example/"), ShouldBeNil)
			defer os.Unsetenv("ANIMASU_BASE_URL")

			So(Setup(), ShouldBeNil)
			So(viper.GetString(key.ProvidersAnimasuBaseURL), ShouldEqual, "https://mirror.example/")
		})

		Convey("The prefixed variable should win over the legacy one", func() {
			So(os.Setenv("ANIMASU_BASE_URL", "https://legacy.example/"), ShouldBeNil)
			So(os.Setenv("ANIKATALOG_PROVIDERS_ANIMASU_BASE_URL", "https://prefixed.example/"), ShouldBeNil)
			defer os.Unsetenv("ANIMASU_BASE_URL")
			defer os.Unsetenv("ANIKATALOG_PROVIDERS_ANIMASU_BASE_URL")

			So(Setup(), ShouldBeNil)
			So(viper.GetString(key.ProvidersAnimasuBaseURL), ShouldEqual, "https://prefixed.example/")
		})
	})
}

func TestFields(t *testing.T) {
	Convey("Given the registered fields", t, func() {
		So(Setup(), ShouldBeNil)

		Convey("They are grouped by section in registration order", func() {
			sections := lo.Uniq(lo.Map(Fields(), func(f Field, _ int) string {
				return f.Section()
			}))
			So(sections, ShouldResemble, []string{"providers", "cache", "network", "events", "search", "icons", "logs", "cli"})
		})

		Convey("Int values are parsed and held to their minimum", func() {
			ttl, err := Lookup(key.CacheTTL)
			So(err, ShouldBeNil)
			So(ttl.Unit, ShouldEqual, "minutes")

			v, err := ttl.Parse([]string{"15"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 15)

			_, err = ttl.Parse([]string{"0"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "minimum of 1")

			_, err = ttl.Parse([]string{"soon"})
			So(err, ShouldNotBeNil)
		})

		Convey("An unbounded cache size is accepted", func() {
			size, _ := Lookup(key.CacheSize)
			v, err := size.Parse([]string{"0"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 0)
		})

		Convey("Providers are limited to the known ones", func() {
			providers, _ := Lookup(key.ProvidersDefault)
			_, err := providers.Parse([]string{"animasu"})
			So(err, ShouldBeNil)
			_, err = providers.Parse([]string{"nyaa"})
			So(err, ShouldNotBeNil)
		})

		Convey("Base addresses must be http(s) URLs", func() {
			base, _ := Lookup(key.ProvidersAnimasuBaseURL)
			_, err := base.Parse([]string{"https://mirror.example/"})
			So(err, ShouldBeNil)
			_, err = base.Parse([]string{"mirror.example"})
			So(err, ShouldNotBeNil)
		})

		Convey("Both spellings of the warn level are accepted", func() {
			level, _ := Lookup(key.LogsLevel)
			for _, l := range []string{"warn", "warning", "debug"} {
				_, err := level.Parse([]string{l})
				So(err, ShouldBeNil)
			}
		})

		Convey("Booleans are parsed", func() {
			fingerprint, _ := Lookup(key.NetworkTLSFingerprint)
			v, err := fingerprint.Parse([]string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)
		})

		Convey("Unknown keys suggest the closest one", func() {
			_, err := Lookup("cache.tll")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, key.CacheTTL)
		})

		Convey("Check reports invalid effective values", func() {
			So(Check(), ShouldBeEmpty)

			viper.Set(key.NetworkTimeout, 0)
			defer viper.Set(key.NetworkTimeout, 60)

			errs := Check()
			So(errs, ShouldHaveLength, 1)
			So(errs[0].Error(), ShouldContainSubstring, key.NetworkTimeout)
		})

		Convey("JSON carries the constraints and the effective value", func() {
			ttl, _ := Lookup(key.CacheTTL)
			raw, err := json.Marshal(ttl)
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, `"unit":"minutes"`)
			So(string(raw), ShouldContainSubstring, `"min":1`)
			So(string(raw), ShouldContainSubstring, `"value":60`)
			So(string(raw), ShouldContainSubstring, `"env":"ANIKATALOG_CACHE_TTL"`)
		})
	})
}

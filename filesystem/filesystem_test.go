package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})

		Convey("Should accept an arbitrary backend", func() {
			SetFs(afero.NewReadOnlyFs(afero.NewMemMapFs()))
			So(API().Name(), ShouldEqual, "ReadOnlyFilter")
			SetOsFs()
		})

		Convey("GacheFs should write through the active backend", func() {
			SetMemMapFs()
			So(GacheFs{}.MkdirAll("/tmp/gache", 0o755), ShouldBeNil)
			exists, err := API().DirExists("/tmp/gache")
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})
	})
}

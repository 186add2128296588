package util

import (
	"path/filepath"
	"testing"

	"github.com/anikatalog/anikatalog/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "anime", "animes"), ShouldEqual, "1 anime")
		So(Quantify(2, "anime", "animes"), ShouldEqual, "2 animes")
		So(Quantify(0, "anime", "animes"), ShouldEqual, "0 animes")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("senin"), ShouldEqual, "Senin")
		So(Capitalize("élan"), ShouldEqual, "Élan")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
		So(Max[int](), ShouldEqual, 0)
		So(Min("b", "a"), ShouldEqual, "a")
	})
}

func TestDelete(t *testing.T) {
	Convey("Given a directory with a file", t, func() {
		dir := filepath.Join("tmp", "cache")
		file := filepath.Join(dir, "version.json")
		So(filesystem.API().MkdirAll(dir, 0755), ShouldBeNil)
		So(filesystem.API().WriteFile(file, []byte("{}"), 0644), ShouldBeNil)

		Convey("Deleting a file keeps the directory", func() {
			So(Delete(file), ShouldBeNil)
			_, err := filesystem.API().Stat(dir)
			So(err, ShouldBeNil)
		})

		Convey("Deleting the directory removes everything", func() {
			So(Delete(dir), ShouldBeNil)
			_, err := filesystem.API().Stat(file)
			So(err, ShouldNotBeNil)
		})

		Convey("Deleting a missing path fails", func() {
			So(Delete(filepath.Join(dir, "missing")), ShouldNotBeNil)
		})
	})
}

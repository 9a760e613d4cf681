package pkg

import (
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestFileOperate(t *testing.T) {
	convey.Convey("write, check and read a file", t, func() {
		path := filepath.Join(t.TempDir(), "nested", "out.toml")
		exist, err := CheckFileExist(path)
		convey.So(err, convey.ShouldBeNil)
		convey.So(exist, convey.ShouldBeFalse)

		convey.So(WriteFileText(path, "{ a = 1 }\n"), convey.ShouldBeNil)
		exist, err = CheckFileExist(path)
		convey.So(err, convey.ShouldBeNil)
		convey.So(exist, convey.ShouldBeTrue)

		text, err := ReadFileText(path)
		convey.So(err, convey.ShouldBeNil)
		convey.So(text, convey.ShouldEqual, "{ a = 1 }\n")
	})

	convey.Convey("reading a missing file fails", t, func() {
		_, err := ReadFileText(filepath.Join(t.TempDir(), "missing"))
		convey.So(err, convey.ShouldNotBeNil)
	})
}

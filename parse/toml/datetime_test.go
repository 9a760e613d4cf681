package toml

import (
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
)

func TestDatetime(t *testing.T) {
	convey.Convey("parse and print each form", t, func() {
		for _, s := range []string{
			"1979-05-27T07:32:00Z",
			"1979-05-27T00:32:00.999999-07:00",
			"1979-05-27T07:32:00",
			"1979-05-27",
			"07:32:00.5",
		} {
			dt, err := ParseDatetime(s)
			convey.So(err, convey.ShouldBeNil)
			want := s
			if s == "07:32:00.5" {
				want = "07:32:00.500"
			}
			convey.So(dt.String(), convey.ShouldEqual, want)
		}
	})

	convey.Convey("fractions beyond nanoseconds are truncated", t, func() {
		dt, err := ParseDatetime("1979-05-27T07:32:00.1234567891")
		convey.So(err, convey.ShouldBeNil)
		convey.So(dt.Time.Nanosecond, convey.ShouldEqual, uint32(123456789))
	})

	convey.Convey("conversion to and from time.Time", t, func() {
		at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("", -5*3600))
		dt := DatetimeFromTime(at)
		convey.So(dt.String(), convey.ShouldEqual, "2024-03-01T10:00:00-05:00")
		back, err := dt.ToTime(time.UTC)
		convey.So(err, convey.ShouldBeNil)
		convey.So(back.Equal(at), convey.ShouldBeTrue)

		utc := DatetimeFromTime(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
		convey.So(utc.String(), convey.ShouldEqual, "2024-03-01T10:00:00Z")

		local, _ := ParseDatetime("2024-03-01T10:00:00")
		lt, err := local.ToTime(time.UTC)
		convey.So(err, convey.ShouldBeNil)
		convey.So(lt.Hour(), convey.ShouldEqual, 10)

		onlyTime, _ := ParseDatetime("10:00:00")
		_, err = onlyTime.ToTime(time.UTC)
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("equality compares the set fields", t, func() {
		a, _ := ParseDatetime("1979-05-27")
		b, _ := ParseDatetime("1979-05-27")
		c, _ := ParseDatetime("1979-05-27T00:00:00")
		convey.So(a.Equal(b), convey.ShouldBeTrue)
		convey.So(a.Equal(c), convey.ShouldBeFalse)
	})

	convey.Convey("leap years", t, func() {
		_, err := ParseDatetime("2024-02-29")
		convey.So(err, convey.ShouldBeNil)
		_, err = ParseDatetime("2023-02-29")
		convey.So(err, convey.ShouldNotBeNil)
	})
}

package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Given pairs of version strings", t, func() {
		Convey("A newer version should compare greater", func() {
			c, err := Compare("1.2.0", "1.1.9")
			So(err, ShouldBeNil)
			So(c, ShouldEqual, 1)
		})

		Convey("An older version should compare lesser", func() {
			c, err := Compare("0.9.1", "1.0.0")
			So(err, ShouldBeNil)
			So(c, ShouldEqual, -1)
		})

		Convey("Equal versions should compare equal, v-prefix ignored", func() {
			c, err := Compare("v0.1.0", "0.1.0")
			So(err, ShouldBeNil)
			So(c, ShouldEqual, 0)
		})

		Convey("Garbage should produce an error", func() {
			_, err := Compare("latest", "0.1.0")
			So(err, ShouldNotBeNil)
		})
	})
}

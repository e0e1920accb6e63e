package query

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"

	"github.com/zoomgrab-cli/zoomgrab/filesystem"
	"github.com/zoomgrab-cli/zoomgrab/key"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowURLSuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given URL history", t, func() {
		u1 := "https://zoom.us/rec/share/weekly-sync"
		u2 := "https://zoom.us/rec/share/all-hands"

		Convey("When remembering URLs", func() {
			err := Remember(u1, "Weekly Sync", 1)
			So(err, ShouldBeNil)
			err = Remember(u2, "All Hands", 10) // Higher weight
			So(err, ShouldBeNil)

			Convey("Then suggestions should be sorted by rank", func() {
				// Clear memory cache to force read from file
				suggestionCache = make(map[string][]*urlRecord)

				s := SuggestMany("hands")
				So(len(s), ShouldBeGreaterThanOrEqualTo, 1)
				So(s[0], ShouldEqual, u2)
			})

			Convey("Matching by title fragment should work too", func() {
				suggestionCache = make(map[string][]*urlRecord)

				s := SuggestMany("weekly")
				So(s, ShouldContain, u1)
			})

			Convey("It sanitizes input", func() {
				So(sanitize("  HTTPS://ZOOM.US/REC  "), ShouldEqual, "https://zoom.us/rec")
			})

			Convey("Share-link casing should survive the round trip", func() {
				mixed := "https://zoom.us/rec/share/AbC123XyZ"
				So(Remember(mixed, "Board Review", 1), ShouldBeNil)

				suggestionCache = make(map[string][]*urlRecord)

				s := SuggestMany("abc123")
				So(s, ShouldContain, mixed)
			})
		})
	})
}

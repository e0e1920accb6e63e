package transcript

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestToParagraph(t *testing.T) {
	Convey("ToParagraph", t, func() {
		Convey("Should suppress adjacent duplicates only", func() {
			cues := []Cue{
				{Timestamp: "t1", Text: "Hi"},
				{Timestamp: "t2", Text: "Hi"},
				{Timestamp: "t3", Text: "Bye"},
			}
			So(ToParagraph(cues), ShouldEqual, "Hi Bye")
		})

		Convey("Should keep non-adjacent repeats", func() {
			cues := []Cue{
				{Timestamp: "t1", Text: "Hi"},
				{Timestamp: "t2", Text: "Bye"},
				{Timestamp: "t3", Text: "Hi"},
			}
			So(ToParagraph(cues), ShouldEqual, "Hi Bye Hi")
		})

		Convey("Should return empty string for no cues", func() {
			So(ToParagraph(nil), ShouldEqual, "")
		})

		Convey("Should be idempotent over its own output", func() {
			cues := []Cue{
				{Timestamp: "t1", Text: "Hello there"},
				{Timestamp: "t2", Text: "general"},
			}
			first := ToParagraph(cues)
			again := ToParagraph([]Cue{{Timestamp: "t1", Text: first}})
			So(again, ShouldEqual, first)
		})
	})
}

func TestToTimestampedText(t *testing.T) {
	Convey("ToTimestampedText", t, func() {
		Convey("Should render single cue with trailing newline", func() {
			out := ToTimestampedText([]Cue{{Timestamp: "t1", Text: "Hi"}})
			So(out, ShouldEqual, "t1\nHi\n")
		})

		Convey("Should separate blocks with one blank line", func() {
			out := ToTimestampedText([]Cue{
				{Timestamp: "t1", Text: "Hi"},
				{Timestamp: "t2", Text: "Bye"},
			})
			So(out, ShouldEqual, "t1\nHi\n\nt2\nBye\n")
		})

		Convey("Should yield a single newline for empty input", func() {
			So(ToTimestampedText(nil), ShouldEqual, "\n")
		})
	})
}

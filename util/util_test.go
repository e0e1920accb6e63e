package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("file:name?.txt"), ShouldEqual, "file_name_.txt")
		})
		Convey("Should collapse underscores", func() {
			So(SanitizeFilename("file__name.txt"), ShouldEqual, "file_name.txt")
		})
		Convey("Should trim separators", func() {
			So(SanitizeFilename("-file-name-"), ShouldEqual, "file-name")
		})
	})
}

func TestSanitizeTitle(t *testing.T) {
	Convey("SanitizeTitle", t, func() {
		Convey("Should replace separators and spaces", func() {
			So(SanitizeTitle("Weekly Sync: Q3/Q4 Review"), ShouldEqual, "Weekly_Sync-_Q3-Q4_Review")
		})
		Convey("Should trim surrounding whitespace first", func() {
			So(SanitizeTitle("  Standup  "), ShouldEqual, "Standup")
		})
		Convey("Should pass through already-safe names", func() {
			So(SanitizeTitle("Recording_01"), ShouldEqual, "Recording_01")
		})
	})
}

func TestTruncate(t *testing.T) {
	Convey("Truncate", t, func() {
		So(Truncate("hello", 3), ShouldEqual, "hel")
		So(Truncate("hello", 10), ShouldEqual, "hello")
		So(Truncate("hello", 0), ShouldEqual, "")
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "file", "files"), ShouldEqual, "1 file")
		So(Quantify(2, "file", "files"), ShouldEqual, "2 files")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
	})
}

package scraper

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func jsonExchange(url, body string) Exchange {
	return Exchange{
		URL:         url,
		ContentType: "application/json;charset=utf-8",
		Body:        func() (string, error) { return body, nil },
	}
}

func TestClassify(t *testing.T) {
	Convey("Classify", t, func() {
		c := &Classifier{}
		res := NewMediaResult()

		Convey("Direct URL heuristics", func() {
			Convey("Adopts an mp4 URL verbatim", func() {
				c.Classify(Exchange{URL: "https://ssrweb.zoom.us/rec/clip.MP4?tok=1"}, res)
				So(res.VideoURL().MustGet(), ShouldEqual, "https://ssrweb.zoom.us/rec/clip.MP4?tok=1")
			})

			Convey("Rejects thumbnail and avatar assets", func() {
				c.Classify(Exchange{URL: "https://zoom.us/thumbnail/clip.mp4"}, res)
				c.Classify(Exchange{URL: "https://zoom.us/avatar/me.mp4"}, res)
				So(res.VideoURL().IsAbsent(), ShouldBeTrue)
			})

			Convey("Adopts a vtt URL as transcript", func() {
				c.Classify(Exchange{URL: "https://zoom.us/rec/cc.vtt"}, res)
				So(res.TranscriptURL().MustGet(), ShouldEqual, "https://zoom.us/rec/cc.vtt")
			})
		})

		Convey("Content type indicating a media stream adopts the URL", func() {
			c.Classify(Exchange{URL: "https://zoom.us/rec/stream", ContentType: "video/mp4"}, res)
			So(res.VideoURL().MustGet(), ShouldEqual, "https://zoom.us/rec/stream")
		})

		Convey("Non-structured content types never read the body", func() {
			read := false
			c.Classify(Exchange{
				URL:         "https://zoom.us/page",
				ContentType: "text/html",
				Body:        func() (string, error) { read = true; return "", nil },
			}, res)
			So(read, ShouldBeFalse)
		})

		Convey("Failed body reads contribute nothing", func() {
			c.Classify(Exchange{
				URL:         "https://zoom.us/api",
				ContentType: "application/json",
				Body:        func() (string, error) { return "", errors.New("stream gone") },
			}, res)
			So(res.VideoURL().IsAbsent(), ShouldBeTrue)
		})

		Convey("Unparseable structured bodies contribute nothing", func() {
			c.Classify(jsonExchange("https://zoom.us/api", `{"broken":`), res)
			So(res.VideoURL().IsAbsent(), ShouldBeTrue)
			So(res.TranscriptURL().IsAbsent(), ShouldBeTrue)
		})

		Convey("Ordered key scan inside the result envelope", func() {
			c.Classify(jsonExchange("https://zoom.us/nws/recording/play/info",
				`{"result":{"viewMp4Url":"/rec/123.mp4","viewVttUrl":"/rec/123.vtt"}}`), res)
			So(res.VideoURL().MustGet(), ShouldEqual, "https://www.zoom.us/rec/123.mp4")
			So(res.TranscriptURL().MustGet(), ShouldEqual, "https://www.zoom.us/rec/123.vtt")
		})

		Convey("Payloads without the envelope are used directly", func() {
			c.Classify(jsonExchange("https://zoom.us/api",
				`{"mp4Url":"http://x/plain.mp4"}`), res)
			So(res.VideoURL().MustGet(), ShouldEqual, "http://x/plain.mp4")
		})

		Convey("recording_files scan matches type labels case-insensitively", func() {
			c.Classify(jsonExchange("https://zoom.us/api",
				`{"recording_files":[
					{"file_type":"mp4","download_url":"http://x/a.mp4"},
					{"file_type":"vtt","download_url":"http://x/a.vtt"}
				]}`), res)
			So(res.VideoURL().MustGet(), ShouldEqual, "http://x/a.mp4")
			So(res.TranscriptURL().MustGet(), ShouldEqual, "http://x/a.vtt")
		})

		Convey("recording_files prefers download_url over play_url", func() {
			c.Classify(jsonExchange("https://zoom.us/api",
				`{"recording_files":[{"file_type":"MP4","download_url":"http://x/dl.mp4","play_url":"http://x/play.mp4"}]}`), res)
			So(res.VideoURL().MustGet(), ShouldEqual, "http://x/dl.mp4")
		})

		Convey("First-wins across multiple exchanges", func() {
			c.Classify(jsonExchange("https://zoom.us/api", `{"mp4Url":"http://x/first.mp4"}`), res)
			c.Classify(jsonExchange("https://zoom.us/api", `{"mp4Url":"http://x/second.mp4"}`), res)
			So(res.VideoURL().MustGet(), ShouldEqual, "http://x/first.mp4")
		})

		Convey("Meeting metadata updates topic, start time, and title", func() {
			c.Classify(jsonExchange("https://zoom.us/api",
				`{"result":{"meet":{"topic":"Weekly Sync","meetingStartTimeStr":"Aug 30, 2026 10:00 AM"}}}`), res)
			So(res.Topic().MustGet(), ShouldEqual, "Weekly Sync")
			So(res.StartTime().MustGet(), ShouldEqual, "Aug 30, 2026 10:00 AM")
			So(res.Title(), ShouldEqual, "Weekly_Sync")
		})

		Convey("Raw-body fallback", func() {
			Convey("Finds streaming-path video URLs in unstructured fields", func() {
				c.Classify(jsonExchange("https://zoom.us/api",
					`{"misc":"see https://ssrweb.zoom.us/replay/take1 for the stream"}`), res)
				So(res.VideoURL().MustGet(), ShouldEqual, "https://ssrweb.zoom.us/replay/take1")
			})

			Convey("Finds closed-caption URLs", func() {
				c.Classify(jsonExchange("https://zoom.us/api",
					`{"misc":"captions at https://zoom.us/closedcaption/dl/42"}`), res)
				So(res.TranscriptURL().MustGet(), ShouldEqual, "https://zoom.us/closedcaption/dl/42")
			})

			Convey("Skips thumbnails even in the fallback pass", func() {
				c.Classify(jsonExchange("https://zoom.us/api",
					`{"a":"https://cdn.zoom.us/thumbnail/x.mp4","b":"https://cdn.zoom.us/real/x.mp4"}`), res)
				So(res.VideoURL().MustGet(), ShouldEqual, "https://cdn.zoom.us/real/x.mp4")
			})
		})

		Convey("Diagnostic note fires for recognized recording API endpoints", func() {
			var noted bool
			c := &Classifier{Note: func(string, ...any) { noted = true }}
			c.Classify(jsonExchange("https://zoom.us/nws/recording/info", `{}`), res)
			So(noted, ShouldBeTrue)
		})
	})
}

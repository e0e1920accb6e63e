package network

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"

	"github.com/zoomgrab-cli/zoomgrab/constant"
	"github.com/zoomgrab-cli/zoomgrab/filesystem"
	"github.com/zoomgrab-cli/zoomgrab/key"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.DownloadRetries, 2)
	viper.Set(key.DownloadTimeout, 5)
}

func TestDownloadFile(t *testing.T) {
	Convey("Given a server holding a media file", t, func() {
		payload := []byte("not really an mp4 but close enough")

		// Assertions cannot run on the server goroutine, so the handler only
		// records what it saw.
		var gotUserAgent, gotReferer, gotCookie string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserAgent = r.Header.Get("User-Agent")
			gotReferer = r.Header.Get("Referer")
			if cookie, err := r.Cookie("_zm_ssid"); err == nil {
				gotCookie = cookie.Value
			}

			w.Header().Set("Content-Length", fmt.Sprint(len(payload)))
			_, _ = w.Write(payload)
		}))
		defer server.Close()

		Convey("When downloading it to the filesystem", func() {
			var lastWritten, lastTotal int64
			err := DownloadFile(server.URL+"/rec/play.mp4", "/out/play.mp4", map[string]string{
				"_zm_ssid": "abc123",
			}, func(written, total int64) {
				lastWritten, lastTotal = written, total
			})

			Convey("The browser identity and session should have been sent", func() {
				So(err, ShouldBeNil)
				So(gotUserAgent, ShouldEqual, constant.UserAgent)
				So(gotReferer, ShouldEqual, constant.ZoomReferer)
				So(gotCookie, ShouldEqual, "abc123")
			})

			Convey("The file contents and progress should match", func() {
				So(err, ShouldBeNil)

				data, readErr := filesystem.API().ReadFile("/out/play.mp4")
				So(readErr, ShouldBeNil)
				So(string(data), ShouldEqual, string(payload))

				So(lastWritten, ShouldEqual, int64(len(payload)))
				So(lastTotal, ShouldEqual, int64(len(payload)))
			})
		})
	})

	Convey("Given a server that fails once before succeeding", t, func() {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte("second try"))
		}))
		defer server.Close()

		Convey("The download should recover on retry", func() {
			err := DownloadFile(server.URL, "/out/retry.bin", nil, nil)
			So(err, ShouldBeNil)
			So(calls.Load(), ShouldEqual, 2)

			data, readErr := filesystem.API().ReadFile("/out/retry.bin")
			So(readErr, ShouldBeNil)
			So(string(data), ShouldEqual, "second try")
		})
	})

	Convey("Given a server that rejects the session", t, func() {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		Convey("The download should fail without retrying", func() {
			err := DownloadFile(server.URL, "/out/denied.bin", nil, nil)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "login")
			So(calls.Load(), ShouldEqual, 1)
		})
	})
}

func TestFetchText(t *testing.T) {
	Convey("Given a server holding a caption file", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nHello\n"))
		}))
		defer server.Close()

		Convey("FetchText should return its body", func() {
			body, err := FetchText(server.URL+"/transcript.vtt", nil)
			So(err, ShouldBeNil)
			So(body, ShouldStartWith, "WEBVTT")
			So(body, ShouldContainSubstring, "Hello")
		})
	})
}

package scraper

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

var errNavigation = errors.New("net::ERR_TIMED_OUT")

// stubElement backs the DOM probe fallbacks in tests.
type stubElement struct {
	attrs map[string]string
}

func (e *stubElement) Attribute(name string) (string, bool) {
	val, ok := e.attrs[name]
	return val, ok
}

// stubPage is a scripted page-automation capability.
type stubPage struct {
	elements map[string]*stubElement
	title    string
	titleErr error
	navErr   error

	// exchanges are delivered to the subscriber on the first poll tick,
	// simulating traffic arriving while the session sleeps.
	exchanges []Exchange
	onResp    func(Exchange)
	delivered bool

	closed bool
}

func (p *stubPage) Navigate(string, time.Duration) error { return p.navErr }

func (p *stubPage) OnResponse(fn func(Exchange)) { p.onResp = fn }

func (p *stubPage) QueryFirst(selector string) (Element, bool) {
	el, ok := p.elements[selector]
	return el, ok
}

func (p *stubPage) Title() (string, error) { return p.title, p.titleErr }

func (p *stubPage) Close() error {
	p.closed = true
	return nil
}

func (p *stubPage) deliver() {
	if p.delivered || p.onResp == nil {
		return
	}
	p.delivered = true
	for _, ex := range p.exchanges {
		p.onResp(ex)
	}
}

// newTestSession returns a session with shrunk timings and a sleep that
// pumps queued exchanges instead of blocking.
func newTestSession(page *stubPage) *Session {
	return &Session{
		Classifier:   &Classifier{},
		PollInterval: time.Millisecond,
		MaxWait:      20 * time.Millisecond,
		Grace:        time.Millisecond,
		NavTimeout:   time.Millisecond,
		Sleep:        func(time.Duration) { page.deliver() },
	}
}

func TestExtract(t *testing.T) {
	Convey("Extract", t, func() {
		Convey("Terminates with both URLs unset when nothing matches", func() {
			page := &stubPage{}
			res := newTestSession(page).Extract(page, "https://zoom.us/rec/share/abc")

			So(res.VideoURL().IsAbsent(), ShouldBeTrue)
			So(res.TranscriptURL().IsAbsent(), ShouldBeTrue)
			So(res.Title(), ShouldEqual, DefaultTitle)
			So(page.closed, ShouldBeTrue)
		})

		Convey("Stops polling early once the video URL is intercepted", func() {
			page := &stubPage{exchanges: []Exchange{
				{URL: "https://ssrweb.zoom.us/rec/take.mp4"},
				{URL: "https://zoom.us/rec/take.vtt"},
			}}
			res := newTestSession(page).Extract(page, "https://zoom.us/rec/share/abc")

			So(res.VideoURL().MustGet(), ShouldEqual, "https://ssrweb.zoom.us/rec/take.mp4")
			So(res.TranscriptURL().MustGet(), ShouldEqual, "https://zoom.us/rec/take.vtt")
		})

		Convey("A zero-value session picks up every timing default", func() {
			page := &stubPage{exchanges: []Exchange{
				{URL: "https://ssrweb.zoom.us/rec/take.mp4"},
			}}
			s := &Session{Sleep: func(time.Duration) { page.deliver() }}
			res := s.Extract(page, "https://zoom.us/rec/share/abc")

			So(s.PollInterval, ShouldEqual, 3*time.Second)
			So(s.MaxWait, ShouldEqual, 300*time.Second)
			So(s.Grace, ShouldEqual, 2*time.Second)
			So(s.NavTimeout, ShouldEqual, 60*time.Second)
			So(res.VideoURL().IsPresent(), ShouldBeTrue)
		})

		Convey("Navigation failure is non-fatal and interception still wins", func() {
			page := &stubPage{
				navErr:    errNavigation,
				exchanges: []Exchange{{URL: "https://ssrweb.zoom.us/rec/take.mp4"}},
			}
			res := newTestSession(page).Extract(page, "https://zoom.us/rec/share/abc")
			So(res.VideoURL().IsPresent(), ShouldBeTrue)
		})

		Convey("DOM fallback", func() {
			Convey("Takes the first video element src", func() {
				page := &stubPage{elements: map[string]*stubElement{
					"video source": {attrs: map[string]string{"src": "https://cdn.zoom.us/v.mp4"}},
				}}
				res := newTestSession(page).Extract(page, "https://zoom.us/rec/share/abc")
				So(res.VideoURL().MustGet(), ShouldEqual, "https://cdn.zoom.us/v.mp4")
			})

			Convey("Rejects transient blob references", func() {
				page := &stubPage{elements: map[string]*stubElement{
					"video source": {attrs: map[string]string{"src": "blob:https://zoom.us/114-aa"}},
				}}
				res := newTestSession(page).Extract(page, "https://zoom.us/rec/share/abc")
				So(res.VideoURL().IsAbsent(), ShouldBeTrue)
			})

			Convey("Probes the generic video selector second", func() {
				page := &stubPage{elements: map[string]*stubElement{
					"video": {attrs: map[string]string{"src": "https://cdn.zoom.us/v2.mp4"}},
				}}
				res := newTestSession(page).Extract(page, "https://zoom.us/rec/share/abc")
				So(res.VideoURL().MustGet(), ShouldEqual, "https://cdn.zoom.us/v2.mp4")
			})

			Convey("Takes a caption track src for the transcript", func() {
				page := &stubPage{elements: map[string]*stubElement{
					"track": {attrs: map[string]string{"src": "https://cdn.zoom.us/cc.vtt"}},
				}}
				res := newTestSession(page).Extract(page, "https://zoom.us/rec/share/abc")
				So(res.TranscriptURL().MustGet(), ShouldEqual, "https://cdn.zoom.us/cc.vtt")
			})
		})

		Convey("Title fallback", func() {
			Convey("Sanitizes and strips the platform branding suffix", func() {
				page := &stubPage{title: "Weekly Sync - Zoom"}
				res := newTestSession(page).Extract(page, "https://zoom.us/rec/share/abc")
				So(res.Title(), ShouldEqual, "Weekly_Sync")
			})

			Convey("Rejects sign-in page titles", func() {
				page := &stubPage{title: "Sign In - Zoom"}
				res := newTestSession(page).Extract(page, "https://zoom.us/rec/share/abc")
				So(res.Title(), ShouldEqual, DefaultTitle)
			})

			Convey("Topic metadata takes precedence over the page title", func() {
				page := &stubPage{
					title: "Some Page - Zoom",
					exchanges: []Exchange{jsonExchange("https://zoom.us/nws/recording/info",
						`{"result":{"meet":{"topic":"Planning"},"viewMp4Url":"/rec/p.mp4"}}`)},
				}
				res := newTestSession(page).Extract(page, "https://zoom.us/rec/share/abc")
				So(res.Title(), ShouldEqual, "Planning")
			})
		})

		Convey("External interruption returns the partial result", func() {
			done := make(chan struct{})
			close(done)

			page := &stubPage{exchanges: []Exchange{{URL: "https://zoom.us/rec/cc.vtt"}}}
			s := newTestSession(page)
			s.Done = done
			res := s.Extract(page, "https://zoom.us/rec/share/abc")

			So(res.TranscriptURL().IsPresent(), ShouldBeTrue)
			So(page.closed, ShouldBeTrue)
		})
	})
}

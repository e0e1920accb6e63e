package scraper

import (
	"regexp"
	"strings"
	"time"

	"github.com/zoomgrab-cli/zoomgrab/log"
	"github.com/zoomgrab-cli/zoomgrab/util"
)

// Element is a matched DOM node exposing attribute access.
type Element interface {
	Attribute(name string) (string, bool)
}

// Page is the injected page-automation capability the session drives.
// Implementations deliver every observed network exchange to the subscriber
// registered via OnResponse for the lifetime of the page.
type Page interface {
	Navigate(url string, timeout time.Duration) error
	OnResponse(fn func(Exchange))
	QueryFirst(selector string) (Element, bool)
	Title() (string, error)
	Close() error
}

// Session drives one timed extraction run against a recording page.
// All timing knobs are injectable so tests can shrink them; zero values fall
// back to the documented defaults.
type Session struct {
	Classifier *Classifier

	PollInterval time.Duration // delay between polling checks (default 3s)
	MaxWait      time.Duration // upper bound for polling (default 300s)
	Grace        time.Duration // settle delay once the video URL appears (default 2s)
	NavTimeout   time.Duration // bound for the initial navigation (default 60s)

	// Sleep suspends the calling flow, cooperatively yielding so queued
	// network events get dispatched between checks. Defaults to time.Sleep.
	Sleep func(time.Duration)

	// Done optionally interrupts the polling loop early; the partial result
	// accumulated so far is returned.
	Done <-chan struct{}

	// Note receives human-readable progress diagnostics. Optional.
	Note func(format string, args ...any)
}

// Polling checkpoints for progress notes.
const progressCheckpoint = 15 * time.Second

// brandingSuffixRe strips the trailing platform branding from page titles
// already passed through title sanitization.
var brandingSuffixRe = regexp.MustCompile(`(?i)_*-_*Zoom$`)

// NewSession returns a session with production timing defaults.
func NewSession() *Session {
	return &Session{
		Classifier:   &Classifier{},
		PollInterval: 3 * time.Second,
		MaxWait:      300 * time.Second,
		Grace:        2 * time.Second,
		NavTimeout:   60 * time.Second,
		Sleep:        time.Sleep,
	}
}

func (s *Session) note(format string, args ...any) {
	if s.Note != nil {
		s.Note(format, args...)
	}
}

func (s *Session) sleep(d time.Duration) {
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}

// interrupted reports whether the external done signal fired.
func (s *Session) interrupted() bool {
	if s.Done == nil {
		return false
	}
	select {
	case <-s.Done:
		return true
	default:
		return false
	}
}

// Extract opens the recording page, accumulates media URLs from intercepted
// responses, applies DOM and title fallbacks, and returns the result.
//
// No failure of the page capability aborts the session: navigation errors,
// body reads, DOM probes, and title reads all degrade to "signal unavailable".
// Both URLs may legitimately remain unset; that is absence, not an error.
func (s *Session) Extract(page Page, url string) *MediaResult {
	classifier := s.Classifier
	if classifier == nil {
		classifier = &Classifier{Note: s.Note}
	}
	if s.PollInterval <= 0 {
		s.PollInterval = 3 * time.Second
	}
	if s.MaxWait <= 0 {
		s.MaxWait = 300 * time.Second
	}
	if s.Grace <= 0 {
		s.Grace = 2 * time.Second
	}
	if s.NavTimeout <= 0 {
		s.NavTimeout = 60 * time.Second
	}

	res := NewMediaResult()
	page.OnResponse(func(ex Exchange) {
		classifier.Classify(ex, res)
	})

	s.note("Opening recording page...")
	if err := page.Navigate(url, s.NavTimeout); err != nil {
		// Interception may still succeed on a partial load (SSO redirects).
		s.note("Navigation note: %v", err)
		log.Warnf("navigate %s: %v", url, err)
	}

	s.poll(page, res)
	s.domFallback(page, res)
	s.titleFallback(page, res)

	if err := page.Close(); err != nil {
		log.Warnf("close page: %v", err)
	}

	s.summarize(res)
	return res
}

// poll waits for the interception path to produce a video URL, emitting
// periodic progress notes with a page title snapshot.
func (s *Session) poll(page Page, res *MediaResult) {
	for elapsed := time.Duration(0); elapsed < s.MaxWait; {
		s.sleep(s.PollInterval)
		elapsed += s.PollInterval

		if s.interrupted() {
			return
		}

		if res.VideoURL().IsPresent() {
			// Give a near-simultaneous transcript exchange time to land.
			s.sleep(s.Grace)
			return
		}

		if elapsed%progressCheckpoint == 0 {
			if title, err := page.Title(); err == nil {
				s.note("[%ds] Waiting for recording to load... (page: %s)",
					int(elapsed.Seconds()), util.Truncate(title, 50))
			} else {
				s.note("[%ds] Waiting (page navigating)...", int(elapsed.Seconds()))
			}
		}
	}
}

// domFallback probes the live DOM for media elements when interception came
// up empty.
func (s *Session) domFallback(page Page, res *MediaResult) {
	if res.VideoURL().IsAbsent() {
		for _, selector := range []string{"video source", "video"} {
			el, ok := page.QueryFirst(selector)
			if !ok {
				continue
			}
			if src, ok := el.Attribute("src"); ok && src != "" && !strings.Contains(src, "blob:") {
				res.SetVideoURL(src)
				break
			}
		}
	}

	if res.TranscriptURL().IsAbsent() {
		if el, ok := page.QueryFirst("track"); ok {
			if src, ok := el.Attribute("src"); ok && src != "" {
				res.SetTranscriptURL(src)
			}
		}
	}
}

// titleFallback derives an output name from the displayed page title when no
// topic metadata ever arrived. Sign-in page titles are rejected.
func (s *Session) titleFallback(page Page, res *MediaResult) {
	if res.Title() != DefaultTitle {
		return
	}

	raw, err := page.Title()
	if err != nil || raw == "" {
		return
	}

	clean := util.SanitizeTitle(raw)
	clean = strings.Trim(brandingSuffixRe.ReplaceAllString(clean, ""), "_- ")
	if clean != "" && !strings.Contains(strings.ToLower(clean), "sign") {
		res.SetTitle(clean)
	}
}

// summarize emits the final found/not-found report for observability.
func (s *Session) summarize(res *MediaResult) {
	if res.VideoURL().IsPresent() {
		s.note("Video URL found")
	} else {
		s.note("Video URL not found")
	}

	if res.TranscriptURL().IsPresent() {
		s.note("Transcript URL found")
	} else {
		s.note("Transcript URL not found")
	}

	if topic, ok := res.Topic().Get(); ok {
		s.note("Topic: %s", topic)
	}
	if start, ok := res.StartTime().Get(); ok {
		s.note("Start time: %s", start)
	}
}

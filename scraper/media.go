// Package scraper captures recording media URLs and metadata from
// authenticated Zoom pages via network interception with DOM and page-title
// fallbacks.
package scraper

import "github.com/samber/mo"

// DefaultTitle is the sentinel output name used until a real topic or page
// title is discovered.
const DefaultTitle = "Untitled_Recording"

// MediaResult aggregates recording metadata and asset URLs discovered during
// a single extraction session.
//
// The two asset URLs follow a strict first-wins policy: once set they are
// never replaced or cleared for the lifetime of the session, regardless of
// which signal source produced them. Metadata fields update freely since they
// come from a single authoritative payload type.
type MediaResult struct {
	videoURL      string
	transcriptURL string
	title         string
	topic         string
	startTime     string
}

// NewMediaResult returns an empty accumulator carrying the title sentinel.
func NewMediaResult() *MediaResult {
	return &MediaResult{title: DefaultTitle}
}

// SetVideoURL adopts the video URL if none has been recorded yet.
// Reports whether the value was adopted.
func (r *MediaResult) SetVideoURL(url string) bool {
	if r.videoURL != "" || url == "" {
		return false
	}
	r.videoURL = url
	return true
}

// SetTranscriptURL adopts the transcript URL if none has been recorded yet.
// Reports whether the value was adopted.
func (r *MediaResult) SetTranscriptURL(url string) bool {
	if r.transcriptURL != "" || url == "" {
		return false
	}
	r.transcriptURL = url
	return true
}

// VideoURL returns the discovered video URL, if any.
func (r *MediaResult) VideoURL() mo.Option[string] {
	if r.videoURL == "" {
		return mo.None[string]()
	}
	return mo.Some(r.videoURL)
}

// TranscriptURL returns the discovered transcript URL, if any.
func (r *MediaResult) TranscriptURL() mo.Option[string] {
	if r.transcriptURL == "" {
		return mo.None[string]()
	}
	return mo.Some(r.transcriptURL)
}

// Title returns the current output name, which is DefaultTitle until a topic
// or usable page title replaces it.
func (r *MediaResult) Title() string {
	return r.title
}

// SetTitle overwrites the output name. Callers pass already-sanitized values.
func (r *MediaResult) SetTitle(title string) {
	if title != "" {
		r.title = title
	}
}

// Topic returns the meeting topic from Zoom metadata, if seen.
func (r *MediaResult) Topic() mo.Option[string] {
	if r.topic == "" {
		return mo.None[string]()
	}
	return mo.Some(r.topic)
}

// SetTopic overwrites the meeting topic.
func (r *MediaResult) SetTopic(topic string) {
	r.topic = topic
}

// StartTime returns the meeting start-time label from Zoom metadata, if seen.
func (r *MediaResult) StartTime() mo.Option[string] {
	if r.startTime == "" {
		return mo.None[string]()
	}
	return mo.Some(r.startTime)
}

// SetStartTime overwrites the meeting start-time label.
func (r *MediaResult) SetStartTime(startTime string) {
	r.startTime = startTime
}

// Report is the serializable snapshot of a MediaResult handed to callers once
// extraction completes.
type Report struct {
	VideoURL      *string `json:"video_url"`
	TranscriptURL *string `json:"transcript_url"`
	Title         string  `json:"title"`
	Topic         *string `json:"topic"`
	StartTime     *string `json:"start_time"`
}

// Report converts the accumulator into its immutable hand-off form.
func (r *MediaResult) Report() Report {
	opt := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}
	return Report{
		VideoURL:      opt(r.videoURL),
		TranscriptURL: opt(r.transcriptURL),
		Title:         r.title,
		Topic:         opt(r.topic),
		StartTime:     opt(r.startTime),
	}
}

package history

import (
	"fmt"
	"time"

	"github.com/zoomgrab-cli/zoomgrab/scraper"
)

// SavedRecording represents a single downloaded recording preserved in the
// user's history.
type SavedRecording struct {
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	Topic         string    `json:"topic,omitempty"`
	StartTime     string    `json:"start_time,omitempty"`
	Directory     string    `json:"directory"`
	HasVideo      bool      `json:"has_video"`
	HasTranscript bool      `json:"has_transcript"`
	DownloadedAt  time.Time `json:"downloaded_at"`
}

func (s *SavedRecording) encode() string {
	return s.URL
}

func (s *SavedRecording) String() string {
	return fmt.Sprintf("%s (%s)", s.Title, s.DownloadedAt.Format("2006-01-02"))
}

func newSavedRecording(url, dir string, result *scraper.MediaResult) *SavedRecording {
	return &SavedRecording{
		URL:           url,
		Title:         result.Title(),
		Topic:         result.Topic().OrElse(""),
		StartTime:     result.StartTime().OrElse(""),
		Directory:     dir,
		HasVideo:      result.VideoURL().IsPresent(),
		HasTranscript: result.TranscriptURL().IsPresent(),
	}
}

package scraper

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/zoomgrab-cli/zoomgrab/constant"
	"github.com/zoomgrab-cli/zoomgrab/log"
	"github.com/zoomgrab-cli/zoomgrab/util"
)

// Exchange is one intercepted network response. Body is read lazily and may
// fail; a failed read means the exchange contributes nothing further.
type Exchange struct {
	URL         string
	ContentType string
	Body        func() (string, error)
}

// Ordered candidate field names scanned in known Zoom recording payloads.
// Order matters: earlier keys are the more canonical variants.
var (
	videoURLKeys = []string{
		"viewMp4Url",
		"mp4Url",
		"downloadUrl",
		"play_url",
		"fileUrl",
	}
	transcriptURLKeys = []string{
		"viewVttUrl",
		"vttUrl",
		"closedCaptionUrl",
		"transcriptUrl",
		"subtitleUrl",
		"chatFileUrl",
	}
)

// Markers used by the URL heuristics.
const (
	videoExtMarker      = ".mp4"
	captionExtMarker    = ".vtt"
	streamingPathMarker = "ssrweb"
	ccPathMarker        = "closedcaption"
)

// nonContentMarkers exclude preview assets that carry media extensions.
var nonContentMarkers = []string{"thumbnail", "avatar"}

// recordingAPIRe matches the Zoom recording API endpoints worth announcing.
var recordingAPIRe = regexp.MustCompile(`nws/recording|play/info`)

// urlRe extracts HTTP(S) URL candidates from arbitrary payload text.
var urlRe = regexp.MustCompile(`https?://[^\s"'<>\\]+`)

// Classifier inspects intercepted exchanges and populates a MediaResult.
// It is a pure function of one exchange plus existing result state; no
// failure inside classification ever escapes to the event stream.
type Classifier struct {
	// Note receives human-readable diagnostics. Optional.
	Note func(format string, args ...any)
}

func (c *Classifier) note(format string, args ...any) {
	if c.Note != nil {
		c.Note(format, args...)
	}
}

// Classify applies every extraction strategy to a single exchange, from the
// cheapest URL heuristics down to the raw-body fallback scan.
func (c *Classifier) Classify(ex Exchange, res *MediaResult) {
	lowURL := strings.ToLower(ex.URL)

	// Direct-match heuristics on the URL itself.
	if strings.Contains(lowURL, videoExtMarker) && !containsAny(lowURL, nonContentMarkers) {
		res.SetVideoURL(ex.URL)
	}
	if strings.Contains(lowURL, captionExtMarker) {
		res.SetTranscriptURL(ex.URL)
	}

	// A declared media stream is a video URL even without an extension.
	if strings.Contains(ex.ContentType, "video/") {
		res.SetVideoURL(ex.URL)
	}

	// Only structured payloads are worth reading.
	if !strings.Contains(ex.ContentType, "json") {
		return
	}

	body, err := ex.Body()
	if err != nil {
		log.Debugf("response body unavailable for %s: %v", ex.URL, err)
		return
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return
	}

	if recordingAPIRe.MatchString(lowURL) {
		c.note("Intercepted Zoom recording API response")
	}

	c.captureFromRecordingPayload(data, res)
	c.captureFromRawBody(body, res)
}

// captureFromRecordingPayload walks a decoded recording payload using the
// ordered key rule tables, the recording_files list, and nested meeting
// metadata.
func (c *Classifier) captureFromRecordingPayload(data map[string]any, res *MediaResult) {
	// Unwrap one level of the "result" envelope when present.
	result := data
	if wrapped, ok := data["result"].(map[string]any); ok {
		result = wrapped
	}

	for _, k := range videoURLKeys {
		if val := stringField(result, k); val != "" {
			if res.SetVideoURL(normalizeURL(val)) {
				break
			}
		}
	}

	for _, k := range transcriptURLKeys {
		if val := stringField(result, k); val != "" {
			if res.SetTranscriptURL(normalizeURL(val)) {
				break
			}
		}
	}

	if files, ok := result["recording_files"].([]any); ok {
		for _, entry := range files {
			record, ok := entry.(map[string]any)
			if !ok {
				continue
			}

			fileType := strings.ToUpper(stringField(record, "file_type"))
			url := stringField(record, "download_url")
			if url == "" {
				url = stringField(record, "play_url")
			}
			if url == "" {
				continue
			}

			switch fileType {
			case "MP4":
				res.SetVideoURL(normalizeURL(url))
			case "TRANSCRIPT", "VTT", "CC":
				res.SetTranscriptURL(normalizeURL(url))
			}
		}
	}

	meet, _ := result["meet"].(map[string]any)
	topic := stringField(meet, "topic")
	if topic == "" {
		topic = stringField(result, "topic")
	}
	if topic != "" {
		res.SetTopic(topic)
		res.SetTitle(util.SanitizeTitle(topic))
	}

	start := stringField(meet, "meetingStartTimeStr")
	if start == "" {
		start = stringField(result, "meetingStartTimeStr")
	}
	if start != "" {
		res.SetStartTime(start)
	}
}

// captureFromRawBody is the last-resort pass: scan the payload text for URL
// patterns and pick the first plausible media candidates. Deliberately
// low-priority, it carries a real false-positive risk and runs only for
// fields the structured passes left unset.
func (c *Classifier) captureFromRawBody(body string, res *MediaResult) {
	if res.VideoURL().IsAbsent() {
		for _, found := range urlRe.FindAllString(body, -1) {
			low := strings.ToLower(found)
			if (strings.Contains(low, videoExtMarker) || strings.Contains(low, streamingPathMarker)) &&
				!containsAny(low, nonContentMarkers) {
				res.SetVideoURL(found)
				break
			}
		}
	}

	if res.TranscriptURL().IsAbsent() {
		for _, found := range urlRe.FindAllString(body, -1) {
			low := strings.ToLower(found)
			if strings.Contains(low, captionExtMarker) || strings.Contains(low, ccPathMarker) {
				res.SetTranscriptURL(found)
				break
			}
		}
	}
}

// normalizeURL rewrites relative Zoom paths to absolute URLs against the
// known web host; absolute URLs pass through untouched.
func normalizeURL(url string) string {
	if strings.HasPrefix(url, "/") {
		return constant.ZoomWebHost + url
	}
	return url
}

// stringField reads a non-empty string value from a decoded JSON object,
// tolerating a nil map.
func stringField(obj map[string]any, key string) string {
	if obj == nil {
		return ""
	}
	val, _ := obj[key].(string)
	return val
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// Package transcript parses WebVTT-style caption payloads and renders them
// into plain-text transcript formats.
package transcript

// Cue is a single parsed caption unit.
type Cue struct {
	// Timestamp is the original cue timing line, preserved verbatim.
	Timestamp string `json:"timestamp"`
	// Text is the cleaned caption text for that timing line.
	Text string `json:"text"`
}

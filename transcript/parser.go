package transcript

import (
	"html"
	"regexp"
	"strings"
)

const (
	bom         = "\uFEFF"
	formatMagic = "WEBVTT"
	noteMarker  = "NOTE"
	timingArrow = "-->"
)

var (
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// cleanCaptionLine removes markup tags, decodes HTML entities, and normalizes
// whitespace so caption fragments read as plain text.
func cleanCaptionLine(line string) string {
	text := tagRe.ReplaceAllString(line, "")
	text = html.UnescapeString(text)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// Parse converts raw caption text into an ordered sequence of cues.
//
// Optional cue identifier lines are consumed, metadata lines (the format
// header and NOTE annotations) are skipped, and malformed blocks without a
// timing line are silently dropped. Timing lines are captured verbatim.
func Parse(raw string) []Cue {
	lines := strings.Split(strings.ReplaceAll(raw, bom, ""), "\n")
	var cues []Cue

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if line == "" || strings.ToUpper(line) == formatMagic || strings.HasPrefix(line, noteMarker) {
			i++
			continue
		}

		var timestamp string
		switch {
		case strings.Contains(line, timingArrow):
			timestamp = line
			i++
		case i+1 < len(lines) && strings.Contains(lines[i+1], timingArrow):
			// Current line is a cue identifier; discard it.
			timestamp = strings.TrimSpace(lines[i+1])
			i += 2
		default:
			i++
			continue
		}

		var textLines []string
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			if cleaned := cleanCaptionLine(strings.TrimSpace(lines[i])); cleaned != "" {
				textLines = append(textLines, cleaned)
			}
			i++
		}

		if text := strings.TrimSpace(strings.Join(textLines, " ")); text != "" {
			cues = append(cues, Cue{Timestamp: timestamp, Text: text})
		}
	}

	return cues
}

package transcript

import "strings"

// ToParagraph renders cues as a single paragraph without timestamps.
// Consecutive duplicate captions (a common artifact of rolling captions) are
// suppressed; non-adjacent repeats are kept.
func ToParagraph(cues []Cue) string {
	var chunks []string
	var prev string

	for _, cue := range cues {
		if cue.Text != prev {
			chunks = append(chunks, cue.Text)
			prev = cue.Text
		}
	}

	paragraph := strings.TrimSpace(strings.Join(chunks, " "))
	return whitespaceRe.ReplaceAllString(paragraph, " ")
}

// ToTimestampedText renders cues as timestamped plain-text blocks separated by
// blank lines. The output always ends with a newline.
func ToTimestampedText(cues []Cue) string {
	blocks := make([]string, 0, len(cues))
	for _, cue := range cues {
		blocks = append(blocks, cue.Timestamp+"\n"+cue.Text)
	}
	return strings.TrimSpace(strings.Join(blocks, "\n\n")) + "\n"
}

package transcript

import (
	"fmt"
	"strings"

	"ytscribe/internal/stitch"
)

// Style selects the transcript output format.
type Style string

const (
	StyleText     Style = "text"
	StyleMarkdown Style = "markdown"
)

// StyleFromString maps a config/flag value onto a Style, defaulting to text.
func StyleFromString(value string) Style {
	if strings.ToLower(strings.TrimSpace(value)) == string(StyleMarkdown) {
		return StyleMarkdown
	}
	return StyleText
}

// Extension returns the file extension conventionally used for the style.
func (s Style) Extension() string {
	if s == StyleMarkdown {
		return ".md"
	}
	return ".txt"
}

// FormatOptions controls transcript rendering.
type FormatOptions struct {
	Style      Style
	Timestamps bool
}

// musicMarker is the placeholder YouTube emits for non-speech audio.
const musicMarker = "[Music]"

// Format renders segments as one line (text) or paragraph (markdown) each.
// Segments that are empty after trimming and music-marker removal contribute
// nothing. Equal inputs produce byte-identical output.
func Format(segments []stitch.Segment, opts FormatOptions) string {
	lines := make([]string, 0, len(segments))
	for _, segment := range segments {
		text := strings.TrimSpace(segment.Text)
		text = strings.TrimSpace(strings.ReplaceAll(text, musicMarker, ""))
		if text == "" {
			continue
		}

		switch {
		case opts.Style == StyleMarkdown && opts.Timestamps:
			lines = append(lines, fmt.Sprintf("**%s**: %s", FormatTimestamp(segment.Start), text))
		case opts.Style == StyleMarkdown:
			lines = append(lines, text)
		case opts.Timestamps:
			lines = append(lines, fmt.Sprintf("[%s] %s", FormatTimestamp(segment.Start), text))
		default:
			lines = append(lines, text)
		}
	}

	joiner := "\n"
	if opts.Style == StyleMarkdown {
		joiner = "\n\n"
	}
	return strings.Join(lines, joiner)
}

// FormatTimestamp renders seconds as HH:MM:SS, clamping negatives to zero.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

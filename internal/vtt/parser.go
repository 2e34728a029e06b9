package vtt

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"ytscribe/internal/logging"
)

// Cue is one raw timed caption entry. End is zero when the source omits it.
type Cue struct {
	Start float64
	End   float64
	Text  string
}

var inlineTagPattern = regexp.MustCompile(`<[^>]*>`)

// Parse reads a caption blob into ordered cues. Blocks without a timing line
// (the WEBVTT header, Kind:/Language: metadata, NOTE comments) are skipped;
// blocks with malformed timestamps are dropped with a warning on logger.
func Parse(content string, logger *slog.Logger) []Cue {
	logger = logging.NewComponentLogger(logger, "vtt")

	content = strings.ReplaceAll(content, "\r\n", "\n")
	var cues []Cue
	for _, block := range splitBlocks(content) {
		cue, ok, reason := parseBlock(block)
		if !ok {
			if reason != "" {
				logger.Warn("dropping caption cue", logging.String("reason", reason))
			}
			continue
		}
		cues = append(cues, cue)
	}
	return cues
}

// ParseFile parses the caption file at path. Each call re-reads the file, so
// the resulting sequence is restartable with no cursor state between calls.
// Read failures propagate; they are fatal for the video, not the batch.
func ParseFile(path string, logger *slog.Logger) ([]Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read captions %s: %w", path, err)
	}
	return Parse(string(data), logger), nil
}

func splitBlocks(content string) []string {
	lines := strings.Split(content, "\n")
	var blocks []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

// parseBlock returns the cue, whether the block produced one, and a non-empty
// reason when a timed block had to be dropped. Metadata blocks return ok=false
// with an empty reason.
func parseBlock(block string) (Cue, bool, string) {
	lines := strings.Split(block, "\n")
	timing := -1
	for i, line := range lines {
		if strings.Contains(line, "-->") {
			timing = i
			break
		}
	}
	if timing < 0 {
		return Cue{}, false, ""
	}

	startText, endText, _ := strings.Cut(lines[timing], "-->")
	start, err := ParseTimestamp(startText)
	if err != nil {
		return Cue{}, false, err.Error()
	}

	var end float64
	// Cue settings (align:start etc.) may trail the end timestamp.
	if fields := strings.Fields(endText); len(fields) > 0 {
		end, err = ParseTimestamp(fields[0])
		if err != nil {
			return Cue{}, false, err.Error()
		}
		if end < start {
			return Cue{}, false, fmt.Sprintf("cue ends before it starts: %s", strings.TrimSpace(lines[timing]))
		}
	}

	text := strings.Join(lines[timing+1:], " ")
	text = inlineTagPattern.ReplaceAllString(text, "")
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return Cue{}, false, ""
	}

	return Cue{Start: start, End: end, Text: text}, true, ""
}

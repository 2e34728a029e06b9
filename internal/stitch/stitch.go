package stitch

import (
	"strings"

	"ytscribe/internal/vtt"
)

// DefaultOverlapThreshold is the minimum suffix/prefix overlap, in characters,
// treated as a continuation of the accumulated text. Short accidental overlaps
// (a shared "the ") must not merge unrelated sentences. The value is a
// heuristic calibrated on real auto-caption tracks, not a law; callers can
// tune it through Options.
const DefaultOverlapThreshold = 5

// Segment is one stitched transcript unit.
type Segment struct {
	Start float64
	Text  string
}

// Options controls stitching behaviour.
type Options struct {
	// Threshold overrides DefaultOverlapThreshold when positive.
	Threshold int
	// Disabled maps cues 1:1 to segments without any merging.
	Disabled bool
}

func (o Options) threshold() int {
	if o.Threshold > 0 {
		return o.Threshold
	}
	return DefaultOverlapThreshold
}

// Stitch merges ordered cues into segments. It is total over any finite cue
// sequence: zero cues yield zero segments, a single cue is emitted as-is, and
// segment start times preserve the input order.
func Stitch(cues []vtt.Cue, opts Options) []Segment {
	if opts.Disabled {
		segments := make([]Segment, 0, len(cues))
		for _, cue := range cues {
			segments = append(segments, Segment{Start: cue.Start, Text: cue.Text})
		}
		return segments
	}

	threshold := opts.threshold()
	var segments []Segment
	var accText string
	var accStart float64

	for _, cue := range cues {
		if accText == "" {
			accText = cue.Text
			accStart = cue.Start
			continue
		}

		overlap := bestOverlap(accText, cue.Text)
		if overlap > threshold || strings.HasPrefix(cue.Text, accText) {
			accText += cue.Text[overlap:]
			continue
		}

		segments = append(segments, Segment{Start: accStart, Text: accText})
		accText = cue.Text
		accStart = cue.Start
	}

	if accText != "" {
		segments = append(segments, Segment{Start: accStart, Text: accText})
	}
	return segments
}

// bestOverlap returns the length of the longest suffix of prev that equals a
// prefix of next. All candidate lengths are scanned and the maximum kept; the
// first match is not necessarily the best one.
func bestOverlap(prev, next string) int {
	limit := len(prev)
	if len(next) < limit {
		limit = len(next)
	}
	best := 0
	for i := 1; i <= limit; i++ {
		if strings.HasSuffix(prev, next[:i]) {
			best = i
		}
	}
	return best
}

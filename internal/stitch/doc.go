// Package stitch collapses rolling ASR captions into sentence-level segments.
//
// Auto-caption tracks re-send previously shown words plus newly recognized
// ones, so naive per-cue output duplicates most of the transcript. The
// stitcher detects the suffix/prefix overlap between the accumulated text and
// each incoming cue and appends only the new tail, flushing a segment whenever
// a cue shares no meaningful overlap with what came before.
//
// This is variable-overlap stitching. The simpler alternative of treating a
// cue as a continuation only when it starts with the previous cue's full text
// was rejected: it breaks whenever the recognizer reorders or drops leading
// words, which happens constantly in real auto-caption streams.
package stitch

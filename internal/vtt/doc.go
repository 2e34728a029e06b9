// Package vtt parses WebVTT-style auto-caption tracks into timed cues.
//
// The parser is tolerant by design: header and metadata blocks are skipped,
// inline markup is stripped, and cues with malformed timestamps are dropped
// with a logged warning instead of aborting the parse. Auto-generated caption
// files are messy and a single bad block should never cost a whole transcript.
package vtt

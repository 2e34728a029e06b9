// Package transcript renders stitched segments as plain-text or markdown.
// Formatting is a pure function of its inputs; callers own all I/O.
package transcript

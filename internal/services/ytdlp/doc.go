// Package ytdlp wraps the yt-dlp CLI for video metadata extraction and
// auto-caption downloads. All network work is delegated to the external tool;
// this package owns argument construction, pacing, output selection, and the
// mapping of tool failures onto the shared error taxonomy.
package ytdlp

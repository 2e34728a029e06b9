package transcript

import (
	"testing"

	"ytscribe/internal/stitch"
)

func TestFormatPlainWithTimestamps(t *testing.T) {
	segments := []stitch.Segment{
		{Start: 0, Text: "Hello world."},
		{Start: 5, Text: "This is a test."},
	}
	got := Format(segments, FormatOptions{Style: StyleText, Timestamps: true})
	want := "[00:00:00] Hello world.\n[00:00:05] This is a test."
	if got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestFormatMarkdownWithoutTimestamps(t *testing.T) {
	segments := []stitch.Segment{
		{Start: 0, Text: "Hello world."},
		{Start: 5, Text: "This is a test."},
	}
	got := Format(segments, FormatOptions{Style: StyleMarkdown})
	want := "Hello world.\n\nThis is a test."
	if got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestFormatMarkdownWithTimestamps(t *testing.T) {
	segments := []stitch.Segment{{Start: 3725, Text: "An hour in."}}
	got := Format(segments, FormatOptions{Style: StyleMarkdown, Timestamps: true})
	want := "**01:02:05**: An hour in."
	if got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestFormatSkipsMusicOnlySegments(t *testing.T) {
	segments := []stitch.Segment{
		{Start: 0, Text: "[Music]"},
		{Start: 2, Text: "  "},
		{Start: 4, Text: "[Music] actual words"},
	}
	got := Format(segments, FormatOptions{Style: StyleText})
	if got != "actual words" {
		t.Fatalf("Format = %q, want %q", got, "actual words")
	}
}

func TestFormatEmptyInput(t *testing.T) {
	if got := Format(nil, FormatOptions{Style: StyleText, Timestamps: true}); got != "" {
		t.Fatalf("empty segments should format to empty string, got %q", got)
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	segments := []stitch.Segment{
		{Start: 1.9, Text: "first"},
		{Start: 61.2, Text: "second"},
	}
	opts := FormatOptions{Style: StyleMarkdown, Timestamps: true}
	first := Format(segments, opts)
	second := Format(segments, opts)
	if first != second {
		t.Fatalf("formatting is not deterministic: %q vs %q", first, second)
	}
}

func TestFormatTimestampClampsNegative(t *testing.T) {
	if got := FormatTimestamp(-3); got != "00:00:00" {
		t.Fatalf("FormatTimestamp(-3) = %q", got)
	}
	if got := FormatTimestamp(4999); got != "01:23:19" {
		t.Fatalf("FormatTimestamp(4999) = %q", got)
	}
}

func TestStyleFromString(t *testing.T) {
	if StyleFromString(" Markdown ") != StyleMarkdown {
		t.Fatal("markdown should map to StyleMarkdown")
	}
	if StyleFromString("anything else") != StyleText {
		t.Fatal("unknown styles should default to text")
	}
	if StyleMarkdown.Extension() != ".md" || StyleText.Extension() != ".txt" {
		t.Fatal("unexpected extensions")
	}
}

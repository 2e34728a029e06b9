package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"ytscribe/internal/metadata"
)

func TestConfigNewWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "new", "--path", target)
	if err != nil {
		t.Fatalf("config new: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// A second run without --overwrite refuses to clobber the file.
	if _, err := runCLI(t, "config", "new", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestStitchCommandFormatsLocalFile(t *testing.T) {
	configPath := writeTestConfig(t)

	captions := filepath.Join(t.TempDir(), "captions.vtt")
	track := `WEBVTT

00:00:01.000 --> 00:00:03.000
hello world this is

00:00:02.500 --> 00:00:05.000
world this is a rolling caption
`
	if err := os.WriteFile(captions, []byte(track), 0o644); err != nil {
		t.Fatalf("write captions: %v", err)
	}

	out, err := runCLI(t, "--config", configPath, "stitch", captions)
	if err != nil {
		t.Fatalf("stitch: %v", err)
	}
	requireContains(t, out, "[00:00:01] hello world this is a rolling caption")
}

func TestStitchCommandMarkdownWithoutTimestamps(t *testing.T) {
	configPath := writeTestConfig(t)

	captions := filepath.Join(t.TempDir(), "captions.vtt")
	track := `WEBVTT

00:00:01.000 --> 00:00:03.000
first thought

00:00:05.000 --> 00:00:07.000
second thought
`
	if err := os.WriteFile(captions, []byte(track), 0o644); err != nil {
		t.Fatalf("write captions: %v", err)
	}

	out, err := runCLI(t, "--config", configPath, "stitch", captions,
		"--format", "markdown", "--no-timestamps")
	if err != nil {
		t.Fatalf("stitch: %v", err)
	}
	requireContains(t, out, "first thought")
	requireContains(t, out, "second thought")
	if string(out[0]) == "*" {
		t.Fatalf("expected no timestamp prefix, got:\n%s", out)
	}
}

func TestTruncateTitleKeepsRunesIntact(t *testing.T) {
	short := "plain title"
	if got := truncateTitle(short, 60); got != short {
		t.Fatalf("short title changed: %q", got)
	}

	long := strings.Repeat("日", 70)
	got := truncateTitle(long, 60)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
	if got != strings.Repeat("日", 57)+"..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
}

func TestCatalogListEmpty(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCLI(t, "--config", configPath, "catalog", "list")
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	requireContains(t, out, "Catalog is empty")
}

func TestCatalogListRejectsUnknownStatus(t *testing.T) {
	configPath := writeTestConfig(t)

	if _, err := runCLI(t, "--config", configPath, "catalog", "list", "--status", "bogus"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestBatchAddFromChannelCSV(t *testing.T) {
	configPath := writeTestConfig(t)

	csvPath := filepath.Join(t.TempDir(), "channel_videos.csv")
	file, err := os.Create(csvPath)
	if err != nil {
		t.Fatalf("create csv: %v", err)
	}
	rows := []metadata.Row{
		{
			ChannelName: "Test Channel",
			VideoID:     "vid1",
			Title:       "First Video",
			UploadDate:  "2024-01-01",
			VideoURL:    "https://www.youtube.com/watch?v=vid1",
		},
		{
			ChannelName: "Test Channel",
			VideoID:     "vid2",
			Title:       "Second Video",
			UploadDate:  "2024-01-02",
			VideoURL:    "https://www.youtube.com/watch?v=vid2",
		},
	}
	if err := metadata.WriteCSV(file, rows); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close csv: %v", err)
	}

	out, err := runCLI(t, "--config", configPath, "batch", "add", csvPath)
	if err != nil {
		t.Fatalf("batch add: %v", err)
	}
	requireContains(t, out, "Added 2 videos (0 already cataloged)")

	// Re-adding the same CSV is idempotent.
	out, err = runCLI(t, "--config", configPath, "batch", "add", csvPath)
	if err != nil {
		t.Fatalf("batch add again: %v", err)
	}
	requireContains(t, out, "Added 0 videos (2 already cataloged)")

	out, err = runCLI(t, "--config", configPath, "catalog", "list")
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	requireContains(t, out, "vid1")
	requireContains(t, out, "vid2")
	requireContains(t, out, "2 total: 2 pending")
}

func TestBatchRunWithEmptyCatalog(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCLI(t, "--config", configPath, "batch", "run")
	if err != nil {
		t.Fatalf("batch run: %v", err)
	}
	requireContains(t, out, "No pending videos")
}

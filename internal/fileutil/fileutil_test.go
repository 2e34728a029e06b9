package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"My Video: Part 1/2":  "My Video- Part 1-2",
		"  spaced  ":          "spaced",
		`what? "quotes" <ok>`: "what quotes ok",
	}
	for input, want := range cases {
		if got := SanitizeFileName(input); got != want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	if got := SanitizeToken("dQw4w9WgXcQ"); got != "dQw4w9WgXcQ" {
		t.Fatalf("video id should pass through, got %q", got)
	}
	if got := SanitizeToken("a b/c"); got != "a_b_c" {
		t.Fatalf("unexpected token %q", got)
	}
	if got := SanitizeToken("   "); got != "unknown" {
		t.Fatalf("empty input should map to unknown, got %q", got)
	}
}

func TestUniquePathAvoidsCollisions(t *testing.T) {
	dir := t.TempDir()
	first := UniquePath(dir, "transcript", ".txt")
	if first != filepath.Join(dir, "transcript.txt") {
		t.Fatalf("unexpected first path %q", first)
	}
	if err := os.WriteFile(first, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	second := UniquePath(dir, "transcript", ".txt")
	if second != filepath.Join(dir, "transcript_1.txt") {
		t.Fatalf("unexpected second path %q", second)
	}
}

func TestWithScratchDirCleansUp(t *testing.T) {
	parent := t.TempDir()
	var scratch string
	err := WithScratchDir(parent, "captions-", func(dir string) error {
		scratch = dir
		return os.WriteFile(filepath.Join(dir, "a.vtt"), []byte("WEBVTT"), 0o644)
	})
	if err != nil {
		t.Fatalf("scratch fn: %v", err)
	}
	if _, err := os.Stat(scratch); !os.IsNotExist(err) {
		t.Fatalf("scratch dir %q should be removed", scratch)
	}
}

func TestWithScratchDirPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := WithScratchDir(t.TempDir(), "captions-", func(string) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fn error, got %v", err)
	}
}

package services_test

import (
	"errors"
	"fmt"
	"testing"

	"ytscribe/internal/catalog"
	"ytscribe/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := fmt.Errorf("exit status 1")
	err := services.Wrap(services.ErrExternalTool, "ytdlp", "fetch info", "yt-dlp failed", base)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped base error, got %v", err)
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "ytdlp", "fetch info", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected ErrTransient, got %v", err)
	}
}

func TestFailureStatus(t *testing.T) {
	cases := []struct {
		err  error
		want catalog.Status
	}{
		{services.Wrap(services.ErrNoCaptions, "ytdlp", "captions", "", nil), catalog.StatusNoCaptions},
		{services.Wrap(services.ErrValidation, "vtt", "parse", "", nil), catalog.StatusSkipped},
		{services.Wrap(services.ErrNotFound, "ytdlp", "captions", "", nil), catalog.StatusSkipped},
		{services.Wrap(services.ErrExternalTool, "ytdlp", "captions", "", nil), catalog.StatusFailed},
		{errors.New("untagged"), catalog.StatusFailed},
	}
	for _, tc := range cases {
		if got := services.FailureStatus(tc.err); got != tc.want {
			t.Fatalf("FailureStatus(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

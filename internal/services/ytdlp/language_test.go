package ytdlp

import (
	"strings"
	"testing"
)

func TestPickCaptionLanguageExactMatch(t *testing.T) {
	lang, ok := PickCaptionLanguage([]string{"de", "en", "fr"}, []string{"en"})
	if !ok || lang != "en" {
		t.Fatalf("PickCaptionLanguage = %q, %v", lang, ok)
	}
}

func TestPickCaptionLanguageRegionalVariant(t *testing.T) {
	lang, ok := PickCaptionLanguage([]string{"de", "en-US"}, []string{"en-GB"})
	if !ok || !strings.HasPrefix(lang, "en") {
		t.Fatalf("expected an English track, got %q, %v", lang, ok)
	}
}

func TestPickCaptionLanguageFallsBackWhenNoMatch(t *testing.T) {
	lang, ok := PickCaptionLanguage([]string{"ja"}, []string{"en"})
	if !ok || lang != "ja" {
		t.Fatalf("expected fallback to the only track, got %q, %v", lang, ok)
	}
}

func TestPickCaptionLanguageEmpty(t *testing.T) {
	if _, ok := PickCaptionLanguage(nil, []string{"en"}); ok {
		t.Fatal("no tracks must report no selection")
	}
}

func TestPickCaptionLanguageIsDeterministic(t *testing.T) {
	first, _ := PickCaptionLanguage([]string{"fr", "de", "es"}, nil)
	for i := 0; i < 5; i++ {
		got, _ := PickCaptionLanguage([]string{"es", "fr", "de"}, nil)
		if got != first {
			t.Fatalf("selection not deterministic: %q vs %q", got, first)
		}
	}
}

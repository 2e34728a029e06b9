package batch

import (
	"context"
	"fmt"
	"log/slog"

	"ytscribe/internal/config"
	"ytscribe/internal/fileutil"
	"ytscribe/internal/logging"
	"ytscribe/internal/services"
	"ytscribe/internal/services/ytdlp"
	"ytscribe/internal/stitch"
	"ytscribe/internal/vtt"
)

// Extractor is the yt-dlp surface the pipeline depends on. The concrete
// implementation is ytdlp.Client; tests substitute a fake.
type Extractor interface {
	FetchVideoInfo(ctx context.Context, url string) (*ytdlp.VideoInfo, error)
	DownloadAutoCaptions(ctx context.Context, url, videoID, lang, destDir string) (string, error)
	Languages() []string
}

// Result is the outcome of a successful extraction.
type Result struct {
	Info     *ytdlp.VideoInfo
	Language string
	CueCount int
	Segments []stitch.Segment
}

// Extract runs the full pipeline for one video: metadata fetch, caption
// language selection, caption download into a scratch directory, VTT parsing,
// and stitching. The scratch directory is removed before Extract returns.
func Extract(ctx context.Context, cfg *config.Config, ext Extractor, logger *slog.Logger, url string) (*Result, error) {
	info, err := ext.FetchVideoInfo(ctx, url)
	if err != nil {
		return nil, err
	}

	lang := pickLanguage(info, ext.Languages())
	if lang == "" {
		return nil, services.Wrap(services.ErrNoCaptions, "batch", "extract",
			fmt.Sprintf("video %s lists no automatic captions", info.ID), nil)
	}

	result := &Result{Info: info, Language: lang}
	err = fileutil.WithScratchDir(cfg.Paths.WorkDir, "captions-"+fileutil.SanitizeToken(info.ID), func(dir string) error {
		captionPath, err := ext.DownloadAutoCaptions(ctx, info.CanonicalURL(), info.ID, lang, dir)
		if err != nil {
			return err
		}
		cues, err := vtt.ParseFile(captionPath, logger)
		if err != nil {
			return err
		}
		logger.Debug("parsed caption track",
			logging.String("video_id", info.ID),
			logging.String("language", lang),
			logging.Int("cues", len(cues)))
		result.CueCount = len(cues)
		result.Segments = stitch.Stitch(cues, stitch.Options{
			Threshold: cfg.Transcript.OverlapThreshold,
			Disabled:  !cfg.Transcript.Deduplicate,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// pickLanguage matches the preferred languages against the caption tracks the
// metadata advertises. When the metadata carries no caption map at all we try
// the first preference anyway; the download step reports the authoritative
// no-captions answer.
func pickLanguage(info *ytdlp.VideoInfo, preferred []string) string {
	if len(info.AutomaticCaptions) == 0 {
		if len(preferred) > 0 {
			return preferred[0]
		}
		return ""
	}
	available := make([]string, 0, len(info.AutomaticCaptions))
	for code := range info.AutomaticCaptions {
		available = append(available, code)
	}
	lang, ok := ytdlp.PickCaptionLanguage(available, preferred)
	if !ok {
		return ""
	}
	return lang
}

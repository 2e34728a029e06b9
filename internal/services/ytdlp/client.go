package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"ytscribe/internal/config"
	"ytscribe/internal/fileutil"
	"ytscribe/internal/logging"
	"ytscribe/internal/services"
)

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary          string
	languages       []string
	infoTimeout     time.Duration
	captionsTimeout time.Duration
	playlistLimit   int
	limiter         *rate.Limiter
	exec            Executor
	logger          *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// New constructs a yt-dlp client from configuration.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	binary := strings.TrimSpace(cfg.Extractor.Binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}

	limit := rate.Inf
	if rpm := cfg.Extractor.RequestsPerMinute; rpm > 0 {
		limit = rate.Every(time.Minute / time.Duration(rpm))
	}

	client := &Client{
		binary:          binary,
		languages:       append([]string{}, cfg.Extractor.Languages...),
		infoTimeout:     time.Duration(cfg.Extractor.InfoTimeout) * time.Second,
		captionsTimeout: time.Duration(cfg.Extractor.CaptionsTimeout) * time.Second,
		playlistLimit:   cfg.Extractor.PlaylistLimit,
		limiter:         rate.NewLimiter(limit, 1),
		exec:            commandExecutor{},
		logger:          logging.NewComponentLogger(logger, "ytdlp"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Languages returns the configured caption language preferences.
func (c *Client) Languages() []string {
	return append([]string{}, c.languages...)
}

// FetchVideoInfo retrieves metadata for a single video.
func (c *Client) FetchVideoInfo(ctx context.Context, url string) (*VideoInfo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	runCtx, cancel := context.WithTimeout(ctx, c.infoTimeout)
	defer cancel()

	args := []string{"--dump-single-json", "--no-warnings", "--skip-download", url}
	stdout, stderr, err := c.exec.Run(runCtx, c.binary, args)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "ytdlp", "fetch video info", stderrTail(stderr), err)
	}

	var info VideoInfo
	if err := json.Unmarshal(stdout, &info); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "ytdlp", "fetch video info", "unexpected yt-dlp output", err)
	}
	if info.ID == "" {
		return nil, services.Wrap(services.ErrNotFound, "ytdlp", "fetch video info", fmt.Sprintf("no video found for %s", url), nil)
	}
	return &info, nil
}

// ChannelOptions bounds a channel enumeration.
type ChannelOptions struct {
	// PlaylistLimit caps the number of videos enumerated. Zero falls back
	// to the configured playlist limit.
	PlaylistLimit int
	// StartDate and EndDate are inclusive YYYY-MM-DD bounds on upload date.
	StartDate string
	EndDate   string
}

// FetchChannelVideos enumerates a channel's videos, oldest first. Handle-style
// channel URLs get the /videos suffix yt-dlp expects. Enumeration respects the
// caller's context; no internal timeout is applied since full channel walks
// are legitimately slow.
func (c *Client) FetchChannelVideos(ctx context.Context, channelURL string, opts ChannelOptions) ([]*VideoInfo, error) {
	args := []string{
		"--dump-single-json",
		"--no-warnings",
		"--skip-download",
		"--ignore-errors",
		"--playlist-reverse",
	}
	limit := opts.PlaylistLimit
	if limit <= 0 {
		limit = c.playlistLimit
	}
	if limit > 0 {
		args = append(args, "--playlist-end", strconv.Itoa(limit))
	}
	for _, bound := range []struct{ flag, value string }{
		{"--dateafter", opts.StartDate},
		{"--datebefore", opts.EndDate},
	} {
		if strings.TrimSpace(bound.value) == "" {
			continue
		}
		compact, err := compactDate(bound.value)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "ytdlp", "fetch channel videos", err.Error(), nil)
		}
		args = append(args, bound.flag, compact)
	}
	args = append(args, prepareChannelURL(channelURL))

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	stdout, stderr, err := c.exec.Run(ctx, c.binary, args)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "ytdlp", "fetch channel videos", stderrTail(stderr), err)
	}

	var info VideoInfo
	if err := json.Unmarshal(stdout, &info); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "ytdlp", "fetch channel videos", "unexpected yt-dlp output", err)
	}

	if len(info.Entries) == 0 {
		if info.ID != "" {
			return []*VideoInfo{&info}, nil
		}
		return nil, nil
	}
	videos := make([]*VideoInfo, 0, len(info.Entries))
	for _, entry := range info.Entries {
		// yt-dlp emits null entries for videos it failed to extract.
		if entry == nil || entry.ID == "" {
			continue
		}
		videos = append(videos, entry)
	}
	c.logger.Debug("channel enumeration complete",
		logging.String("channel_url", channelURL),
		logging.Int("videos", len(videos)))
	return videos, nil
}

// DownloadAutoCaptions fetches the auto-generated VTT track for a video into
// destDir and returns the downloaded file's path. A video with no
// auto-captions yields services.ErrNoCaptions.
func (c *Client) DownloadAutoCaptions(ctx context.Context, url, videoID, lang, destDir string) (string, error) {
	if strings.TrimSpace(destDir) == "" {
		return "", errors.New("destination directory required")
	}
	if strings.TrimSpace(lang) == "" {
		lang = "en"
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	runCtx, cancel := context.WithTimeout(ctx, c.captionsTimeout)
	defer cancel()

	token := fileutil.SanitizeToken(videoID)
	template := filepath.Join(destDir, token+".%(ext)s")
	args := []string{
		"--write-auto-sub",
		"--sub-lang", lang,
		"--sub-format", "vtt",
		"--skip-download",
		"--no-warnings",
		"-o", template,
		url,
	}

	stdout, stderr, err := c.exec.Run(runCtx, c.binary, args)
	combined := strings.ToLower(string(stdout) + "\n" + string(stderr))
	if err != nil {
		if mentionsNoSubtitles(combined) {
			return "", services.Wrap(services.ErrNoCaptions, "ytdlp", "download captions", videoID, nil)
		}
		return "", services.Wrap(services.ErrExternalTool, "ytdlp", "download captions", stderrTail(stderr), err)
	}

	expected := filepath.Join(destDir, token+"."+lang+".vtt")
	if _, statErr := os.Stat(expected); statErr == nil {
		return expected, nil
	}
	if found := findCaptionFile(destDir, token); found != "" {
		return found, nil
	}
	if mentionsNoSubtitles(combined) {
		return "", services.Wrap(services.ErrNoCaptions, "ytdlp", "download captions", videoID, nil)
	}
	return "", services.Wrap(services.ErrNotFound, "ytdlp", "download captions",
		fmt.Sprintf("caption file for %s not found after download", videoID), nil)
}

func prepareChannelURL(channelURL string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(channelURL), "/")
	if strings.HasPrefix(trimmed, "https://www.youtube.com/@") && !strings.Contains(trimmed, "/videos") {
		return trimmed + "/videos"
	}
	return trimmed
}

func compactDate(value string) (string, error) {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return parsed.Format("20060102"), nil
}

func mentionsNoSubtitles(output string) bool {
	return strings.Contains(output, "no subtitles") || strings.Contains(output, "no automatic captions")
}

func findCaptionFile(dir, token string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.Contains(name, token) && strings.HasSuffix(name, ".vtt") {
			return filepath.Join(dir, name)
		}
	}
	return ""
}

func stderrTail(stderr []byte) string {
	lines := strings.Split(strings.TrimSpace(string(stderr)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "yt-dlp failed"
}

package ytdlp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytscribe/internal/config"
	"ytscribe/internal/logging"
	"ytscribe/internal/services"
)

type fakeExecutor struct {
	stdout []byte
	stderr []byte
	err    error
	calls  [][]string
	onRun  func(args []string)
}

func (f *fakeExecutor) Run(_ context.Context, _ string, args []string) ([]byte, []byte, error) {
	f.calls = append(f.calls, append([]string{}, args...))
	if f.onRun != nil {
		f.onRun(args)
	}
	return f.stdout, f.stderr, f.err
}

func newTestClient(t *testing.T, exec Executor) *Client {
	t.Helper()
	cfg := config.Default()
	cfg.Extractor.RequestsPerMinute = 0 // no pacing in tests
	client, err := New(&cfg, logging.NewNop(), WithExecutor(exec))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func hasArg(args []string, want string) bool {
	for _, arg := range args {
		if arg == want {
			return true
		}
	}
	return false
}

func argValue(args []string, flag string) string {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func TestFetchVideoInfoDecodesJSON(t *testing.T) {
	exec := &fakeExecutor{stdout: []byte(`{
		"id": "abc123",
		"title": "A Video",
		"channel": "Chan",
		"upload_date": "20240102",
		"duration": 61.5,
		"webpage_url": "https://www.youtube.com/watch?v=abc123",
		"automatic_captions": {"en": [{"ext": "vtt"}]}
	}`)}
	client := newTestClient(t, exec)

	info, err := client.FetchVideoInfo(context.Background(), "https://youtu.be/abc123")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if info.ID != "abc123" || info.Duration != 61.5 {
		t.Fatalf("unexpected info %+v", info)
	}
	args := exec.calls[0]
	if !hasArg(args, "--dump-single-json") || !hasArg(args, "--skip-download") {
		t.Fatalf("unexpected args %v", args)
	}

	row := info.MetadataRow()
	if row.UploadDate != "2024-01-02" || row.DurationSeconds != 61 {
		t.Fatalf("unexpected row %+v", row)
	}
}

func TestFetchVideoInfoWrapsToolFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("exit status 1"), stderr: []byte("ERROR: Video unavailable\n")}
	client := newTestClient(t, exec)

	_, err := client.FetchVideoInfo(context.Background(), "https://youtu.be/gone")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if !strings.Contains(err.Error(), "Video unavailable") {
		t.Fatalf("stderr detail missing from %v", err)
	}
}

func TestFetchVideoInfoMissingIDIsNotFound(t *testing.T) {
	exec := &fakeExecutor{stdout: []byte(`{}`)}
	client := newTestClient(t, exec)
	_, err := client.FetchVideoInfo(context.Background(), "https://youtu.be/none")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchChannelVideosBuildsArgsAndFiltersNulls(t *testing.T) {
	exec := &fakeExecutor{stdout: []byte(`{
		"id": "channel",
		"entries": [null, {"id": "a", "title": "First"}, {"id": "b", "title": "Second"}, {}]
	}`)}
	client := newTestClient(t, exec)

	videos, err := client.FetchChannelVideos(context.Background(), "https://www.youtube.com/@example", ChannelOptions{
		PlaylistLimit: 10,
		StartDate:     "2024-01-01",
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(videos) != 2 || videos[0].ID != "a" || videos[1].ID != "b" {
		t.Fatalf("unexpected videos %+v", videos)
	}

	args := exec.calls[0]
	if args[len(args)-1] != "https://www.youtube.com/@example/videos" {
		t.Fatalf("handle URL not normalized: %v", args)
	}
	if argValue(args, "--playlist-end") != "10" {
		t.Fatalf("playlist limit missing: %v", args)
	}
	if argValue(args, "--dateafter") != "20240101" {
		t.Fatalf("date bound not compacted: %v", args)
	}
	if !hasArg(args, "--playlist-reverse") {
		t.Fatalf("expected oldest-first enumeration: %v", args)
	}
}

func TestFetchChannelVideosUsesConfiguredPlaylistLimit(t *testing.T) {
	exec := &fakeExecutor{stdout: []byte(`{"id": "channel", "entries": [{"id": "a"}]}`)}
	cfg := config.Default()
	cfg.Extractor.RequestsPerMinute = 0
	cfg.Extractor.PlaylistLimit = 7
	client, err := New(&cfg, logging.NewNop(), WithExecutor(exec))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.FetchChannelVideos(context.Background(), "https://www.youtube.com/@x", ChannelOptions{}); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if argValue(exec.calls[0], "--playlist-end") != "7" {
		t.Fatalf("configured playlist limit not applied: %v", exec.calls[0])
	}

	// An explicit per-call limit still wins.
	if _, err := client.FetchChannelVideos(context.Background(), "https://www.youtube.com/@x", ChannelOptions{PlaylistLimit: 3}); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if argValue(exec.calls[1], "--playlist-end") != "3" {
		t.Fatalf("per-call limit not applied: %v", exec.calls[1])
	}
}

func TestFetchChannelVideosRejectsBadDate(t *testing.T) {
	client := newTestClient(t, &fakeExecutor{})
	_, err := client.FetchChannelVideos(context.Background(), "https://www.youtube.com/@x", ChannelOptions{EndDate: "01/02/2024"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDownloadAutoCaptionsReturnsWrittenFile(t *testing.T) {
	destDir := t.TempDir()
	exec := &fakeExecutor{}
	exec.onRun = func(args []string) {
		template := argValue(args, "-o")
		path := strings.Replace(template, "%(ext)s", "en.vtt", 1)
		if err := os.WriteFile(path, []byte("WEBVTT\n"), 0o644); err != nil {
			t.Fatalf("write fake caption: %v", err)
		}
	}
	client := newTestClient(t, exec)

	path, err := client.DownloadAutoCaptions(context.Background(), "https://youtu.be/abc", "abc", "en", destDir)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if path != filepath.Join(destDir, "abc.en.vtt") {
		t.Fatalf("unexpected path %q", path)
	}
	args := exec.calls[0]
	if !hasArg(args, "--write-auto-sub") || argValue(args, "--sub-lang") != "en" || argValue(args, "--sub-format") != "vtt" {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestDownloadAutoCaptionsFindsVariantFileName(t *testing.T) {
	destDir := t.TempDir()
	exec := &fakeExecutor{}
	exec.onRun = func(args []string) {
		// yt-dlp sometimes writes a differently suffixed language code.
		if err := os.WriteFile(filepath.Join(destDir, "abc.en-orig.vtt"), []byte("WEBVTT\n"), 0o644); err != nil {
			t.Fatalf("write fake caption: %v", err)
		}
	}
	client := newTestClient(t, exec)

	path, err := client.DownloadAutoCaptions(context.Background(), "https://youtu.be/abc", "abc", "en", destDir)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if filepath.Base(path) != "abc.en-orig.vtt" {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestDownloadAutoCaptionsNoSubtitles(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("exit status 1"), stderr: []byte("ERROR: video abc: no subtitles are available\n")}
	client := newTestClient(t, exec)

	_, err := client.DownloadAutoCaptions(context.Background(), "https://youtu.be/abc", "abc", "en", t.TempDir())
	if !errors.Is(err, services.ErrNoCaptions) {
		t.Fatalf("expected ErrNoCaptions, got %v", err)
	}
}

func TestDownloadAutoCaptionsSilentNoCaptions(t *testing.T) {
	// yt-dlp exits 0 and only mentions the absence on stdout.
	exec := &fakeExecutor{stdout: []byte("[info] there are no automatic captions for abc\n")}
	client := newTestClient(t, exec)

	_, err := client.DownloadAutoCaptions(context.Background(), "https://youtu.be/abc", "abc", "en", t.TempDir())
	if !errors.Is(err, services.ErrNoCaptions) {
		t.Fatalf("expected ErrNoCaptions, got %v", err)
	}
}

func TestDownloadAutoCaptionsMissingFileIsNotFound(t *testing.T) {
	exec := &fakeExecutor{}
	client := newTestClient(t, exec)
	_, err := client.DownloadAutoCaptions(context.Background(), "https://youtu.be/abc", "abc", "en", t.TempDir())
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

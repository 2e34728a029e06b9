package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"ytscribe/internal/catalog"
	"ytscribe/internal/config"
	"ytscribe/internal/fileutil"
	"ytscribe/internal/logging"
	"ytscribe/internal/services"
	"ytscribe/internal/transcript"
)

// ErrRunnerActive indicates another process already holds the batch lock.
var ErrRunnerActive = services.Wrap(services.ErrValidation, "batch", "lock",
	"another batch run is already active", nil)

// Summary aggregates the outcome of one batch run.
type Summary struct {
	Processed  int
	Completed  int
	NoCaptions int
	Failed     int
	Skipped    int
}

// Runner drains pending catalog videos with a bounded worker pool.
type Runner struct {
	cfg       *config.Config
	store     *catalog.Store
	extractor Extractor
	logger    *slog.Logger

	// claimMu serializes ClaimNext so two workers can never race on the
	// same pending row inside one process. Cross-process exclusion is the
	// flock's job.
	claimMu sync.Mutex
}

// NewRunner wires a runner over an open store and extractor.
func NewRunner(cfg *config.Config, store *catalog.Store, extractor Extractor, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:       cfg,
		store:     store,
		extractor: extractor,
		logger:    logging.NewComponentLogger(logger, "batch"),
	}
}

// Run claims and processes pending videos until the catalog is drained or ctx
// is cancelled. Only one run may be active per log directory at a time.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	lock := flock.New(filepath.Join(r.cfg.Paths.LogDir, "batch.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return Summary{}, services.Wrap(services.ErrConfiguration, "batch", "lock",
			"acquire batch lock", err)
	}
	if !locked {
		return Summary{}, ErrRunnerActive
	}
	defer lock.Unlock()

	runID := uuid.NewString()
	started := time.Now()
	logger := r.logger.With(logging.String("run_id", runID))

	reset, err := r.store.ResetStuckFetching(ctx)
	if err != nil {
		return Summary{}, err
	}
	if reset > 0 {
		logger.Warn("requeued interrupted videos", logging.Int64("count", reset))
	}

	workers := r.cfg.Batch.Workers
	if workers < 1 {
		workers = 1
	}
	logger.Info("batch run started", logging.Int("workers", workers))

	var (
		wg        sync.WaitGroup
		summaryMu sync.Mutex
		summary   Summary
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if ctx.Err() != nil {
					return
				}
				video, err := r.claim(ctx)
				if err != nil {
					logger.Error("claim pending video", logging.Error(err))
					return
				}
				if video == nil {
					return
				}
				outcome := r.process(ctx, logger, video)
				summaryMu.Lock()
				summary.Processed++
				switch outcome {
				case catalog.StatusCompleted:
					summary.Completed++
				case catalog.StatusNoCaptions:
					summary.NoCaptions++
				case catalog.StatusSkipped:
					summary.Skipped++
				default:
					summary.Failed++
				}
				summaryMu.Unlock()
			}
		}()
	}
	wg.Wait()

	logger.Info("batch run finished",
		logging.Duration("elapsed", time.Since(started)),
		logging.Int("processed", summary.Processed),
		logging.Int("completed", summary.Completed),
		logging.Int("no_captions", summary.NoCaptions),
		logging.Int("failed", summary.Failed),
		logging.Int("skipped", summary.Skipped))
	return summary, ctx.Err()
}

func (r *Runner) claim(ctx context.Context) (*catalog.Video, error) {
	r.claimMu.Lock()
	defer r.claimMu.Unlock()
	return r.store.ClaimNext(ctx)
}

// process takes one claimed video through extraction and records the outcome
// on its catalog row. It returns the terminal status the row was moved to.
func (r *Runner) process(ctx context.Context, logger *slog.Logger, video *catalog.Video) catalog.Status {
	logger = logger.With(logging.String("video_id", video.VideoID))
	logger.Info("processing video", logging.String("title", video.Title))

	result, err := Extract(ctx, r.cfg, r.extractor, logger, video.URL)
	if err != nil {
		status := services.FailureStatus(err)
		logger.Warn("extraction failed",
			logging.String("status", string(status)),
			logging.Error(err))
		if markErr := r.store.MarkFailure(ctx, video.ID, status, err.Error()); markErr != nil {
			logger.Error("record failure", logging.Error(markErr))
		}
		return status
	}

	path, err := r.writeTranscript(result)
	if err != nil {
		logger.Error("write transcript", logging.Error(err))
		if markErr := r.store.MarkFailure(ctx, video.ID, catalog.StatusFailed, err.Error()); markErr != nil {
			logger.Error("record failure", logging.Error(markErr))
		}
		return catalog.StatusFailed
	}

	if err := r.store.MarkCompleted(ctx, video.ID, path, result.CueCount, len(result.Segments)); err != nil {
		logger.Error("record completion", logging.Error(err))
		return catalog.StatusFailed
	}
	logger.Info("transcript written",
		logging.String("path", path),
		logging.Int("cues", result.CueCount),
		logging.Int("segments", len(result.Segments)))
	return catalog.StatusCompleted
}

// writeTranscript formats the stitched segments and writes them under the
// transcripts directory, never clobbering an existing file.
func (r *Runner) writeTranscript(result *Result) (string, error) {
	style := transcript.StyleFromString(r.cfg.Transcript.Format)
	content := transcript.Format(result.Segments, transcript.FormatOptions{
		Style:      style,
		Timestamps: r.cfg.Transcript.Timestamps,
	})

	dir := r.cfg.TranscriptsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create transcripts directory: %w", err)
	}
	base := fileutil.SanitizeFileName(result.Info.Title)
	if strings.TrimSpace(base) == "" {
		base = fileutil.SanitizeToken(result.Info.ID)
	}
	path := fileutil.UniquePath(dir, base, style.Extension())
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write transcript %s: %w", path, err)
	}
	return path, nil
}

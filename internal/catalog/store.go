package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"ytscribe/internal/config"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.CatalogDBPath())
}

// OpenPath connects to the catalog database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk database location.
func (s *Store) Path() string { return s.path }

const videoColumns = `id, video_id, url, title, channel, upload_date, duration_seconds,
    status, error_message, transcript_path, cue_count, segment_count, created_at, updated_at`

// Add inserts a pending video, ignoring duplicates by video ID. The boolean
// reports whether a new row was created.
func (s *Store) Add(ctx context.Context, req AddRequest) (bool, error) {
	videoID := strings.TrimSpace(req.VideoID)
	if videoID == "" {
		return false, errors.New("video id is required")
	}
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return false, errors.New("video url is required")
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO videos (
            video_id, url, title, channel, upload_date, duration_seconds,
            status, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		videoID,
		url,
		nullableString(req.Title),
		nullableString(req.Channel),
		nullableString(req.UploadDate),
		req.DurationSeconds,
		StatusPending,
		timestamp,
		timestamp,
	)
	if err != nil {
		return false, fmt.Errorf("insert video: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// GetByVideoID fetches a catalog row by YouTube video ID. Missing rows return
// (nil, nil).
func (s *Store) GetByVideoID(ctx context.Context, videoID string) (*Video, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+videoColumns+` FROM videos WHERE video_id = ?`, videoID)
	video, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return video, nil
}

// List returns videos filtered by status set (or all when none is provided),
// oldest first.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Video, error) {
	baseQuery := `SELECT ` + videoColumns + ` FROM videos`
	orderClause := ` ORDER BY created_at, id`

	var (
		rows *sql.Rows
		err  error
	)
	if len(statuses) == 0 {
		rows, err = s.db.QueryContext(ctx, baseQuery+orderClause)
	} else {
		placeholders := makePlaceholders(len(statuses))
		args := make([]any, len(statuses))
		for i, status := range statuses {
			args[i] = status
		}
		rows, err = s.db.QueryContext(ctx, baseQuery+` WHERE status IN (`+placeholders+`)`+orderClause, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var videos []*Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

// ClaimNext atomically moves the oldest pending video to fetching and returns
// it. A nil video means the pending set is empty.
func (s *Store) ClaimNext(ctx context.Context) (*Video, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin claim tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(
		ctx,
		`SELECT `+videoColumns+` FROM videos WHERE status = ? ORDER BY created_at, id LIMIT 1`,
		StatusPending,
	)
	video, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select pending video: %w", err)
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(
		ctx,
		`UPDATE videos SET status = ?, updated_at = ? WHERE id = ?`,
		StatusFetching,
		now.Format(time.RFC3339Nano),
		video.ID,
	); err != nil {
		return nil, fmt.Errorf("claim video: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit claim: %w", err)
	}

	video.Status = StatusFetching
	video.UpdatedAt = now
	return video, nil
}

// MarkCompleted records a successful transcript extraction.
func (s *Store) MarkCompleted(ctx context.Context, id int64, transcriptPath string, cueCount, segmentCount int) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE videos SET status = ?, transcript_path = ?, cue_count = ?, segment_count = ?,
            error_message = NULL, updated_at = ? WHERE id = ?`,
		StatusCompleted,
		nullableString(transcriptPath),
		cueCount,
		segmentCount,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

// MarkFailure records a terminal failure status with its message.
func (s *Store) MarkFailure(ctx context.Context, id int64, status Status, message string) error {
	switch status {
	case StatusNoCaptions, StatusFailed, StatusSkipped:
	default:
		return fmt.Errorf("status %q is not a failure status", status)
	}
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE videos SET status = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		status,
		nullableString(message),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("mark failure: %w", err)
	}
	return nil
}

// RetryFailed moves failed (and skipped) videos back to pending. With no IDs,
// every failed/skipped video is retried.
func (s *Store) RetryFailed(ctx context.Context, ids ...int64) (int64, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	if len(ids) == 0 {
		res, err := s.db.ExecContext(
			ctx,
			`UPDATE videos SET status = ?, error_message = NULL, updated_at = ? WHERE status IN (?, ?)`,
			StatusPending, timestamp, StatusFailed, StatusSkipped,
		)
		if err != nil {
			return 0, fmt.Errorf("retry failed videos: %w", err)
		}
		return res.RowsAffected()
	}

	placeholders := makePlaceholders(len(ids))
	args := []any{StatusPending, timestamp, StatusFailed, StatusSkipped}
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE videos SET status = ?, error_message = NULL, updated_at = ?
         WHERE status IN (?, ?) AND id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("retry failed videos: %w", err)
	}
	return res.RowsAffected()
}

// ResetStuckFetching returns in-flight videos to pending. Called at the start
// of a batch run to recover from a previous crash.
func (s *Store) ResetStuckFetching(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE videos SET status = ?, updated_at = ? WHERE status = ?`,
		StatusPending,
		time.Now().UTC().Format(time.RFC3339Nano),
		StatusFetching,
	)
	if err != nil {
		return 0, fmt.Errorf("reset stuck videos: %w", err)
	}
	return res.RowsAffected()
}

// Clear removes videos in the given statuses, or every video when none is
// provided.
func (s *Store) Clear(ctx context.Context, statuses ...Status) (int64, error) {
	if len(statuses) == 0 {
		res, err := s.db.ExecContext(ctx, `DELETE FROM videos`)
		if err != nil {
			return 0, fmt.Errorf("clear catalog: %w", err)
		}
		return res.RowsAffected()
	}
	placeholders := makePlaceholders(len(statuses))
	args := make([]any, len(statuses))
	for i, status := range statuses {
		args[i] = status
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM videos WHERE status IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("clear catalog: %w", err)
	}
	return res.RowsAffected()
}

// Stats aggregates row counts per lifecycle state.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM videos GROUP BY status`)
	if err != nil {
		return Stats{}, fmt.Errorf("catalog stats: %w", err)
	}
	defer rows.Close()

	var stats Stats
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Stats{}, fmt.Errorf("scan stats: %w", err)
		}
		stats.Total += count
		switch status {
		case StatusPending:
			stats.Pending = count
		case StatusFetching:
			stats.Fetching = count
		case StatusCompleted:
			stats.Completed = count
		case StatusNoCaptions:
			stats.NoCaptions = count
		case StatusFailed:
			stats.Failed = count
		case StatusSkipped:
			stats.Skipped = count
		}
	}
	return stats, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(scanner rowScanner) (*Video, error) {
	var video Video
	var title, channel, uploadDate, errorMessage, transcriptPath sql.NullString
	var createdAt, updatedAt string

	if err := scanner.Scan(
		&video.ID,
		&video.VideoID,
		&video.URL,
		&title,
		&channel,
		&uploadDate,
		&video.DurationSeconds,
		&video.Status,
		&errorMessage,
		&transcriptPath,
		&video.CueCount,
		&video.SegmentCount,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	video.Title = title.String
	video.Channel = channel.String
	video.UploadDate = uploadDate.String
	video.ErrorMessage = errorMessage.String
	video.TranscriptPath = transcriptPath.String
	video.CreatedAt = parseTimestamp(createdAt)
	video.UpdatedAt = parseTimestamp(updatedAt)
	return &video, nil
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", count), ", ")
}

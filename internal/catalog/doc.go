// Package catalog persists per-video processing state in SQLite so channel
// batches can be resumed, inspected, and retried. One row per video, keyed by
// the YouTube video ID; transcripts themselves live on disk, the catalog only
// records where they were written.
package catalog

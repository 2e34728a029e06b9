// Package testsupport builds throwaway configurations for tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"ytscribe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Extractor.RequestsPerMinute = 0

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("create config directories: %v", err)
	}
	return &cfg
}

// WithWorkers overrides the batch worker count.
func WithWorkers(workers int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Batch.Workers = workers
	}
}

// WithTranscript overrides transcript formatting settings.
func WithTranscript(format string, timestamps, deduplicate bool) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Transcript.Format = format
		cfg.Transcript.Timestamps = timestamps
		cfg.Transcript.Deduplicate = deduplicate
	}
}

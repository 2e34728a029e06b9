package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir is required")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir is required")
	}
	if c.Extractor.Binary == "" {
		return errors.New("extractor.binary is required")
	}
	if len(c.Extractor.Languages) == 0 {
		return errors.New("extractor.languages must list at least one caption language")
	}
	if c.Extractor.RequestsPerMinute < 0 {
		return fmt.Errorf("extractor.requests_per_minute must not be negative, got %d", c.Extractor.RequestsPerMinute)
	}
	if c.Extractor.InfoTimeout <= 0 {
		return fmt.Errorf("extractor.info_timeout must be positive, got %d", c.Extractor.InfoTimeout)
	}
	if c.Extractor.CaptionsTimeout <= 0 {
		return fmt.Errorf("extractor.captions_timeout must be positive, got %d", c.Extractor.CaptionsTimeout)
	}
	if c.Extractor.PlaylistLimit < 0 {
		return fmt.Errorf("extractor.playlist_limit must not be negative, got %d", c.Extractor.PlaylistLimit)
	}

	switch c.Transcript.Format {
	case "text", "markdown":
	default:
		return fmt.Errorf("transcript.format must be \"text\" or \"markdown\", got %q", c.Transcript.Format)
	}
	if c.Transcript.OverlapThreshold < 0 {
		return fmt.Errorf("transcript.overlap_threshold must not be negative, got %d", c.Transcript.OverlapThreshold)
	}

	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}

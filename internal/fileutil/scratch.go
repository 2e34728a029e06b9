package fileutil

import (
	"fmt"
	"os"
)

// WithScratchDir creates a temporary directory under parent, runs fn with its
// path, and removes the directory on every exit path, including panics. The
// caller owns scratch lifetime explicitly; nothing relies on finalization.
func WithScratchDir(parent, prefix string, fn func(dir string) error) error {
	if parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("ensure scratch parent: %w", err)
		}
	}
	dir, err := os.MkdirTemp(parent, prefix)
	if err != nil {
		return fmt.Errorf("create scratch directory: %w", err)
	}
	defer os.RemoveAll(dir)
	return fn(dir)
}

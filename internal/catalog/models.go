package catalog

import "time"

// Status represents the lifecycle of a catalog video.
type Status string

const (
	StatusPending    Status = "pending"
	StatusFetching   Status = "fetching"
	StatusCompleted  Status = "completed"
	StatusNoCaptions Status = "no_captions"
	StatusFailed     Status = "failed"
	StatusSkipped    Status = "skipped"
)

var allStatuses = []Status{
	StatusPending,
	StatusFetching,
	StatusCompleted,
	StatusNoCaptions,
	StatusFailed,
	StatusSkipped,
}

// ValidStatus reports whether value names a known lifecycle status.
func ValidStatus(value string) bool {
	for _, status := range allStatuses {
		if Status(value) == status {
			return true
		}
	}
	return false
}

// Video is one catalog row.
type Video struct {
	ID              int64
	VideoID         string
	URL             string
	Title           string
	Channel         string
	UploadDate      string
	DurationSeconds int64
	Status          Status
	ErrorMessage    string
	TranscriptPath  string
	CueCount        int64
	SegmentCount    int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AddRequest carries the metadata known at enqueue time.
type AddRequest struct {
	VideoID         string
	URL             string
	Title           string
	Channel         string
	UploadDate      string
	DurationSeconds int64
}

// Stats summarizes catalog contents per lifecycle state.
type Stats struct {
	Total      int
	Pending    int
	Fetching   int
	Completed  int
	NoCaptions int
	Failed     int
	Skipped    int
}

package ytdlp

import (
	"strings"
	"time"

	"ytscribe/internal/metadata"
)

// CaptionTrack is one downloadable caption rendition.
type CaptionTrack struct {
	Ext string `json:"ext"`
	URL string `json:"url"`
}

// VideoInfo is the subset of yt-dlp's JSON output ytscribe consumes. For
// channel or playlist URLs, Entries carries the per-video records instead.
type VideoInfo struct {
	ID                string                    `json:"id"`
	Title             string                    `json:"title"`
	Channel           string                    `json:"channel"`
	ChannelID         string                    `json:"channel_id"`
	Uploader          string                    `json:"uploader"`
	UploadDate        string                    `json:"upload_date"`
	Duration          float64                   `json:"duration"`
	ViewCount         int64                     `json:"view_count"`
	LikeCount         int64                     `json:"like_count"`
	CommentCount      int64                     `json:"comment_count"`
	Description       string                    `json:"description"`
	WebpageURL        string                    `json:"webpage_url"`
	Thumbnail         string                    `json:"thumbnail"`
	AutomaticCaptions map[string][]CaptionTrack `json:"automatic_captions"`
	Entries           []*VideoInfo              `json:"entries"`
}

// CanonicalURL returns the video's watch URL, reconstructing it from the ID
// when yt-dlp omits webpage_url.
func (v *VideoInfo) CanonicalURL() string {
	if strings.TrimSpace(v.WebpageURL) != "" {
		return v.WebpageURL
	}
	if v.ID == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + v.ID
}

// ChannelName prefers the channel field and falls back to the uploader.
func (v *VideoInfo) ChannelName() string {
	if strings.TrimSpace(v.Channel) != "" {
		return v.Channel
	}
	return v.Uploader
}

// MetadataRow converts the record into the fixed channel CSV layout. The
// upload date is rendered as ISO 8601; unparseable values pass through as-is.
func (v *VideoInfo) MetadataRow() metadata.Row {
	uploadDate := v.UploadDate
	if parsed, err := time.Parse("20060102", uploadDate); err == nil {
		uploadDate = parsed.Format("2006-01-02")
	}
	return metadata.Row{
		ChannelID:       v.ChannelID,
		ChannelName:     v.ChannelName(),
		VideoID:         v.ID,
		Title:           v.Title,
		UploadDate:      uploadDate,
		DurationSeconds: int64(v.Duration),
		ViewCount:       v.ViewCount,
		LikeCount:       v.LikeCount,
		CommentCount:    v.CommentCount,
		Description:     v.Description,
		VideoURL:        v.CanonicalURL(),
		ThumbnailURL:    v.Thumbnail,
	}
}

package metadata

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Row is one channel video's metadata as written to CSV.
type Row struct {
	ChannelID       string
	ChannelName     string
	VideoID         string
	Title           string
	UploadDate      string
	DurationSeconds int64
	ViewCount       int64
	LikeCount       int64
	CommentCount    int64
	Description     string
	VideoURL        string
	ThumbnailURL    string
}

// Columns is the fixed CSV header.
var Columns = []string{
	"channel_id",
	"channel_name",
	"video_id",
	"title",
	"upload_date",
	"duration_seconds",
	"view_count",
	"like_count",
	"comment_count",
	"description",
	"video_url",
	"thumbnail_url",
}

// WriteCSV writes the header followed by one record per row.
func WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.ChannelID,
			row.ChannelName,
			row.VideoID,
			row.Title,
			row.UploadDate,
			strconv.FormatInt(row.DurationSeconds, 10),
			strconv.FormatInt(row.ViewCount, 10),
			strconv.FormatInt(row.LikeCount, 10),
			strconv.FormatInt(row.CommentCount, 10),
			row.Description,
			row.VideoURL,
			row.ThumbnailURL,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row for %s: %w", row.VideoID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ReadCSV parses rows previously produced by WriteCSV. The header is matched
// by name, so extra columns added by spreadsheet tools are tolerated.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	index := map[string]int{}
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := index["video_id"]; !ok {
		return nil, fmt.Errorf("csv header missing video_id column")
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}
	number := func(record []string, name string) int64 {
		value, err := strconv.ParseInt(strings.TrimSpace(field(record, name)), 10, 64)
		if err != nil {
			return 0
		}
		return value
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		row := Row{
			ChannelID:       field(record, "channel_id"),
			ChannelName:     field(record, "channel_name"),
			VideoID:         strings.TrimSpace(field(record, "video_id")),
			Title:           field(record, "title"),
			UploadDate:      field(record, "upload_date"),
			DurationSeconds: number(record, "duration_seconds"),
			ViewCount:       number(record, "view_count"),
			LikeCount:       number(record, "like_count"),
			CommentCount:    number(record, "comment_count"),
			Description:     field(record, "description"),
			VideoURL:        field(record, "video_url"),
			ThumbnailURL:    field(record, "thumbnail_url"),
		}
		if row.VideoID == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

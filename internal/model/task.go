package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DownloadTask represents a single file download handed to the download service
type DownloadTask struct {
	ID         string
	URL        string
	Filename   string // suggested file name
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0, stays 0 when the size is unknown
	Percent    int     // 0 to 100
	BytesDone  int64
	BytesTotal int64     // -1 if the server sent no Content-Length
	LastError  string    // last error message if any
	OutputPath string    // path to the saved file
	StartedAt  time.Time // when the task was queued
	FinishedAt time.Time // when the task finished
}

// GetSizeString returns the downloaded size in a compact human form
func (dt *DownloadTask) GetSizeString() string {
	if dt.BytesDone <= 0 {
		return "—"
	}
	return formatBytes(dt.BytesDone)
}

// GetDisplayTitle returns the saved file name, the suggested name or the URL
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.OutputPath != "" {
		return filepath.Base(dt.OutputPath)
	}
	if dt.Filename != "" {
		return dt.Filename
	}
	return dt.URL
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	var b strings.Builder
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	b.WriteString(fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp]))
	return b.String()
}

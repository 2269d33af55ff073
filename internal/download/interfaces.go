package download

import (
	"context"
	"net/http"

	"github.com/hanja-api/wallpaper-preview/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))
	Enqueue(url, filename string) (*model.DownloadTask, error)
	GetTask(id string) (*model.DownloadTask, bool)
	GetAllTasks() []*model.DownloadTask
	StopTask(id string) error
	RestartTask(id string) error
	RemoveTask(id string) error

	// SetMaxParallelDownloads sets the maximum number of parallel downloads
	SetMaxParallelDownloads(max int)

	// SetDownloadDirectory sets the download directory
	SetDownloadDirectory(dir string)
}

// Getter issues GET requests for (possibly relative) URLs. Implementations
// return an error for non-2xx responses.
type Getter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

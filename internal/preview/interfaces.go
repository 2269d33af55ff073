package preview

import (
	"context"

	"github.com/hanja-api/wallpaper-preview/internal/model"
	"github.com/hanja-api/wallpaper-preview/internal/wallpaper"
)

// View is the preview area. ShowLoading is called on the goroutine that
// triggered the fetch; ShowPreview and ShowError may arrive on any goroutine
// and must not paint once current reports false.
type View interface {
	ShowLoading()
	ShowPreview(svg []byte, viewBox wallpaper.ViewBox, current func() bool)
	ShowError(current func() bool)
}

// Form reads the current values of the input controls
type Form interface {
	Query() model.Query
}

// Fetcher fetches an SVG preview for a relative wallpaper URL
type Fetcher interface {
	FetchPreview(ctx context.Context, ref string) (*wallpaper.Preview, error)
}

// Downloader takes a URL and a suggested file name and saves the file
// somewhere the user can find it.
type Downloader interface {
	Enqueue(url, filename string) (*model.DownloadTask, error)
}

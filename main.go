package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/hanja-api/wallpaper-preview/internal/config"
	"github.com/hanja-api/wallpaper-preview/internal/download"
	"github.com/hanja-api/wallpaper-preview/internal/platform"
	"github.com/hanja-api/wallpaper-preview/internal/ui"
	"github.com/hanja-api/wallpaper-preview/internal/wallpaper"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "io.github.hanja-api.wallpaper-preview"
	AppName = "Hanja Wallpaper"

	WindowWidth  = 760
	WindowHeight = 860
)

func main() {
	log.Printf("%s v%s starting...", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	overrides, err := config.ParseEnv()
	if err != nil {
		log.Printf("Ignoring environment overrides: %v", err)
	}
	settings := config.NewSettings(myApp).WithEnv(overrides)

	client, err := wallpaper.NewClient(settings.GetAPIBaseURL(), settings.GetAPIKey(), nil)
	if err != nil {
		log.Printf("Invalid API URL %q, using %s: %v", settings.GetAPIBaseURL(), config.DefaultAPIBaseURL, err)
		client, err = wallpaper.NewClient(config.DefaultAPIBaseURL, settings.GetAPIKey(), nil)
		if err != nil {
			log.Fatalf("failed to create API client: %v", err)
		}
	}
	backend := wallpaper.NewBackend(client)

	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		log.Printf("failed to ensure downloads dir: %v", err)
	}
	downloadSvc := download.NewService(backend, downloadsDir, settings.GetMaxParallelDownloads())

	root := ui.NewRootUI(myWindow, myApp, settings, backend, downloadSvc)
	root.Load()

	myWindow.ShowAndRun()
}

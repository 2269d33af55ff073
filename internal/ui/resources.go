package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
)

const (
	AppIcon = "hanja-wallpaper.png"
)

// LoadLogoResource loads the logo from file path
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}

// initIcons sets the window and app icon and returns the logo for the
// top bar. Without the logo file on disk the theme's media icon is used.
func initIcons(app fyne.App, window fyne.Window) *canvas.Image {
	logo, err := LoadLogoResource()
	if err != nil {
		log.Printf("Logo %s not found, using theme icon: %v", AppIcon, err)
		logo = theme.MediaPhotoIcon()
	} else {
		app.SetIcon(logo)
		window.SetIcon(logo)
	}

	img := canvas.NewImageFromResource(logo)
	img.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
	img.FillMode = canvas.ImageFillContain
	return img
}

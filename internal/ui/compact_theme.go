package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Wallpaper palette, matching what the backend renders
var (
	WallpaperBackground = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	WallpaperText       = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	WallpaperSecondary  = color.RGBA{R: 180, G: 180, B: 190, A: 255}
	PreviewErrorColor   = color.RGBA{R: 183, G: 28, B: 28, A: 255}
)

// CompactTheme is a dark, tightly padded theme so the preview gets most of the window
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors; the app always renders the dark variant
func (t *CompactTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.RGBA{R: 18, G: 18, B: 18, A: 255}
	case theme.ColorNameForeground:
		return WallpaperText
	case theme.ColorNamePlaceHolder, theme.ColorNameDisabled:
		return WallpaperSecondary
	case theme.ColorNameError:
		return PreviewErrorColor
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNamePrimary:
		return color.RGBA{R: 25, G: 118, B: 210, A: 255}
	}

	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	}

	return theme.DefaultTheme().Size(name)
}

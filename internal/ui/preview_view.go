package ui

import (
	"fmt"
	"image/color"
	"log"
	"strconv"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/colornames"

	"github.com/hanja-api/wallpaper-preview/internal/wallpaper"
)

// PreviewView shows the wallpaper SVG, a loading indicator or an error.
// It implements preview.View.
type PreviewView struct {
	localization *Localization

	image        *canvas.Image
	overlay      *fyne.Container
	loadingLabel *widget.Label
	spinner      *widget.ProgressBarInfinite
	loadingBox   *fyne.Container
	errorLabel   *widget.Label
	content      *fyne.Container

	mu     sync.Mutex
	shown  int
	markup []byte
}

// NewPreviewView creates an empty preview area
func NewPreviewView(localization *Localization) *PreviewView {
	v := &PreviewView{localization: localization}

	v.image = canvas.NewImageFromResource(nil)
	v.image.FillMode = canvas.ImageFillContain
	v.image.SetMinSize(previewSize(PreviewFallbackRate))
	v.image.Hide()

	// The SVG rasteriser ignores <text>, so glyphs are drawn on top
	v.overlay = container.New(&textOverlay{})
	v.overlay.Hide()

	v.loadingLabel = widget.NewLabel(localization.GetText(KeyLoadingPreview))
	v.loadingLabel.Alignment = fyne.TextAlignCenter
	v.spinner = widget.NewProgressBarInfinite()
	v.spinner.Stop()
	v.loadingBox = container.NewVBox(v.loadingLabel, v.spinner)
	v.loadingBox.Hide()

	v.errorLabel = widget.NewLabel(localization.GetText(KeyErrorLoadingPreview))
	v.errorLabel.Importance = widget.DangerImportance
	v.errorLabel.Alignment = fyne.TextAlignCenter
	v.errorLabel.Hide()

	v.content = container.NewStack(
		container.NewCenter(container.NewStack(v.image, v.overlay)),
		container.NewCenter(v.loadingBox),
		container.NewCenter(v.errorLabel),
	)
	return v
}

// Container returns the canvas object to place in the window
func (v *PreviewView) Container() fyne.CanvasObject {
	return v.content
}

// ShowLoading replaces the preview area with the loading indicator. It runs
// on the UI goroutine.
func (v *PreviewView) ShowLoading() {
	v.image.Hide()
	v.overlay.Hide()
	v.errorLabel.Hide()
	v.spinner.Start()
	v.loadingBox.Show()
}

// ShowPreview displays the SVG body as returned by the backend. Nothing is
// painted if current reports false once on the UI goroutine.
func (v *PreviewView) ShowPreview(svg []byte, viewBox wallpaper.ViewBox, current func() bool) {
	nodes, err := wallpaper.ExtractText(svg)
	if err != nil {
		log.Printf("Error reading preview text: %v", err)
	}

	rate := viewBox.AspectRatio()
	if rate <= 0 {
		rate = PreviewFallbackRate
	}

	fyne.Do(func() {
		if !current() {
			return
		}

		v.mu.Lock()
		v.shown++
		// Fyne caches rasterised SVGs by resource name
		name := fmt.Sprintf("wallpaper-%d.svg", v.shown)
		v.markup = svg
		v.mu.Unlock()

		v.spinner.Stop()
		v.loadingBox.Hide()
		v.errorLabel.Hide()
		v.image.Resource = fyne.NewStaticResource(name, svg)
		v.image.SetMinSize(previewSize(rate))
		v.image.Show()
		v.image.Refresh()

		v.overlay.Layout = &textOverlay{viewBox: viewBox, nodes: nodes}
		v.overlay.Objects = overlayTexts(nodes)
		v.overlay.Show()
		v.overlay.Refresh()
	})
}

// ShowError replaces the preview area with the error text
func (v *PreviewView) ShowError(current func() bool) {
	fyne.Do(func() {
		if !current() {
			return
		}
		v.spinner.Stop()
		v.loadingBox.Hide()
		v.image.Hide()
		v.overlay.Hide()
		v.errorLabel.Show()
	})
}

// Markup returns the SVG body currently on display
func (v *PreviewView) Markup() []byte {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.markup
}

// RefreshTexts re-reads localized labels
func (v *PreviewView) RefreshTexts() {
	v.loadingLabel.SetText(v.localization.GetText(KeyLoadingPreview))
	v.errorLabel.SetText(v.localization.GetText(KeyErrorLoadingPreview))
}

func previewSize(rate float64) fyne.Size {
	w := PreviewHeight * float32(rate)
	if w < PreviewMinWidth {
		w = PreviewMinWidth
	}
	return fyne.NewSize(w, PreviewHeight)
}

func overlayTexts(nodes []wallpaper.TextNode) []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, len(nodes))
	for _, n := range nodes {
		objects = append(objects, canvas.NewText(n.Text, fillColor(n.Fill)))
	}
	return objects
}

// textOverlay places one canvas.Text per SVG text node over an image drawn
// with ImageFillContain, so view box coordinates map the same way.
type textOverlay struct {
	viewBox wallpaper.ViewBox
	nodes   []wallpaper.TextNode
}

func (l *textOverlay) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	vbW, vbH := float32(l.viewBox.W), float32(l.viewBox.H)
	if vbW <= 0 || vbH <= 0 {
		return
	}

	scale := size.Width / vbW
	if s := size.Height / vbH; s < scale {
		scale = s
	}
	offX := (size.Width - vbW*scale) / 2
	offY := (size.Height - vbH*scale) / 2

	for i, o := range objects {
		if i >= len(l.nodes) {
			break
		}
		txt, ok := o.(*canvas.Text)
		if !ok {
			continue
		}
		n := l.nodes[i]

		txt.TextSize = float32(n.FontSize) * scale
		txt.Refresh()
		sz := txt.MinSize()

		x := offX + float32(n.X-l.viewBox.X)*scale
		y := offY + float32(n.Y-l.viewBox.Y)*scale
		switch n.Anchor {
		case "middle":
			x -= sz.Width / 2
		case "end":
			x -= sz.Width
		}
		switch n.Baseline {
		case "middle", "central":
			y -= sz.Height / 2
		default:
			// y is the alphabetic baseline
			y -= sz.Height * 0.8
		}

		txt.Move(fyne.NewPos(x, y))
		txt.Resize(sz)
	}
}

func (l *textOverlay) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(0, 0)
}

// fillColor converts an SVG fill to a colour: #rgb, #rrggbb or a named
// colour. Anything else falls back to the wallpaper text colour.
func fillColor(fill string) color.Color {
	fill = strings.ToLower(strings.TrimSpace(fill))
	if c, ok := colornames.Map[fill]; ok {
		return c
	}
	hex, ok := strings.CutPrefix(fill, "#")
	if !ok {
		return WallpaperText
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return WallpaperText
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return WallpaperText
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

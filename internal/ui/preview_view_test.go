package ui

import (
	"image/color"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanja-api/wallpaper-preview/internal/wallpaper"
)

func always() bool { return true }

const glyphSVG = `<?xml version="1.0" encoding="utf-8" ?>
<svg baseProfile="tiny" height="2340" version="1.2" width="1080" xmlns="http://www.w3.org/2000/svg"><defs /><rect fill="#000000" height="2340" width="1080" x="0" y="0" /><text alignment-baseline="middle" fill="#F0F0F0" font-size="600" text-anchor="middle" x="540.0" y="900">学</text></svg>`

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1080 2340"><rect width="1080" height="2340" fill="#000"/></svg>`

func TestPreviewView_States(t *testing.T) {
	test.NewApp()
	v := NewPreviewView(NewLocalization())

	v.ShowLoading()
	assert.True(t, v.loadingBox.Visible())
	assert.False(t, v.image.Visible())
	assert.False(t, v.errorLabel.Visible())

	v.ShowPreview([]byte(testSVG), wallpaper.ViewBox{W: 1080, H: 2340}, always)
	assert.Eventually(t, v.image.Visible, time.Second, 10*time.Millisecond)
	assert.False(t, v.loadingBox.Visible())
	assert.Equal(t, testSVG, string(v.Markup()))
	assert.Equal(t, testSVG, string(v.image.Resource.Content()))
	assert.InDelta(t, PreviewHeight*1080/2340, v.image.MinSize().Width, 0.5)

	v.ShowError(always)
	assert.Eventually(t, v.errorLabel.Visible, time.Second, 10*time.Millisecond)
	assert.False(t, v.image.Visible())
	assert.False(t, v.loadingBox.Visible())
}

func TestPreviewView_UniqueResourceNames(t *testing.T) {
	test.NewApp()
	v := NewPreviewView(NewLocalization())

	v.ShowPreview([]byte(testSVG), wallpaper.ViewBox{W: 1, H: 2}, always)
	assert.Eventually(t, func() bool { return v.image.Resource != nil }, time.Second, 10*time.Millisecond)
	first := v.image.Resource.Name()

	v.ShowPreview([]byte(testSVG), wallpaper.ViewBox{W: 1, H: 2}, always)
	assert.Eventually(t, func() bool { return v.image.Resource.Name() != first }, time.Second, 10*time.Millisecond)
}

func TestPreviewView_GlyphsDrawnOverImage(t *testing.T) {
	test.NewApp()
	v := NewPreviewView(NewLocalization())

	v.ShowPreview([]byte(glyphSVG), wallpaper.ViewBox{W: 1080, H: 2340}, always)
	assert.Eventually(t, v.overlay.Visible, time.Second, 10*time.Millisecond)
	require.Len(t, v.overlay.Objects, 1)

	glyph, ok := v.overlay.Objects[0].(*canvas.Text)
	require.True(t, ok)
	assert.Equal(t, "学", glyph.Text)
	assert.Equal(t, color.RGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 255}, glyph.Color)

	// One view box unit per tenth of a pixel
	v.overlay.Resize(fyne.NewSize(108, 234))
	assert.InDelta(t, 60, glyph.TextSize, 0.01)
	center := glyph.Position().AddXY(glyph.Size().Width/2, glyph.Size().Height/2)
	assert.InDelta(t, 54, center.X, 0.5)
	assert.InDelta(t, 90, center.Y, 0.5)

	v.ShowLoading()
	assert.False(t, v.overlay.Visible())
}

func TestPreviewView_StalePaintIsSkipped(t *testing.T) {
	test.NewApp()
	v := NewPreviewView(NewLocalization())

	v.ShowLoading()
	v.ShowPreview([]byte(glyphSVG), wallpaper.ViewBox{W: 1080, H: 2340}, func() bool { return false })
	v.ShowError(func() bool { return false })

	done := make(chan struct{})
	fyne.Do(func() { close(done) })
	<-done

	assert.True(t, v.loadingBox.Visible())
	assert.False(t, v.image.Visible())
	assert.False(t, v.errorLabel.Visible())
	assert.Nil(t, v.Markup())
}

func TestFillColor(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0xB4, G: 0xB4, B: 0xBE, A: 255}, fillColor("#B4B4BE"))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, fillColor("#fff"))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, fillColor("white"))
	assert.Equal(t, WallpaperText, fillColor(""))
	assert.Equal(t, WallpaperText, fillColor("#12345"))
}

func TestPreviewSize_NarrowAspectUsesMinWidth(t *testing.T) {
	size := previewSize(0.01)
	assert.Equal(t, PreviewMinWidth, size.Width)
	assert.Equal(t, PreviewHeight, size.Height)
}

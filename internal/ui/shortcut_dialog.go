package ui

import (
	"bytes"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/hanja-api/wallpaper-preview/internal/model"
	"github.com/hanja-api/wallpaper-preview/internal/wallpaper"
)

// nopCloser lets the QR writer target an in-memory buffer
type nopCloser struct {
	*bytes.Buffer
}

func (nopCloser) Close() error { return nil }

// generateQRCode renders text as a PNG QR code
func generateQRCode(text string) ([]byte, error) {
	qrc, err := qrcode.NewWith(text,
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium),
		qrcode.WithEncodingMode(qrcode.EncModeByte),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	buf := &bytes.Buffer{}
	w := standard.NewWithWriter(nopCloser{Buffer: buf},
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(QRCodeModuleWidth),
	)
	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return buf.Bytes(), nil
}

// shortcutLink is the absolute shortcut URL for the current form values
type shortcutLink struct {
	Ref      string // relative, for the download service
	Absolute string // for the QR code and clipboard
	Filename string
}

func newShortcutLink(client *wallpaper.Client, q model.Query, refreshMinutes int) (shortcutLink, error) {
	ref := wallpaper.ShortcutURL(q, client.APIRoot(), refreshMinutes)
	abs, err := client.Resolve(ref)
	if err != nil {
		return shortcutLink{}, err
	}
	return shortcutLink{
		Ref:      ref,
		Absolute: abs,
		Filename: wallpaper.ShortcutFilename(q.CharacterList),
	}, nil
}

// showShortcutDialog shows a QR code for installing the Apple Shortcut on an
// iPhone, plus actions to save the file or copy the link.
func (ui *RootUI) showShortcutDialog() {
	l := ui.localization
	link, err := newShortcutLink(ui.backend.Client(), ui.Query(), ui.settings.GetShortcutRefreshMinutes())
	if err != nil {
		log.Printf("Failed to build shortcut URL: %v", err)
		dialog.ShowError(err, ui.window)
		return
	}

	png, err := generateQRCode(link.Absolute)
	if err != nil {
		log.Printf("Failed to generate QR code: %v", err)
		dialog.ShowError(err, ui.window)
		return
	}

	qr := canvas.NewImageFromResource(fyne.NewStaticResource("shortcut-qr.png", png))
	qr.FillMode = canvas.ImageFillContain
	qr.SetMinSize(fyne.NewSize(QRCodeSize, QRCodeSize))

	linkLabel := widget.NewLabel(link.Absolute)
	linkLabel.Wrapping = fyne.TextWrapBreak

	var dlg dialog.Dialog
	saveBtn := widget.NewButton(l.GetText(KeySaveShortcut), func() {
		ui.enqueue(link.Ref, link.Filename)
		dlg.Hide()
	})
	saveBtn.Importance = widget.HighImportance
	copyBtn := widget.NewButton(l.GetText(KeyCopyLink), func() {
		ui.app.Clipboard().SetContent(link.Absolute)
		ui.showNotification(l.GetText(KeyLinkCopied))
	})

	content := container.NewVBox(
		widget.NewLabel(l.GetText(KeyShortcutScan)),
		container.NewCenter(qr),
		linkLabel,
		container.NewHBox(saveBtn, copyBtn),
	)
	dlg = dialog.NewCustom(IconPhone+" "+l.GetText(KeyShortcut), l.GetText(KeyCancel), content, ui.window)
	dlg.Show()
}

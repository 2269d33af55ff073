package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/hanja-api/wallpaper-preview/internal/config"
	"github.com/hanja-api/wallpaper-preview/internal/wallpaper"
)

// Dialog size constants
const (
	SettingsDialogWidth  = 520
	SettingsDialogHeight = 460
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	apiURLEntry      *widget.Entry
	apiKeyEntry      *widget.Entry
	downloadDirEntry *widget.Entry
	maxParallelEntry *widget.Entry
	refreshEntry     *widget.Entry
	autoRevealCheck  *widget.Check
	languageSelect   *widget.Select

	languageCodes map[string]string // display name -> code
}

// NewSettingsDialog creates a new settings dialog. onSaved runs on the UI
// goroutine after the preferences were written.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.apiURLEntry = widget.NewEntry()
	sd.apiURLEntry.SetPlaceHolder(config.DefaultAPIBaseURL)
	sd.apiURLEntry.Validator = validateBaseURL

	sd.apiKeyEntry = widget.NewPasswordEntry()

	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder("1-10")

	sd.refreshEntry = widget.NewEntry()
	sd.refreshEntry.SetPlaceHolder("0")

	sd.autoRevealCheck = widget.NewCheck(l.GetText(KeyAutoReveal), nil)

	sd.languageCodes = make(map[string]string)
	var languageNames []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageNames = append(languageNames, name)
	}
	sort.Strings(languageNames)
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	form := container.NewVBox(
		widget.NewLabel(l.GetText(KeyAPIBaseURL)+":"),
		sd.apiURLEntry,
		widget.NewLabel(l.GetText(KeyAPIKey)+":"),
		sd.apiKeyEntry,

		widget.NewSeparator(),

		widget.NewLabel(l.GetText(KeyDownloadDirectory)+":"),
		downloadDirRow,
		widget.NewLabel(l.GetText(KeyMaxParallel)+":"),
		sd.maxParallelEntry,
		sd.autoRevealCheck,

		widget.NewSeparator(),

		widget.NewLabel(l.GetText(KeyShortcutRefresh)+":"),
		sd.refreshEntry,
		widget.NewLabel(l.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.apiURLEntry.SetText(sd.settings.GetAPIBaseURL())
	sd.apiKeyEntry.SetText(sd.settings.GetAPIKey())
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelDownloads()))
	sd.refreshEntry.SetText(strconv.Itoa(sd.settings.GetShortcutRefreshMinutes()))
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if err := validateBaseURL(sd.apiURLEntry.Text); err != nil {
		dialog.ShowError(err, sd.window)
		return
	}
	sd.settings.SetAPIBaseURL(sd.apiURLEntry.Text)
	sd.settings.SetAPIKey(sd.apiKeyEntry.Text)

	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	if n, err := strconv.Atoi(sd.maxParallelEntry.Text); err == nil {
		sd.settings.SetMaxParallelDownloads(n)
	}

	if n, err := strconv.Atoi(sd.refreshEntry.Text); err == nil {
		sd.settings.SetShortcutRefreshMinutes(n)
	}

	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// validateBaseURL accepts blank (restores the default) or an http(s) origin
func validateBaseURL(input string) error {
	if input == "" {
		return nil
	}
	_, err := wallpaper.NewClient(input, "", nil)
	return err
}

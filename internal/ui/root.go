package ui

import (
	"context"
	"errors"
	"image/color"
	"log"
	"slices"
	"sort"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/hanja-api/wallpaper-preview/internal/config"
	"github.com/hanja-api/wallpaper-preview/internal/download"
	"github.com/hanja-api/wallpaper-preview/internal/model"
	"github.com/hanja-api/wallpaper-preview/internal/platform"
	"github.com/hanja-api/wallpaper-preview/internal/preview"
	"github.com/hanja-api/wallpaper-preview/internal/wallpaper"
)

// ModelsRequestTimeout bounds the background device model lookup
const ModelsRequestTimeout = 10 * time.Second

// RootUI represents the main UI structure. It is the preview form: the
// controller reads the select and entry values through Query.
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	backend      *wallpaper.Backend
	downloadSvc  download.Downloader
	localization *Localization
	controller   *preview.Controller
	view         *PreviewView

	characterListSelect *widget.Select
	deviceModelSelect   *widget.Select
	characterIDEntry    *widget.Entry
	refreshBtn          *widget.Button
	downloadBtn         *widget.Button
	shortcutBtn         *widget.Button
	topLeft             *fyne.Container
	characterListLabel  *widget.Label
	deviceModelLabel    *widget.Label
	characterIDLabel    *widget.Label
	downloadsLabel      *widget.Label

	taskList   *widget.List
	tasks      []*model.DownloadTask
	lastStatus map[string]model.TaskStatus

	idTimerMu sync.Mutex
	idTimer   *time.Timer

	// committedID is the id text last handed to the controller; UI goroutine only
	committedID string

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
}

// NewRootUI creates the main UI and sets it as the window content. Call
// Load once the window is about to be shown.
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, backend *wallpaper.Backend, downloadSvc download.Downloader) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		backend:      backend,
		downloadSvc:  downloadSvc,
		localization: localization,
		lastStatus:   make(map[string]model.TaskStatus),
	}

	ui.view = NewPreviewView(localization)
	ui.controller = preview.NewController(ui.view, ui, backend, ui)

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.downloadSvc.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()
	return ui
}

// Load initialises icons, shows the first preview and fetches the
// backend's device models in the background.
func (ui *RootUI) Load() {
	logo := initIcons(ui.app, ui.window)
	ui.topLeft.Objects = append([]fyne.CanvasObject{logo}, ui.topLeft.Objects...)
	ui.topLeft.Refresh()

	ui.controller.Load()
	go ui.loadDeviceModels()
}

// Controller exposes the preview controller
func (ui *RootUI) Controller() *preview.Controller {
	return ui.controller
}

// Query returns the current form values
func (ui *RootUI) Query() model.Query {
	return model.Query{
		CharacterList: ui.characterListSelect.Selected,
		DeviceModel:   ui.deviceModelSelect.Selected,
		CharacterID:   ui.characterIDEntry.Text,
	}
}

// Enqueue hands a download to the download service and reports the outcome
func (ui *RootUI) Enqueue(url, filename string) (*model.DownloadTask, error) {
	task, err := ui.downloadSvc.Enqueue(url, filename)
	if err != nil {
		log.Printf("Failed to enqueue %s: %v", filename, err)
		if errors.Is(err, download.ErrAlreadyQueued) {
			ui.showNotification(ui.localization.GetText(KeyAlreadyInQueue))
		} else {
			ui.showNotification(IconError + " " + err.Error())
		}
		return nil, err
	}
	ui.showNotification(ui.localization.GetText(KeyDownloadStarted) + MiddleDotSeparator + task.Filename)
	ui.refreshTasks()
	return task, nil
}

func (ui *RootUI) enqueue(url, filename string) {
	_, _ = ui.Enqueue(url, filename)
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	l := ui.localization
	ui.createMenu()

	ui.characterListLabel = widget.NewLabel(l.GetText(KeyCharacterList))
	ui.characterListSelect = widget.NewSelect(model.CharacterLists(), nil)
	ui.characterListSelect.SetSelected(ui.settings.GetCharacterList())
	ui.characterListSelect.OnChanged = ui.onCharacterListChanged

	ui.deviceModelLabel = widget.NewLabel(l.GetText(KeyDeviceModel))
	ui.deviceModelSelect = widget.NewSelect(nil, nil)
	ui.setDeviceModels(wallpaper.ModelNames(wallpaper.DefaultModels()))
	ui.deviceModelSelect.SetSelected(ui.settings.GetDeviceModel())
	ui.deviceModelSelect.OnChanged = ui.onDeviceModelChanged

	ui.characterIDLabel = widget.NewLabel(l.GetText(KeyCharacterID))
	ui.characterIDEntry = widget.NewEntry()
	ui.characterIDEntry.SetPlaceHolder(l.GetText(KeyCharacterIDHint))
	ui.characterIDEntry.OnChanged = func(string) { ui.scheduleCharacterIDChange() }
	ui.characterIDEntry.OnSubmitted = func(string) { ui.commitCharacterIDChange() }

	ui.refreshBtn = widget.NewButton(IconRefresh+" "+l.GetText(KeyRefresh), ui.controller.Refresh)
	ui.downloadBtn = widget.NewButton(l.GetText(KeyDownload), ui.controller.Download)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.shortcutBtn = widget.NewButton(IconPhone+" "+l.GetText(KeyShortcut), ui.showShortcutDialog)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	form := container.NewAdaptiveGrid(3,
		container.NewVBox(ui.characterListLabel, ui.characterListSelect),
		container.NewVBox(ui.deviceModelLabel, ui.deviceModelSelect),
		container.NewVBox(ui.characterIDLabel, ui.characterIDEntry),
	)
	ui.topLeft = container.NewHBox(settingsBtn)
	actions := container.NewHBox(ui.refreshBtn, ui.downloadBtn, ui.shortcutBtn)
	topPanel := container.NewBorder(nil, nil, ui.topLeft, nil, form)

	// Notification panel under the controls (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationContainer = container.NewPadded(ui.notificationLabel)
	ui.notificationContainer.Hide()

	top := container.NewVBox(topPanel, container.NewCenter(actions), ui.notificationContainer)

	ui.downloadsLabel = widget.NewLabel(l.GetText(KeyDownloads))
	ui.downloadsLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.taskList = widget.NewList(
		func() int { return len(ui.tasks) },
		ui.createTaskItem,
		ui.updateTaskItem,
	)
	listHeight := canvas.NewRectangle(color.Transparent)
	listHeight.SetMinSize(fyne.NewSize(0, DownloadsHeight))
	listArea := container.NewStack(listHeight, ui.taskList)
	bottom := container.NewVBox(widget.NewSeparator(), ui.downloadsLabel, listArea)

	content := container.NewBorder(top, bottom, nil, nil, NewSwipeArea(ui.view.Container(), ui.onPreviewGesture))
	ui.window.SetContent(content)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	available := ui.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(available))
	for code := range available {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		langCode := code
		item := fyne.NewMenuItem(available[code], func() {
			ui.onLanguageChange(langCode)
		})
		item.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, item)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.characterListLabel.SetText(l.GetText(KeyCharacterList))
	ui.deviceModelLabel.SetText(l.GetText(KeyDeviceModel))
	ui.characterIDLabel.SetText(l.GetText(KeyCharacterID))
	ui.characterIDEntry.SetPlaceHolder(l.GetText(KeyCharacterIDHint))
	ui.refreshBtn.SetText(IconRefresh + " " + l.GetText(KeyRefresh))
	ui.downloadBtn.SetText(l.GetText(KeyDownload))
	ui.shortcutBtn.SetText(IconPhone + " " + l.GetText(KeyShortcut))
	ui.downloadsLabel.SetText(l.GetText(KeyDownloads))
	ui.view.RefreshTexts()
	ui.taskList.Refresh()
}

func (ui *RootUI) onCharacterListChanged(list string) {
	ui.settings.SetCharacterList(list)
	ui.controller.OnCharacterListChanged()
}

func (ui *RootUI) onDeviceModelChanged(name string) {
	ui.settings.SetDeviceModel(name)
	ui.controller.OnDeviceModelChanged()
}

// scheduleCharacterIDChange waits for typing to pause before fetching
func (ui *RootUI) scheduleCharacterIDChange() {
	ui.idTimerMu.Lock()
	defer ui.idTimerMu.Unlock()
	if ui.idTimer != nil {
		ui.idTimer.Stop()
	}
	ui.idTimer = time.AfterFunc(CharacterIDDebounce, func() {
		fyne.Do(ui.commitCharacterIDChange)
	})
}

// commitCharacterIDChange fires the id change right away (Enter pressed or
// the debounce elapsed).
func (ui *RootUI) commitCharacterIDChange() {
	ui.idTimerMu.Lock()
	if ui.idTimer != nil {
		ui.idTimer.Stop()
		ui.idTimer = nil
	}
	ui.idTimerMu.Unlock()

	text := ui.characterIDEntry.Text
	if text == ui.committedID {
		return
	}
	ui.committedID = text
	ui.controller.OnCharacterIDChanged()
}

// loadDeviceModels replaces the built-in model list with the backend's
func (ui *RootUI) loadDeviceModels() {
	ctx, cancel := context.WithTimeout(context.Background(), ModelsRequestTimeout)
	defer cancel()

	names := wallpaper.ModelNames(wallpaper.ModelsOrDefault(ctx, ui.backend.Client()))
	fyne.Do(func() {
		ui.setDeviceModels(names)
	})
}

// setDeviceModels swaps the options without firing OnChanged. The stored
// model stays selectable even when the list does not know it.
func (ui *RootUI) setDeviceModels(names []string) {
	if len(names) == 0 {
		return
	}
	current := ui.deviceModelSelect.Selected
	if current == "" {
		current = ui.settings.GetDeviceModel()
	}
	if !slices.Contains(names, current) {
		names = append(names, current)
	}
	ui.deviceModelSelect.Options = names
	ui.deviceModelSelect.Refresh()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.applySettings).Show()
}

// applySettings pushes saved preferences into the running services
func (ui *RootUI) applySettings() {
	if err := ui.backend.Reconfigure(ui.settings.GetAPIBaseURL(), ui.settings.GetAPIKey(), nil); err != nil {
		log.Printf("Keeping previous API client: %v", err)
	}

	dir := ui.settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		log.Printf("Failed to create download directory %s: %v", dir, err)
	}
	ui.downloadSvc.SetDownloadDirectory(dir)
	ui.downloadSvc.SetMaxParallelDownloads(ui.settings.GetMaxParallelDownloads())

	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()

	ui.controller.Preview()
	go ui.loadDeviceModels()
}

// showNotification displays a message in the panel under the controls
// and hides it again after a while.
func (ui *RootUI) showNotification(message string) {
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		ui.notificationContainer.Show()
	})

	time.AfterFunc(ToastAutoHide, func() {
		fyne.Do(func() {
			if ui.notificationLabel.Text == message {
				ui.notificationContainer.Hide()
			}
		})
	})
}

// createTaskItem creates a new task item widget
func (ui *RootUI) createTaskItem() fyne.CanvasObject {
	row := NewDownloadRow(nil, ui.localization)
	row.SetCallbacks(ui.onStopRetryTask, ui.onRevealFile, ui.onOpenFile, ui.onRemoveTask)
	return row
}

// updateTaskItem binds the list item to the task at index id
func (ui *RootUI) updateTaskItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id < 0 || id >= len(ui.tasks) {
		return
	}
	if row, ok := item.(*DownloadRow); ok {
		row.UpdateTask(ui.tasks[id])
	}
}

// refreshTasks reloads the task snapshot. Call on the UI goroutine.
func (ui *RootUI) refreshTasks() {
	ui.tasks = ui.downloadSvc.GetAllTasks()
	ui.taskList.Refresh()
}

// onStopRetryTask stops an active task or restarts a finished one
func (ui *RootUI) onStopRetryTask(task *model.DownloadTask) {
	var err error
	switch {
	case task.Status.CanStop():
		err = ui.downloadSvc.StopTask(task.ID)
	case task.Status.CanRetry():
		err = ui.downloadSvc.RestartTask(task.ID)
	default:
		return
	}
	if err != nil {
		log.Printf("Stop/retry failed for task %s: %v", task.ID, err)
		ui.showNotification(IconError + " " + err.Error())
	}
	ui.refreshTasks()
}

// onRevealFile reveals a saved file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onOpenFile opens a saved file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Error opening file %s: %v", filePath, err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onRemoveTask removes a task from the list
func (ui *RootUI) onRemoveTask(taskID string) {
	if err := ui.downloadSvc.RemoveTask(taskID); err != nil {
		log.Printf("Error removing task %s: %v", taskID, err)
		ui.showNotification(IconError + " " + err.Error())
		return
	}
	delete(ui.lastStatus, taskID)
	ui.refreshTasks()
}

// onTaskUpdate handles task updates from the download service
func (ui *RootUI) onTaskUpdate(task *model.DownloadTask) {
	fyne.Do(func() {
		previous := ui.lastStatus[task.ID]
		ui.lastStatus[task.ID] = task.Status
		ui.refreshTasks()

		if task.Status == model.TaskStatusCompleted && previous != model.TaskStatusCompleted {
			ui.onDownloadCompleted(task)
		}
	})
}

// onDownloadCompleted notifies the user and optionally reveals the file
func (ui *RootUI) onDownloadCompleted(task *model.DownloadTask) {
	log.Printf("Task %s completed, OutputPath: %s", task.ID, task.OutputPath)

	ui.app.SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyDownloadCompleted),
		Content: task.GetDisplayTitle(),
	})
	ui.showNotification(ui.localization.GetText(KeyDownloadCompleted) + MiddleDotSeparator + task.GetDisplayTitle())

	if ui.settings.GetAutoRevealOnComplete() && task.OutputPath != "" {
		ui.onRevealFile(task.OutputPath)
	}
}

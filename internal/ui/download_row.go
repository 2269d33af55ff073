package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/hanja-api/wallpaper-preview/internal/model"
)

// Progress calculation constants
const (
	MaxProgressPercent = 100
	MinProgressPercent = 0
)

// DownloadRow is one line of the downloads list
type DownloadRow struct {
	widget.BaseWidget

	task         *model.DownloadTask
	localization *Localization

	titleLabel    *widget.Label
	statusLabel   *widget.Label
	progressLabel *widget.Label
	sizeLabel     *widget.Label

	stopRetryBtn *widget.Button
	revealBtn    *widget.Button
	openBtn      *widget.Button
	removeBtn    *widget.Button

	onStopRetry func(task *model.DownloadTask)
	onReveal    func(filePath string)
	onOpen      func(filePath string)
	onRemove    func(taskID string)
}

// NewDownloadRow creates a row; list templates pass a placeholder task
func NewDownloadRow(task *model.DownloadTask, localization *Localization) *DownloadRow {
	if task == nil {
		task = &model.DownloadTask{ID: "placeholder", Status: model.TaskStatusPending}
	}

	r := &DownloadRow{
		task:         task,
		localization: localization,
	}
	r.ExtendBaseWidget(r)
	r.createUI()
	r.updateFromTask()
	return r
}

// SetCallbacks sets the action callbacks
func (r *DownloadRow) SetCallbacks(
	onStopRetry func(task *model.DownloadTask),
	onReveal func(filePath string),
	onOpen func(filePath string),
	onRemove func(taskID string),
) {
	r.onStopRetry = onStopRetry
	r.onReveal = onReveal
	r.onOpen = onOpen
	r.onRemove = onRemove
}

// UpdateTask updates the row with new task data
func (r *DownloadRow) UpdateTask(task *model.DownloadTask) {
	if task == nil {
		return
	}
	r.task = task
	r.updateFromTask()
	r.Refresh()
}

func (r *DownloadRow) createUI() {
	r.titleLabel = widget.NewLabel("")
	r.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	r.titleLabel.Truncation = fyne.TextTruncateEllipsis

	r.statusLabel = widget.NewLabel("")
	r.statusLabel.Alignment = fyne.TextAlignTrailing
	r.progressLabel = widget.NewLabel("")
	r.progressLabel.Alignment = fyne.TextAlignTrailing
	r.sizeLabel = widget.NewLabel("")
	r.sizeLabel.TextStyle = fyne.TextStyle{Monospace: true}

	r.stopRetryBtn = widget.NewButton(IconStop, func() {
		if r.onStopRetry != nil {
			r.onStopRetry(r.task)
		}
	})
	r.revealBtn = widget.NewButton(IconFolder, func() {
		if r.onReveal != nil && r.task.OutputPath != "" {
			r.onReveal(r.task.OutputPath)
		}
	})
	r.openBtn = widget.NewButton(IconFile, func() {
		if r.onOpen != nil && r.task.OutputPath != "" {
			r.onOpen(r.task.OutputPath)
		}
	})
	r.removeBtn = widget.NewButton(IconClose, func() {
		if r.onRemove != nil {
			r.onRemove(r.task.ID)
		}
	})
	r.removeBtn.Importance = widget.LowImportance
}

// updateFromTask updates labels and buttons from the task state
func (r *DownloadRow) updateFromTask() {
	r.titleLabel.SetText(r.task.GetDisplayTitle())

	status := r.task.Status.String()
	switch r.task.Status {
	case model.TaskStatusError:
		r.statusLabel.Importance = widget.DangerImportance
		status = IconError + " " + status
	case model.TaskStatusCompleted:
		r.statusLabel.Importance = widget.SuccessImportance
	case model.TaskStatusDownloading:
		r.statusLabel.Importance = widget.HighImportance
	default:
		r.statusLabel.Importance = widget.MediumImportance
	}
	r.statusLabel.SetText(status)

	switch r.task.Status {
	case model.TaskStatusCompleted:
		r.progressLabel.SetText("")
	case model.TaskStatusDownloading:
		r.progressLabel.SetText(fmt.Sprintf(ProgressLabelFormat, effectivePercent(r.task)))
	default:
		r.progressLabel.SetText("")
	}

	if r.task.Status == model.TaskStatusError && r.task.LastError != "" {
		r.sizeLabel.SetText(r.task.LastError)
	} else {
		r.sizeLabel.SetText(r.task.GetSizeString())
	}

	r.updateButtons()
}

// updateButtons toggles stop/retry and enables file actions once saved
func (r *DownloadRow) updateButtons() {
	switch {
	case r.task.Status.CanStop():
		r.stopRetryBtn.SetText(IconStop)
		r.stopRetryBtn.Enable()
	case r.task.Status.CanRetry():
		r.stopRetryBtn.SetText(IconRetry)
		r.stopRetryBtn.Enable()
	default:
		r.stopRetryBtn.SetText(IconStop)
		r.stopRetryBtn.Disable()
	}

	if r.task.OutputPath != "" {
		r.revealBtn.Enable()
		r.openBtn.Enable()
	} else {
		r.revealBtn.Disable()
		r.openBtn.Disable()
	}
}

// effectivePercent clamps the task's percent for display
func effectivePercent(task *model.DownloadTask) int {
	p := task.Percent
	if p <= 0 && task.Progress > 0 {
		p = int(task.Progress * MaxProgressPercent)
	}
	if p < MinProgressPercent {
		p = MinProgressPercent
	}
	if p > MaxProgressPercent {
		p = MaxProgressPercent
	}
	return p
}

// CreateRenderer creates the widget renderer
func (r *DownloadRow) CreateRenderer() fyne.WidgetRenderer {
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	info := container.NewHBox(
		fixedWidth(StatusLabelWidth, r.statusLabel),
		fixedWidth(PercentLabelWidth, r.progressLabel),
	)
	actions := container.NewHBox(r.stopRetryBtn, r.revealBtn, r.openBtn, r.removeBtn)
	right := container.NewBorder(nil, nil, nil, actions, info)
	left := container.NewVBox(r.titleLabel, r.sizeLabel)

	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, nil, right, left))
}

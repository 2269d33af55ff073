package ui

// Package ui builds the Fyne window: form controls, the preview area, the
// downloads list, and the settings and shortcut dialogs. Widget events are
// forwarded to the preview controller.

package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconRefresh  = "⟳"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconStop     = "■"
	IconRetry    = "↻"
	IconClose    = "×"
	IconError    = "❌"
	IconPhone    = "📱"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Preview sizing
const (
	PreviewHeight       float32 = 520
	PreviewMinWidth     float32 = 160
	PreviewFallbackRate         = 1080.0 / 2340.0
	LogoSize            float32 = 32
)

// Layout sizing (download rows / lists)
const (
	StatusLabelWidth  float32 = 84
	PercentLabelWidth float32 = 48
	DownloadsHeight   float32 = 140
)

// Shortcut dialog
const (
	QRCodeModuleWidth         = 6
	QRCodeSize        float32 = 240
)

// Toast notification sizing and behavior
const (
	ToastAutoHide = 4 * time.Second
)

// Debounce durations
const (
	CharacterIDDebounce = 600 * time.Millisecond
)

package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// GestureType represents different types of gestures
type GestureType int

const (
	GestureNone GestureType = iota
	GestureSwipeLeft
	GestureSwipeRight
	GestureSwipeUp
	GestureSwipeDown
)

// DefaultSwipeThreshold is the drag distance that counts as a swipe
const DefaultSwipeThreshold float32 = 50.0

// detectSwipeDirection classifies a finished drag by its dominant axis
func detectSwipeDirection(dx, dy, threshold float32) GestureType {
	absDx := dx
	if absDx < 0 {
		absDx = -absDx
	}
	absDy := dy
	if absDy < 0 {
		absDy = -absDy
	}

	if absDx < threshold && absDy < threshold {
		return GestureNone
	}

	if absDx > absDy {
		if dx > 0 {
			return GestureSwipeRight
		}
		return GestureSwipeLeft
	}
	if dy > 0 {
		return GestureSwipeDown
	}
	return GestureSwipeUp
}

// SwipeArea wraps a canvas object and reports swipes over it. Mouse drags
// on desktop and touch drags on mobile both arrive as drag events.
type SwipeArea struct {
	widget.BaseWidget

	content   fyne.CanvasObject
	onGesture func(GestureType)
	threshold float32

	dx, dy float32
}

// NewSwipeArea creates a new swipe area around content
func NewSwipeArea(content fyne.CanvasObject, onGesture func(GestureType)) *SwipeArea {
	s := &SwipeArea{
		content:   content,
		onGesture: onGesture,
		threshold: DefaultSwipeThreshold,
	}
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer renders the wrapped content
func (s *SwipeArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.content)
}

// Dragged accumulates the drag distance
func (s *SwipeArea) Dragged(event *fyne.DragEvent) {
	s.dx += event.Dragged.DX
	s.dy += event.Dragged.DY
}

// DragEnd reports the gesture, if any, and resets tracking
func (s *SwipeArea) DragEnd() {
	gesture := detectSwipeDirection(s.dx, s.dy, s.threshold)
	s.dx, s.dy = 0, 0

	if gesture != GestureNone && s.onGesture != nil {
		s.onGesture(gesture)
	}
}

// onPreviewGesture asks for a new character on a horizontal swipe
func (ui *RootUI) onPreviewGesture(gesture GestureType) {
	switch gesture {
	case GestureSwipeLeft, GestureSwipeRight:
		ui.controller.Refresh()
	}
}

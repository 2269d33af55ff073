package preview

// Package preview implements the wallpaper preview controller: it owns the
// last-seen character id, reacts to form changes, fetches SVG previews in
// the background and hands PNG downloads to the download service. It does
// not depend on any UI toolkit; the ui package adapts Fyne widgets to the
// View and Form interfaces.

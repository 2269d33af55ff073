package wallpaper

// Package wallpaper is the HTTP client for the Hanja wallpaper backend. It
// builds request URLs for the wallpaper, models and shortcut endpoints,
// fetches SVG previews, and extracts the rendered character id from the
// Content-Disposition file name.

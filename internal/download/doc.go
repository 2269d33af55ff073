package download

// Package download implements the file download pipeline used for PNG
// wallpapers and shortcut files. It manages the task lifecycle, concurrency
// limits, progress propagation to the UI, and writing files into the
// download directory without clobbering existing ones.

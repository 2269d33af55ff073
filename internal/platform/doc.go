package platform

// Package platform contains OS/platform integration: the default downloads
// directory, safe file naming inside it, and OS open/reveal.

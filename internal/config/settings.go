package config

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/caarlos0/env/v11"

	"github.com/hanja-api/wallpaper-preview/internal/model"
	"github.com/hanja-api/wallpaper-preview/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyAPIBaseURL      = "api_base_url"
	KeyAPIKey          = "api_key"
	KeyDownloadDir     = "download_directory"
	KeyMaxParallel     = "max_parallel_downloads"
	KeyCharacterList   = "character_list"
	KeyDeviceModel     = "iphone_model"
	KeyShortcutRefresh = "shortcut_refresh_minutes"
	KeyLanguage        = "app_language"
	KeyAutoRevealSaved = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultAPIBaseURL      = "http://127.0.0.1:8000"
	DefaultMaxParallel     = 2
	DefaultCharacterList   = model.CharacterListHSK
	DefaultDeviceModel     = "iphone_13_mini"
	DefaultShortcutRefresh = 0
	DefaultLanguage        = "system"
	DefaultAutoRevealSaved = false
	MaxShortcutRefresh     = 24 * 60
)

// EnvOverrides are read once at startup and win over stored preferences
type EnvOverrides struct {
	APIBaseURL  string `env:"HANJA_API_URL"`
	APIKey      string `env:"HANJA_API_KEY"`
	DownloadDir string `env:"HANJA_DOWNLOAD_DIR"`
}

// ParseEnv loads overrides from environment variables
func ParseEnv() (EnvOverrides, error) {
	var o EnvOverrides
	if err := env.Parse(&o); err != nil {
		return o, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// Settings manages application configuration
type Settings struct {
	app fyne.App
	env EnvOverrides
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// WithEnv applies environment overrides on top of stored preferences
func (s *Settings) WithEnv(o EnvOverrides) *Settings {
	s.env = o
	return s
}

// GetAPIBaseURL returns the backend origin
func (s *Settings) GetAPIBaseURL() string {
	if s.env.APIBaseURL != "" {
		return s.env.APIBaseURL
	}
	return s.app.Preferences().StringWithFallback(KeyAPIBaseURL, DefaultAPIBaseURL)
}

// SetAPIBaseURL sets the backend origin; empty restores the default
func (s *Settings) SetAPIBaseURL(u string) {
	u = strings.TrimRight(strings.TrimSpace(u), "/")
	if u == "" {
		u = DefaultAPIBaseURL
	}
	s.app.Preferences().SetString(KeyAPIBaseURL, u)
}

// GetAPIKey returns the API key sent as X-API-Key, if any
func (s *Settings) GetAPIKey() string {
	if s.env.APIKey != "" {
		return s.env.APIKey
	}
	return s.app.Preferences().String(KeyAPIKey)
}

// SetAPIKey sets the API key
func (s *Settings) SetAPIKey(key string) {
	s.app.Preferences().SetString(KeyAPIKey, strings.TrimSpace(key))
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	if s.env.DownloadDir != "" {
		return s.env.DownloadDir
	}

	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetMaxParallelDownloads returns the maximum number of parallel downloads
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	if count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetCharacterList returns the last selected character list
func (s *Settings) GetCharacterList() string {
	list := s.app.Preferences().String(KeyCharacterList)
	for _, known := range model.CharacterLists() {
		if list == known {
			return list
		}
	}
	return DefaultCharacterList
}

// SetCharacterList remembers the selected character list
func (s *Settings) SetCharacterList(list string) {
	s.app.Preferences().SetString(KeyCharacterList, list)
}

// GetDeviceModel returns the last selected device model
func (s *Settings) GetDeviceModel() string {
	return s.app.Preferences().StringWithFallback(KeyDeviceModel, DefaultDeviceModel)
}

// SetDeviceModel remembers the selected device model
func (s *Settings) SetDeviceModel(name string) {
	s.app.Preferences().SetString(KeyDeviceModel, name)
}

// GetShortcutRefreshMinutes returns the refresh interval baked into
// generated shortcuts; 0 means the shortcut runs once
func (s *Settings) GetShortcutRefreshMinutes() int {
	return s.app.Preferences().IntWithFallback(KeyShortcutRefresh, DefaultShortcutRefresh)
}

// SetShortcutRefreshMinutes sets the shortcut refresh interval
func (s *Settings) SetShortcutRefreshMinutes(minutes int) {
	if minutes < 0 {
		minutes = 0
	}
	if minutes > MaxShortcutRefresh {
		minutes = MaxShortcutRefresh
	}
	s.app.Preferences().SetInt(KeyShortcutRefresh, minutes)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to reveal saved wallpapers
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealSaved, DefaultAutoRevealSaved)
}

// SetAutoRevealOnComplete sets whether to reveal saved wallpapers
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealSaved, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

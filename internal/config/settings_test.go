package config

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestAPIBaseURL(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetAPIBaseURL(); got != DefaultAPIBaseURL {
		t.Errorf("Expected default base URL %s, got %s", DefaultAPIBaseURL, got)
	}

	settings.SetAPIBaseURL(" https://example.com/ ")
	if got := settings.GetAPIBaseURL(); got != "https://example.com" {
		t.Errorf("Expected trimmed base URL, got %s", got)
	}

	settings.SetAPIBaseURL("")
	if got := settings.GetAPIBaseURL(); got != DefaultAPIBaseURL {
		t.Errorf("Empty base URL should restore default, got %s", got)
	}
}

func TestAPIKey(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetAPIKey() != "" {
		t.Error("API key should be empty by default")
	}

	settings.SetAPIKey(" secret ")
	if got := settings.GetAPIKey(); got != "secret" {
		t.Errorf("Expected API key 'secret', got %q", got)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HANJA_API_URL", "https://env.example.com")
	t.Setenv("HANJA_API_KEY", "env-key")
	t.Setenv("HANJA_DOWNLOAD_DIR", "/env/downloads")

	overrides, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv failed: %v", err)
	}

	app := test.NewApp()
	settings := NewSettings(app).WithEnv(overrides)
	settings.SetAPIBaseURL("https://stored.example.com")
	settings.SetAPIKey("stored-key")
	settings.SetDownloadDirectory("/stored")

	if got := settings.GetAPIBaseURL(); got != "https://env.example.com" {
		t.Errorf("Expected env base URL, got %s", got)
	}
	if got := settings.GetAPIKey(); got != "env-key" {
		t.Errorf("Expected env API key, got %s", got)
	}
	if got := settings.GetDownloadDirectory(); got != "/env/downloads" {
		t.Errorf("Expected env download dir, got %s", got)
	}
}

func TestDownloadDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetDownloadDirectory()
	if dir == "" {
		t.Error("Download directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/downloads"
	settings.SetDownloadDirectory(customDir)

	retrievedDir := settings.GetDownloadDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected download directory %s, got %s", customDir, retrievedDir)
	}
}

func TestMaxParallelDownloads(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	maxParallel := settings.GetMaxParallelDownloads()
	if maxParallel != DefaultMaxParallel {
		t.Errorf("Expected default max parallel %d, got %d", DefaultMaxParallel, maxParallel)
	}

	settings.SetMaxParallelDownloads(5)
	if settings.GetMaxParallelDownloads() != 5 {
		t.Errorf("Expected max parallel 5, got %d", settings.GetMaxParallelDownloads())
	}

	// Test boundary values
	settings.SetMaxParallelDownloads(0) // Should be clamped to 1
	if settings.GetMaxParallelDownloads() != 1 {
		t.Error("Max parallel should be clamped to minimum 1")
	}

	settings.SetMaxParallelDownloads(15) // Should be clamped to 10
	if settings.GetMaxParallelDownloads() != 10 {
		t.Error("Max parallel should be clamped to maximum 10")
	}
}

func TestCharacterList(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetCharacterList(); got != DefaultCharacterList {
		t.Errorf("Expected default character list %s, got %s", DefaultCharacterList, got)
	}

	settings.SetCharacterList("hanja")
	if got := settings.GetCharacterList(); got != "hanja" {
		t.Errorf("Expected character list hanja, got %s", got)
	}

	settings.SetCharacterList("klingon")
	if got := settings.GetCharacterList(); got != DefaultCharacterList {
		t.Errorf("Unknown list should fall back to default, got %s", got)
	}
}

func TestDeviceModel(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetDeviceModel(); got != DefaultDeviceModel {
		t.Errorf("Expected default device model %s, got %s", DefaultDeviceModel, got)
	}

	settings.SetDeviceModel("iphone_16_pro")
	if got := settings.GetDeviceModel(); got != "iphone_16_pro" {
		t.Errorf("Expected iphone_16_pro, got %s", got)
	}
}

func TestShortcutRefreshMinutes(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetShortcutRefreshMinutes(); got != DefaultShortcutRefresh {
		t.Errorf("Expected default refresh %d, got %d", DefaultShortcutRefresh, got)
	}

	settings.SetShortcutRefreshMinutes(30)
	if got := settings.GetShortcutRefreshMinutes(); got != 30 {
		t.Errorf("Expected 30, got %d", got)
	}

	settings.SetShortcutRefreshMinutes(-5)
	if got := settings.GetShortcutRefreshMinutes(); got != 0 {
		t.Errorf("Negative refresh should clamp to 0, got %d", got)
	}

	settings.SetShortcutRefreshMinutes(MaxShortcutRefresh + 1)
	if got := settings.GetShortcutRefreshMinutes(); got != MaxShortcutRefresh {
		t.Errorf("Refresh should clamp to %d, got %d", MaxShortcutRefresh, got)
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	lang := settings.GetLanguage()
	if lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("en")
	if got := settings.GetLanguage(); got != "en" {
		t.Errorf("Expected language 'en', got %s", got)
	}
}

func TestAutoRevealOnComplete(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetAutoRevealOnComplete() != DefaultAutoRevealSaved {
		t.Error("Unexpected default for auto reveal")
	}

	settings.SetAutoRevealOnComplete(true)
	if !settings.GetAutoRevealOnComplete() {
		t.Error("Expected auto reveal to be enabled")
	}
}

func TestGetLanguageOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ru", "pt"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}

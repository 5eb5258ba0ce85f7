package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOverride(t *testing.T) {
	cfg := &Config{}

	if err := cfg.Override(SettingDefaultIcon, "star"); err != nil {
		t.Fatalf("Override failed: %v", err)
	}
	if got, ok := cfg.Setting(SettingDefaultIcon); !ok || got != "star" {
		t.Errorf("Expected 'star', got '%s'", got)
	}
	if len(cfg.Settings) != 0 {
		t.Errorf("Override must not touch stored settings: %v", cfg.Settings)
	}
}

func TestSettingMissing(t *testing.T) {
	cfg := &Config{}

	if got, ok := cfg.Setting(SettingDefaultIcon); ok || got != "" {
		t.Errorf("Expected no value for unset key, got '%s'", got)
	}
	if cfg.Unset(SettingDefaultIcon) {
		t.Errorf("Unset of a missing key should report false")
	}
}

func TestOverrideWinsOverStored(t *testing.T) {
	cfg := &Config{Settings: map[string]string{SettingDefaultIcon: "stored", SettingHistoryLimit: "5"}}

	if err := cfg.Override(SettingDefaultIcon, "session"); err != nil {
		t.Fatal(err)
	}
	if got, _ := cfg.Setting(SettingDefaultIcon); got != "session" {
		t.Errorf("Expected session value, got '%s'", got)
	}

	all := cfg.AllSettings()
	if len(all) != 2 || all[SettingDefaultIcon] != "session" || all[SettingHistoryLimit] != "5" {
		t.Errorf("unexpected merged settings: %v", all)
	}

	all[SettingDefaultIcon] = "modified"
	if got, _ := cfg.Setting(SettingDefaultIcon); got != "session" {
		t.Errorf("AllSettings should return a copy")
	}
}

func TestSettingValidation(t *testing.T) {
	cfg := &Config{}

	tests := []struct {
		key   string
		value string
		ok    bool
	}{
		{SettingDefaultIcon, "folder", true},
		{SettingDefaultIcon, "", true},
		{SettingHistoryLimit, "10", true},
		{SettingHistoryLimit, "0", false},
		{SettingHistoryLimit, "many", false},
		{"colour", "red", false},
	}

	for _, tt := range tests {
		err := cfg.Store(tt.key, tt.value)
		if (err == nil) != tt.ok {
			t.Errorf("Store(%q, %q) error = %v, want ok %v", tt.key, tt.value, err, tt.ok)
		}
		if err := cfg.Override(tt.key, tt.value); (err == nil) != tt.ok {
			t.Errorf("Override(%q, %q) error = %v, want ok %v", tt.key, tt.value, err, tt.ok)
		}
	}
}

func TestHistoryLimit(t *testing.T) {
	cfg := &Config{}
	if got := cfg.HistoryLimit(50); got != 50 {
		t.Errorf("Expected fallback 50, got %d", got)
	}

	if err := cfg.Store(SettingHistoryLimit, "7"); err != nil {
		t.Fatal(err)
	}
	if got := cfg.HistoryLimit(50); got != 7 {
		t.Errorf("Expected 7, got %d", got)
	}

	if err := cfg.Override(SettingHistoryLimit, "3"); err != nil {
		t.Fatal(err)
	}
	if got := cfg.HistoryLimit(50); got != 3 {
		t.Errorf("Expected override 3, got %d", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Format != "auto" {
		t.Errorf("Expected default format 'auto', got '%s'", cfg.Format)
	}
	if cfg.SearchMode != SearchSubstring {
		t.Errorf("Expected default search mode '%s', got '%s'", SearchSubstring, cfg.SearchMode)
	}
	if !cfg.Backups {
		t.Errorf("Backups should be enabled by default")
	}
	if cfg.DataFile == "" {
		t.Errorf("defaultConfig should set a data file")
	}
	if len(cfg.AllSettings()) != 0 {
		t.Errorf("defaultConfig should have no settings")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Collation != "und" || cfg.Path() != path {
		t.Errorf("expected defaults for missing file, got %+v", cfg)
	}
}

func TestLoadFromFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `data_file = "/tmp/favs.yaml"
search_mode = "fuzzy"
backups = false

[settings]
default_icon = "star"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.DataFile != "/tmp/favs.yaml" || cfg.SearchMode != SearchFuzzy || cfg.Backups {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Format != "auto" || cfg.LogLevel != "info" {
		t.Errorf("unset keys should keep defaults: %+v", cfg)
	}
	if icon, _ := cfg.Setting(SettingDefaultIcon); icon != "star" {
		t.Errorf("settings table not loaded")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", "data_file = "},
		{"bad format", `format = "xml"`},
		{"bad search mode", `search_mode = "regex"`},
		{"unknown setting", "[settings]\ncolour = \"red\""},
		{"bad history limit", "[settings]\nhistory_limit = \"-1\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFromFile(path); err == nil {
				t.Errorf("expected error for %q", tt.content)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Store(SettingDefaultIcon, "star"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Override(SettingHistoryLimit, "3"); err != nil {
		t.Fatal(err)
	}
	cfg.SearchMode = SearchFuzzy

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if icon, _ := loaded.Setting(SettingDefaultIcon); loaded.SearchMode != SearchFuzzy || icon != "star" {
		t.Errorf("saved values not reloaded: %+v", loaded)
	}
	if _, ok := loaded.Setting(SettingHistoryLimit); ok {
		t.Errorf("overrides must not be persisted")
	}

	if !loaded.Unset(SettingDefaultIcon) {
		t.Fatal("Unset should report the stored key")
	}
	if err := loaded.Save(); err != nil {
		t.Fatal(err)
	}
	again, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := again.Setting(SettingDefaultIcon); ok {
		t.Errorf("unset key came back after save")
	}
}

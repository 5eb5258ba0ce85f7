package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const appName = "favtree"

// Search modes
const (
	SearchSubstring = "substring"
	SearchFuzzy     = "fuzzy"
)

// Config holds application configuration
type Config struct {
	DataFile   string            `toml:"data_file"`
	DataDir    string            `toml:"data_dir"`
	Format     string            `toml:"format"`
	LogLevel   string            `toml:"log_level"`
	SearchMode string            `toml:"search_mode"`
	Collation  string            `toml:"collation"`
	Backups    bool              `toml:"backups"`
	Settings   map[string]string `toml:"settings"`

	overrides map[string]string
	path      string
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file. Keys missing from the file
// keep their defaults.
func LoadFromFile(filePath string) (*Config, error) {
	config := defaultConfig()
	config.path = filePath

	// If file doesn't exist, return default config
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks fields that accept a fixed set of values
func (c *Config) Validate() error {
	switch c.Format {
	case "", "auto", "json", "yaml", "yml", "text", "txt", "sqlite", "db":
	default:
		return fmt.Errorf("invalid format %q in config", c.Format)
	}

	switch c.SearchMode {
	case "", SearchSubstring, SearchFuzzy:
	default:
		return fmt.Errorf("invalid search_mode %q in config", c.SearchMode)
	}

	for _, key := range slices.Sorted(maps.Keys(c.Settings)) {
		if err := CheckSetting(key, c.Settings[key]); err != nil {
			return fmt.Errorf("invalid [settings] entry: %w", err)
		}
	}

	return nil
}

// Path returns the file the config was loaded from, if any
func (c *Config) Path() string {
	return c.path
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// DefaultDataFile returns the default location of the favourites file
func DefaultDataFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName, "favourites.json")
	}
	return filepath.Join(home, ".local", "share", appName, "favourites.json")
}

// DataDir returns the directory holding history and backups
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".local", "share", appName)
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		DataFile:   DefaultDataFile(),
		DataDir:    DataDir(),
		Format:     "auto",
		LogLevel:   "info",
		SearchMode: SearchSubstring,
		Collation:  "und",
		Backups:    true,
	}
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(home, ".config", appName)
	return configDir, nil
}

// Keys accepted in the [settings] table and by --set
const (
	// SettingDefaultIcon is the icon given to favourites added without one
	SettingDefaultIcon = "default_icon"
	// SettingHistoryLimit caps the number of remembered search queries
	SettingHistoryLimit = "history_limit"
)

var knownSettings = []string{SettingDefaultIcon, SettingHistoryLimit}

// KnownSetting reports whether key is a setting favtree understands
func KnownSetting(key string) bool {
	return slices.Contains(knownSettings, key)
}

// CheckSetting reports whether value is acceptable for key
func CheckSetting(key, value string) error {
	switch key {
	case SettingDefaultIcon:
		return nil
	case SettingHistoryLimit:
		if n, err := strconv.Atoi(value); err != nil || n < 1 {
			return fmt.Errorf("%s must be a positive number, got %q", key, value)
		}
		return nil
	default:
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(knownSettings, ", "))
	}
}

// Override sets key for this run only. Save never writes overrides.
func (c *Config) Override(key, value string) error {
	if err := CheckSetting(key, value); err != nil {
		return err
	}
	if c.overrides == nil {
		c.overrides = make(map[string]string)
	}
	c.overrides[key] = value
	return nil
}

// Store sets key in the [settings] table written by Save
func (c *Config) Store(key, value string) error {
	if err := CheckSetting(key, value); err != nil {
		return err
	}
	if c.Settings == nil {
		c.Settings = make(map[string]string)
	}
	c.Settings[key] = value
	return nil
}

// Unset removes key from the [settings] table and reports whether it was there
func (c *Config) Unset(key string) bool {
	_, ok := c.Settings[key]
	delete(c.Settings, key)
	return ok
}

// Setting looks key up in the run overrides, then in the [settings] table
func (c *Config) Setting(key string) (string, bool) {
	if v, ok := c.overrides[key]; ok {
		return v, true
	}
	v, ok := c.Settings[key]
	return v, ok
}

// AllSettings returns stored settings merged with run overrides
func (c *Config) AllSettings() map[string]string {
	all := make(map[string]string, len(c.Settings)+len(c.overrides))
	maps.Copy(all, c.Settings)
	maps.Copy(all, c.overrides)
	return all
}

// HistoryLimit returns the history_limit setting, or fallback when it is unset
func (c *Config) HistoryLimit(fallback int) int {
	v, ok := c.Setting(SettingHistoryLimit)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Save writes the config to the file it was loaded from, or to the standard
// location when it was not loaded from a file.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		var err error
		if path, err = getConfigPath(); err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	c.path = path
	return nil
}

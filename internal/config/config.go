package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Scale               float64       `mapstructure:"scale"`
	Quality             float64       `mapstructure:"quality"`
	Margin              float64       `mapstructure:"margin"`  // mm
	Padding             float64       `mapstructure:"padding"` // mm
	PageFormat          string        `mapstructure:"page_format"`
	Strategy            string        `mapstructure:"strategy"` // primary, sections
	OutputDir           string        `mapstructure:"output_dir"`
	ChromePath          string        `mapstructure:"chrome_path"`
	ConvergeTimeout     time.Duration `mapstructure:"converge_timeout"`
	CaptureTimeout      time.Duration `mapstructure:"capture_timeout"`
	FallbackLoadTimeout time.Duration `mapstructure:"fallback_load_timeout"`
	LogLevel            string        `mapstructure:"log_level"`
	HistoryDB           string        `mapstructure:"history_db"`
}

var AppConfig *Config

// ValidKeys lists the keys accepted by Set.
var ValidKeys = []string{
	"scale", "quality", "margin", "padding", "page_format", "strategy", "output_dir",
	"chrome_path", "converge_timeout", "capture_timeout", "fallback_load_timeout",
	"log_level", "history_db",
}

// Dir returns the configuration directory, ~/.cvgen
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cvgen"), nil
}

// Initialize loads or creates the configuration file
func Initialize() error {
	configDir, err := Dir()
	if err != nil {
		return err
	}
	configFile := filepath.Join(configDir, "config.yaml")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return err
		}
	}

	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")

	viper.SetDefault("scale", 2.0)
	viper.SetDefault("quality", 0.95)
	viper.SetDefault("margin", 0.0)
	viper.SetDefault("padding", 2.0)
	viper.SetDefault("page_format", "a4")
	viper.SetDefault("strategy", "primary")
	viper.SetDefault("output_dir", ".")
	viper.SetDefault("chrome_path", "")
	viper.SetDefault("converge_timeout", 2*time.Second)
	viper.SetDefault("capture_timeout", 60*time.Second)
	viper.SetDefault("fallback_load_timeout", 30*time.Second)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("history_db", filepath.Join(configDir, "history.db"))

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if AppConfig.HistoryDB == "" {
		AppConfig.HistoryDB = filepath.Join(configDir, "history.db")
	}

	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# cvgen Configuration
# Rasterization multiplier and JPEG quality (0..1) of embedded page images
scale: 2.0
quality: 0.95

# Page geometry in millimetres. Formats: a3, a4, a5, letter, legal
margin: 0
padding: 2
page_format: a4

# First export strategy: primary (whole CV) or sections (section by section)
strategy: primary
output_dir: .

# Leave empty to use the Chrome found on PATH
chrome_path: ""

converge_timeout: 2s
capture_timeout: 60s
fallback_load_timeout: 30s

# debug, info, warn, error
log_level: info
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// IsValidKey reports whether key can be changed with Set.
func IsValidKey(key string) bool {
	for _, k := range ValidKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Set updates a configuration value
func Set(key, value string) error {
	if !IsValidKey(key) {
		return fmt.Errorf("invalid config key %q", key)
	}
	viper.Set(key, value)
	if err := viper.WriteConfig(); err != nil {
		return err
	}
	if AppConfig != nil {
		return viper.Unmarshal(AppConfig)
	}
	return nil
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".cvgen", "config.yaml")
}

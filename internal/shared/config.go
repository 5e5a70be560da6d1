package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Library  LibraryConfig  `toml:"library"`
	Database DatabaseConfig `toml:"database"`
	Provider ProviderConfig `toml:"provider"`
	Player   PlayerConfig   `toml:"player"`
}

// LibraryConfig contains local music library settings.
type LibraryConfig struct {
	DownloadDir string `toml:"download_dir"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ProviderConfig contains settings for the yt-dlp provider adapter.
type ProviderConfig struct {
	AudioFormat    string  `toml:"audio_format"`
	AudioQuality   string  `toml:"audio_quality"`
	RateLimit      float64 `toml:"rate_limit"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// PlayerConfig contains audio playback settings.
type PlayerConfig struct {
	BufferMillis int `toml:"buffer_millis"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/bryanchriswhite/spritegrid/internal/logger"
)

// Config represents the tool configuration. Every field is a default
// for one run; flags override them per invocation.
type Config struct {
	// FPS is the default frame sampling rate.
	FPS float64 `json:"fps" yaml:"fps"`
	// Filter names the resampling filter used when frames are resized
	// (lanczos or catmullrom).
	Filter string `json:"filter" yaml:"filter"`
	// OutputSuffix is appended to the video's stem when no output name
	// is given, e.g. clip.mp4 -> clip_spritesheet.png.
	OutputSuffix string `json:"output_suffix" yaml:"output_suffix"`
	// MaxCanvasMB caps the sheet canvas allocation in mebibytes.
	MaxCanvasMB int `json:"max_canvas_mb" yaml:"max_canvas_mb"`
	// WriteMetadata enables the JSON sidecar for every run, as if
	// --json were always passed.
	WriteMetadata bool   `json:"write_metadata" yaml:"write_metadata"`
	LogLevel      string `json:"log_level" yaml:"log_level"`
}

// Manager handles configuration
type Manager struct {
	configPath string
	config     *Config
	mu         sync.RWMutex
}

// NewManager creates a new configuration manager. With an empty
// configFile the default path under ~/.config/spritegrid is used and
// created with defaults on first run; an explicit path must exist.
func NewManager(configFile string) (*Manager, error) {
	usingDefault := configFile == ""
	actualConfigPath := configFile
	if usingDefault {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		actualConfigPath = filepath.Join(homeDir, ".config", "spritegrid", "config.yaml")
	}

	m := &Manager{
		configPath: actualConfigPath,
	}

	if err := m.load(); err != nil {
		if !os.IsNotExist(err) || !usingDefault {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, create it with defaults
		logger.WithComponent("config").Info().
			Str("path", m.configPath).
			Msg("Config file not found, creating new config")
		m.config = m.getDefaults()
		if err := m.Save(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	logger.WithComponent("config").Debug().
		Str("path", m.configPath).
		Float64("fps", m.config.FPS).
		Str("filter", m.config.Filter).
		Msg("Config loaded")

	return m, nil
}

// getDefaults returns default configuration
func (m *Manager) getDefaults() *Config {
	return &Config{
		FPS:          10,
		Filter:       "lanczos",
		OutputSuffix: "_spritesheet",
		MaxCanvasMB:  1024,
		LogLevel:     "info",
	}
}

// load reads the configuration from disk
func (m *Manager) load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	// Absent fields keep their defaults
	cfg := m.getDefaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return fmt.Errorf("invalid config %s: %w", m.configPath, err)
	}

	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()
	return nil
}

func validate(cfg *Config) error {
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %v", cfg.FPS)
	}
	if cfg.MaxCanvasMB <= 0 {
		return fmt.Errorf("max_canvas_mb must be positive, got %d", cfg.MaxCanvasMB)
	}
	return nil
}

// Get returns a copy of the current configuration
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return m.getDefaults()
	}

	// Return a copy to prevent external modification
	cfg := *m.config
	return &cfg
}

// Path returns the config file path in use
func (m *Manager) Path() string {
	return m.configPath
}

// Save saves the current configuration to disk
func (m *Manager) Save() error {
	m.mu.RLock()
	cfg := m.config
	m.mu.RUnlock()

	if cfg == nil {
		cfg = m.getDefaults()
	}

	// Ensure the directory exists
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return err
	}

	logger.WithComponent("config").Debug().
		Str("path", m.configPath).
		Msg("Config saved")
	return nil
}

// Update replaces the entire configuration and saves it to disk.
func (m *Manager) Update(cfg *Config) error {
	if err := validate(cfg); err != nil {
		return err
	}
	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()
	return m.Save()
}

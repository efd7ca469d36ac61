// Package config provides centralized configuration management for soilbyte.
// It supports loading configuration from YAML files with fallback to sensible defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by LoadFile when no configuration file exists
var ErrNotFound = errors.New("configuration file not found in any of the expected locations")

// AppConfig represents the complete application configuration
type AppConfig struct {
	// Web server configuration
	Web WebConfig `yaml:"web"`

	// Reading generator configuration
	Generator GeneratorConfig `yaml:"generator"`

	// Per-field sampling ranges
	Ranges RangesConfig `yaml:"ranges"`

	// Shared store configuration
	Store StoreConfig `yaml:"store"`

	// Logging configuration
	Log LogConfig `yaml:"log"`

	// Timeouts and shutdown configuration
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// WebConfig contains HTTP server configuration
type WebConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// GeneratorConfig contains reading generator configuration
type GeneratorConfig struct {
	Interval time.Duration `yaml:"interval"`
	Source   string        `yaml:"source"` // "simulated" or "bme280"
	Seed     int64         `yaml:"seed"`   // 0 means time based
	BME280   BME280Config  `yaml:"bme280"`
}

// BME280Config contains BME280 hardware sensor configuration
type BME280Config struct {
	I2CAddress uint16 `yaml:"i2c_address"`
	I2CBus     string `yaml:"i2c_bus"`
}

// IntRange is a closed integer interval
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// FloatRange is a closed decimal interval with a rounding precision
type FloatRange struct {
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	Decimals int     `yaml:"decimals"`
}

// RangesConfig contains the sampling range of each reading field
type RangesConfig struct {
	Nitrogen    IntRange   `yaml:"nitrogen"`
	Phosphorus  IntRange   `yaml:"phosphorus"`
	Potassium   IntRange   `yaml:"potassium"`
	PH          FloatRange `yaml:"ph"`
	Moisture    FloatRange `yaml:"moisture"`
	Temperature FloatRange `yaml:"temperature"`
	CO2         IntRange   `yaml:"co2"`
}

// StoreConfig contains shared store configuration
type StoreConfig struct {
	Type         string `yaml:"type"` // "file", "sqlite" or "postgres"
	Path         string `yaml:"path"`
	AtomicWrites *bool  `yaml:"atomic_writes"`
	DSN          string `yaml:"dsn"`
}

// LogConfig contains logger configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// TimeoutConfig contains various timeout configurations
type TimeoutConfig struct {
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	WebShutdownTimeout time.Duration `yaml:"web_shutdown_timeout"`
}

// ConfigLoader handles loading and caching of configuration
type ConfigLoader struct {
	config *AppConfig
	source string
	mu     sync.RWMutex
	loaded bool
}

// Global instance - thread-safe singleton
var globalLoader = &ConfigLoader{}

// Load loads configuration from file or uses defaults when no file exists.
// A file that exists but cannot be read or parsed is an error.
func Load(configPath string) (*AppConfig, error) {
	globalLoader.mu.Lock()
	defer globalLoader.mu.Unlock()

	if globalLoader.loaded {
		return globalLoader.config, nil
	}

	config, source, err := LoadFile(configPath)
	if errors.Is(err, ErrNotFound) {
		config, source, err = defaultConfig(), "", nil
	}
	if err != nil {
		return nil, err
	}

	globalLoader.config = config
	globalLoader.source = source
	globalLoader.loaded = true

	return config, nil
}

// Get returns the cached configuration (must call Load first)
func Get() *AppConfig {
	globalLoader.mu.RLock()
	defer globalLoader.mu.RUnlock()

	if !globalLoader.loaded {
		panic("Configuration not loaded. Call config.Load() first.")
	}

	return globalLoader.config
}

// Source returns the file the cached configuration came from, empty for defaults
func Source() string {
	globalLoader.mu.RLock()
	defer globalLoader.mu.RUnlock()
	return globalLoader.source
}

// searchPaths lists the locations tried after an explicit path
var searchPaths = []string{
	"soilbyte.yaml",
	"soilbyte.yml",
	"config/soilbyte.yaml",
	"config/soilbyte.yml",
	"/etc/soilbyte/soilbyte.yaml",
	"/etc/soilbyte.yaml",
}

// LoadFile reads the first configuration file found and applies defaults.
// It returns the path that was used.
func LoadFile(configPath string) (*AppConfig, string, error) {
	var configFile string

	for _, path := range append([]string{configPath}, searchPaths...) {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err == nil {
			configFile = path
			break
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
	}

	if configFile == "" {
		return nil, "", ErrNotFound
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	var config AppConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, "", fmt.Errorf("failed to parse config file %s: %w", configFile, err)
	}

	applyDefaults(&config)

	return &config, configFile, nil
}

// defaultConfig returns a configuration with sensible defaults
func defaultConfig() *AppConfig {
	config := &AppConfig{}
	applyDefaults(config)
	return config
}

// applyDefaults fills in missing configuration values with sensible defaults
func applyDefaults(config *AppConfig) {
	// Web defaults
	if config.Web.Host == "" {
		config.Web.Host = "0.0.0.0"
	}
	if config.Web.Port == 0 {
		config.Web.Port = 8080
	}
	if config.Web.ReadTimeout == 0 {
		config.Web.ReadTimeout = 10 * time.Second
	}
	if config.Web.WriteTimeout == 0 {
		config.Web.WriteTimeout = 10 * time.Second
	}
	if config.Web.IdleTimeout == 0 {
		config.Web.IdleTimeout = 120 * time.Second
	}

	// Generator defaults
	if config.Generator.Interval == 0 {
		config.Generator.Interval = 5 * time.Second
	}
	if config.Generator.Source == "" {
		config.Generator.Source = "simulated"
	}
	if config.Generator.BME280.I2CAddress == 0 {
		config.Generator.BME280.I2CAddress = 0x76
	}

	// Range defaults, per field so a file may override only some of them
	defaultIntRange(&config.Ranges.Nitrogen, 10, 90)
	defaultIntRange(&config.Ranges.Phosphorus, 5, 60)
	defaultIntRange(&config.Ranges.Potassium, 20, 150)
	defaultFloatRange(&config.Ranges.PH, 5.5, 8.5, 2)
	defaultFloatRange(&config.Ranges.Moisture, 10, 70, 2)
	defaultFloatRange(&config.Ranges.Temperature, 20, 40, 1)
	defaultIntRange(&config.Ranges.CO2, 350, 700)

	// Store defaults
	if config.Store.Type == "" {
		config.Store.Type = "file"
	}
	if config.Store.Path == "" {
		if config.Store.Type == "sqlite" {
			config.Store.Path = "data/sensor_data.db"
		} else {
			config.Store.Path = "data/sensor_data.json"
		}
	}
	if config.Store.AtomicWrites == nil {
		atomic := true
		config.Store.AtomicWrites = &atomic
	}

	// Log defaults
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}

	// Timeout defaults
	if config.Timeouts.ShutdownTimeout == 0 {
		config.Timeouts.ShutdownTimeout = 10 * time.Second
	}
	if config.Timeouts.WebShutdownTimeout == 0 {
		config.Timeouts.WebShutdownTimeout = 5 * time.Second
	}
}

func defaultIntRange(r *IntRange, lo, hi int) {
	if r.Min == 0 && r.Max == 0 {
		r.Min, r.Max = lo, hi
	}
}

func defaultFloatRange(r *FloatRange, lo, hi float64, decimals int) {
	if r.Min == 0 && r.Max == 0 {
		r.Min, r.Max = lo, hi
	}
	if r.Decimals == 0 {
		r.Decimals = decimals
	}
}

// GenerateExampleConfig creates an example configuration file
func GenerateExampleConfig(outputPath string) error {
	config := defaultConfig()

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", outputPath, err)
	}

	return nil
}

// Package store implements the single-slot shared store that carries the
// current sensor reading from the generator to the HTTP server.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/anibaldeboni/zero-paper/soilbyte/sensor"
)

var (
	ErrNotFound    = errors.New("sensor data not found")
	ErrCorrupt     = errors.New("sensor data is not valid JSON")
	ErrUnknownType = errors.New("unknown store type")
)

// Store types
const (
	TypeFile     = "file"
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Store holds exactly one reading; every Write replaces the previous one.
type Store interface {
	// Write serializes the reading and replaces the slot
	Write(ctx context.Context, reading sensor.Reading) error
	// Read returns the raw bytes as last written, or ErrNotFound
	Read(ctx context.Context) ([]byte, error)
	Exists(ctx context.Context) (bool, error)
	Close() error
}

// Config selects and configures a store backend
type Config struct {
	Type         string
	Path         string
	AtomicWrites bool
	DSN          string
	Logger       logrus.FieldLogger
}

// DefaultConfig returns the file store at data/sensor_data.json
func DefaultConfig() *Config {
	return &Config{
		Type:         TypeFile,
		Path:         "data/sensor_data.json",
		AtomicWrites: true,
	}
}

// Open builds the store described by config
func Open(config *Config) (Store, error) {
	if config == nil {
		config = DefaultConfig()
	}

	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	switch strings.ToLower(config.Type) {
	case "", TypeFile:
		return NewFileStore(config.Path, config.AtomicWrites)
	case TypeSQLite:
		return OpenSQLite(config.Path, logger)
	case TypePostgres:
		return OpenPostgres(config.DSN, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, config.Type)
	}
}

// Seed writes reading only when the store is still empty.
// It reports whether a write happened.
func Seed(ctx context.Context, s Store, reading sensor.Reading) (bool, error) {
	exists, err := s.Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check store: %w", err)
	}
	if exists {
		return false, nil
	}

	if err := s.Write(ctx, reading); err != nil {
		return false, fmt.Errorf("failed to seed store: %w", err)
	}
	return true, nil
}

func encode(reading sensor.Reading) ([]byte, error) {
	data, err := json.Marshal(reading)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reading: %w", err)
	}
	return data, nil
}

func validate(data []byte, source string) error {
	if !json.Valid(data) {
		return fmt.Errorf("%w: %s", ErrCorrupt, source)
	}
	return nil
}

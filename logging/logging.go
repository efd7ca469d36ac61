// Package logging builds the logrus logger shared by the soilbyte binaries.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config holds logger options
type Config struct {
	Level  string
	Format string
	Output io.Writer
}

// New returns a logger configured with level and formatter
func New(config Config) (*logrus.Logger, error) {
	level := logrus.InfoLevel
	if config.Level != "" {
		parsed, err := logrus.ParseLevel(config.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", config.Level, err)
		}
		level = parsed
	}

	var formatter logrus.Formatter
	switch strings.ToLower(config.Format) {
	case "", "text":
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	case "json":
		formatter = &logrus.JSONFormatter{}
	default:
		return nil, fmt.Errorf("invalid log format %q", config.Format)
	}

	out := config.Output
	if out == nil {
		out = os.Stdout
	}

	return &logrus.Logger{
		Out:       out,
		Formatter: formatter,
		Hooks:     make(logrus.LevelHooks),
		Level:     level,
		ExitFunc:  os.Exit,
	}, nil
}

// Package logging provides configurable zap logger creation for the
// batch processor and the command line tool.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Style selects the log output encoding.
type Style string

const (
	// StyleTerminal is the human-readable development encoding.
	StyleTerminal Style = "terminal"
	// StyleJSON is the machine-readable production encoding.
	StyleJSON Style = "json"
	// StyleNoop discards all log output.
	StyleNoop Style = "noop"
)

// Config controls logger construction.
type Config struct {
	// Style is the output encoding: terminal, json, or noop.
	Style Style `yaml:"style"`

	// Level is the minimum level to emit: debug, info, warn, or error.
	Level string `yaml:"level"`
}

// NewLogger creates a zap logger from the config. A nil config or empty
// fields fall back to terminal style at info level.
func NewLogger(c *Config) (*zap.Logger, error) {
	style := StyleTerminal
	level := zapcore.InfoLevel

	if c != nil {
		if c.Style != "" {
			style = c.Style
		}
		if c.Level != "" {
			lvl, err := zapcore.ParseLevel(c.Level)
			if err != nil {
				return nil, fmt.Errorf("logging: parsing level %q: %w", c.Level, err)
			}
			level = lvl
		}
	}

	var cfg zap.Config
	switch style {
	case StyleNoop:
		return zap.NewNop(), nil
	case StyleJSON:
		cfg = zap.NewProductionConfig()
	case StyleTerminal:
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("logging: invalid style %q: must be one of: terminal, json, noop", style)
	}

	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return logger, nil
}

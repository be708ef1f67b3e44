// Package logging builds the process logger from CLI flags.
package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

var ErrUnknownLevel = errors.New("unknown log level")

// Config holds logger configuration.
type Config struct {
	Level string
	JSON  bool
}

// Flags returns the CLI flags controlling the logger.
func (c *Config) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &c.Level,
			Sources:     cli.EnvVars("GLASSKIT_LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:        "log-json",
			Usage:       "Output logs in JSON format",
			Value:       false,
			Destination: &c.JSON,
			Sources:     cli.EnvVars("GLASSKIT_LOG_JSON"),
		},
	}
}

// Configure builds the logger: JSON for machines, a coloured console handler
// otherwise.
func (c *Config) Configure() (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, errors.Wrap(ErrUnknownLevel, c.Level)
	}

	if c.JSON {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})), nil
	}

	handler := clog.New(
		clog.WithWriter(os.Stdout),
		clog.WithLevel(level),
		clog.WithColor(true),
	)

	return slog.New(handler), nil
}

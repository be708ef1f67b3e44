// Command editor opens the glasskit scene editor.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/glasskit/glasskit/internal/logging"
	"github.com/glasskit/glasskit/pkg/app"
)

func main() {
	if err := run(context.Background(), os.Args); err != nil {
		slog.Error("editor failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	var (
		logCfg     logging.Config
		configPath string
		title      string
		width      int
		height     int
		fullscreen bool
		sceneDOT   string
	)

	flags := append(logCfg.Flags(),
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Window config YAML file",
			Destination: &configPath,
			Sources:     cli.EnvVars("GLASSKIT_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Window title override",
			Destination: &title,
		},
		&cli.IntFlag{
			Name:        "width",
			Usage:       "Window width override",
			Destination: &width,
		},
		&cli.IntFlag{
			Name:        "height",
			Usage:       "Window height override",
			Destination: &height,
		},
		&cli.BoolFlag{
			Name:        "fullscreen",
			Usage:       "Open the window fullscreen",
			Destination: &fullscreen,
			Sources:     cli.EnvVars("GLASSKIT_FULLSCREEN"),
		},
		&cli.StringFlag{
			Name:        "scene-dot",
			Usage:       "Export the scene graph as graphviz DOT to this file on start",
			Destination: &sceneDOT,
		},
	)

	var logger *slog.Logger

	cmd := &cli.Command{
		Name:  "editor",
		Usage: "glasskit scene editor",
		Flags: flags,
		Before: func(ctx context.Context, _ *cli.Command) (context.Context, error) {
			var err error
			logger, err = logCfg.Configure()
			if err != nil {
				return nil, err
			}
			slog.SetDefault(logger)

			return ctx, nil
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			cfg := app.DefaultConfig()
			cfg.Title = "Glasskit Editor"

			if configPath != "" {
				var err error
				cfg, err = app.LoadConfig(configPath)
				if err != nil {
					return err
				}
			}
			if title != "" {
				cfg.Title = title
			}
			if width > 0 {
				cfg.Width = width
			}
			if height > 0 {
				cfg.Height = height
			}
			if fullscreen {
				cfg.Fullscreen = true
			}

			a, err := app.New(cfg, NewEditor(sceneDOT), app.WithLogger(logger))
			if err != nil {
				return err
			}

			logger.Info("starting editor",
				"width", cfg.Width,
				"height", cfg.Height,
				"fullscreen", cfg.Fullscreen,
			)

			return a.Run(ctx)
		},
	}

	return cmd.Run(ctx, args)
}

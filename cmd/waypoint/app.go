package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	"github.com/vitalvas/waypoint/internal/logging"
	"github.com/vitalvas/waypoint/manifest"
	"github.com/vitalvas/waypoint/mux"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "waypoint",
		Version: Version,
		Usage:   "Inspect, query and serve declarative route manifests",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "Log level (trace, debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: logging.FormatText,
				Usage: "Log format (text, json)",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if _, err := logging.Setup(cmd.String("log-format"), cmd.String("log-level")); err != nil {
				return ctx, cli.Exit(err, 1)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			routesCmd,
			matchCmd,
			urlCmd,
			exportCmd,
			serveCmd,
		},
	}
}

// manifestArg returns the manifest path given as first positional argument.
func manifestArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() < 1 {
		return "", cli.Exit("manifest file path required", 1)
	}
	return cmd.Args().First(), nil
}

// loadRouter loads the manifest at path and applies it to a new router.
// Every handler name resolves to the echo handler.
func loadRouter(path string) (*mux.Router, *manifest.Manifest, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	r := mux.NewRouter().SetLogger(slog.Default().With("component", "router"))
	if err := m.Apply(r, resolveHandler); err != nil {
		return nil, nil, fmt.Errorf("failed to apply manifest: %w", err)
	}

	return r, m, nil
}

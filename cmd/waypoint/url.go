package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

var urlCmd = &cli.Command{
	Name:      "url",
	Usage:     "Build the path of a named route",
	ArgsUsage: "<manifest> <name> [key=value ...]",
	Action: func(_ context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() < 2 {
			return cli.Exit("usage: url <manifest> <name> [key=value ...]", 1)
		}

		args := cmd.Args().Slice()

		params, err := parseParams(args[2:])
		if err != nil {
			return cli.Exit(err, 1)
		}

		r, _, err := loadRouter(args[0])
		if err != nil {
			return cli.Exit(err, 1)
		}

		u, err := r.URL(args[1], params)
		if err != nil {
			return cli.Exit(err, 1)
		}

		fmt.Fprintln(cmd.Root().Writer, u)
		return nil
	},
}

// parseParams converts key=value arguments into a parameter map.
func parseParams(args []string) (map[string]string, error) {
	params := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", arg)
		}
		params[key] = value
	}
	return params, nil
}

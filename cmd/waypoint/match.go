package main

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/urfave/cli/v3"
	"github.com/vitalvas/waypoint/internal/fancy"
)

var matchCmd = &cli.Command{
	Name:      "match",
	Usage:     "Find the route a request would be dispatched to",
	ArgsUsage: "<manifest> <method> <path>",
	Action: func(_ context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() < 3 {
			return cli.Exit("usage: match <manifest> <method> <path>", 1)
		}

		r, _, err := loadRouter(cmd.Args().Get(0))
		if err != nil {
			return cli.Exit(err, 1)
		}

		method, path := cmd.Args().Get(1), cmd.Args().Get(2)

		match, err := r.FindMatch(method, path)
		if err != nil {
			return cli.Exit(fmt.Errorf("%s %s: %w", method, path, err), 1)
		}

		w := cmd.Root().Writer
		fmt.Fprintln(w, fancy.RouteLine(match.Route))
		if name := match.Route.GetName(); name != "" {
			fmt.Fprintf(w, "name: %s\n", name)
		}
		fmt.Fprintf(w, "handler: %s\n", match.Route.GetHandler())
		for _, key := range slices.Sorted(maps.Keys(match.Params)) {
			fmt.Fprintf(w, "param %s = %s\n", key, match.Params[key])
		}

		return nil
	},
}

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/vitalvas/waypoint/internal/fancy"
)

var routesCmd = &cli.Command{
	Name:      "routes",
	Usage:     "Print the route table of a manifest in match order",
	ArgsUsage: "<manifest>",
	Action: func(_ context.Context, cmd *cli.Command) error {
		path, err := manifestArg(cmd)
		if err != nil {
			return err
		}

		r, _, err := loadRouter(path)
		if err != nil {
			return cli.Exit(err, 1)
		}

		fmt.Fprintln(cmd.Root().Writer, fancy.RouteTree(r.Routes()))
		return nil
	},
}

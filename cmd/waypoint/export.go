package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/vitalvas/waypoint/manifest"
)

var exportCmd = &cli.Command{
	Name:      "export",
	Usage:     "Print the normalized route table of a manifest",
	ArgsUsage: "<manifest>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   string(manifest.FormatYAML),
			Usage:   "Output format (yaml, toml)",
		},
	},
	Action: func(_ context.Context, cmd *cli.Command) error {
		path, err := manifestArg(cmd)
		if err != nil {
			return err
		}

		r, _, err := loadRouter(path)
		if err != nil {
			return cli.Exit(err, 1)
		}

		data, err := manifest.FromRouter(r).Encode(manifest.Format(cmd.String("format")))
		if err != nil {
			return cli.Exit(err, 1)
		}

		fmt.Fprint(cmd.Root().Writer, string(data))
		return nil
	},
}

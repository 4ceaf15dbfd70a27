package main

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/allisson/fieldcrypt/cmd/app/commands"
)

func getSystemCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "check-config",
			Usage: "Validate the master key and the salt slots of the given datasets",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "datasets",
					Aliases: []string{"d"},
					Value:   "",
					Usage:   "Comma-separated dataset names to verify (e.g., users,cards)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				datasets := []string{}
				if raw := cmd.String("datasets"); raw != "" {
					for _, name := range strings.Split(raw, ",") {
						if trimmed := strings.TrimSpace(name); trimmed != "" {
							datasets = append(datasets, trimmed)
						}
					}
				}
				return commands.RunCheckConfig(ctx, datasets, commands.DefaultIO().Writer)
			},
		},
		{
			Name:  "metrics-server",
			Usage: "Start the standalone Prometheus metrics server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunMetricsServer(ctx, version)
			},
		},
	}
}

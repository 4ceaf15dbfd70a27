package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/fieldcrypt/cmd/app/commands"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-master-key",
			Usage: "Generate a fresh 256-bit master key for provisioning or root-secret rotation",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "kms-key-uri",
					Aliases: []string{"k"},
					Value:   "",
					Usage:   "Wrap the key with a KMS before output (gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunGenerateMasterKey(ctx, cmd.String("kms-key-uri"), commands.DefaultIO().Writer)
			},
		},
		{
			Name:  "generate-salt",
			Usage: "Generate a fresh 256-bit salt for registering a new dataset",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "dataset",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Dataset name (e.g., the protected table name)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunGenerateSalt(cmd.String("dataset"), commands.DefaultIO().Writer)
			},
		},
	}
}

package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-docform/internal/config"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a sample configuration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Destination `FILE`",
						Value: "docform.toml",
					},
				},
				Action: func(c *cli.Context) error {
					path := c.String("path")
					if err := config.InitConfig(path); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Configuration written to %s\n", path)
					return nil
				},
			},
			{
				Name:  "validate",
				Usage: "Load and check the configuration",
				Action: func(c *cli.Context) error {
					cfg, err := config.LoadConfig(c.String("config"))
					if err != nil {
						return err
					}
					if err := config.Validate(cfg); err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, "Configuration is valid")
					return nil
				},
			},
		},
	}
}

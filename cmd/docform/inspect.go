package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Print the fields, prefilled data and placeholders of a document type",
		Flags: pathFlags(
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Document type `LABEL` (default type when omitted)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (json, yaml)",
				Value:   "json",
			},
		),
		Action: func(c *cli.Context) error {
			env, err := loadEnvironment(c)
			if err != nil {
				return err
			}
			label := c.String("type")
			if label == "" {
				def, _ := env.docs.Registry().Default()
				label = def.Label
			}
			analysis, err := env.docs.Analyze(c.Context, label)
			if err != nil {
				return err
			}

			out := c.App.Writer
			switch c.String("format") {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(analysis)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(analysis); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q", c.String("format"))
			}
		},
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-docform/pkg/renderers/tui"
)

const version = "0.1.0"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// newApp builds the CLI. Prompt options are passed to the fill command.
func newApp(prompt ...tui.Option) *cli.App {
	return &cli.App{
		Name:    "docform",
		Usage:   "Fill administrative document templates from reference data",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (trace, debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format (console, json)",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			typesCommand(),
			inspectCommand(),
			fillCommand(prompt...),
			configCommand(),
		},

		// --set values may contain commas.
		DisableSliceFlagSeparator: true,
	}
}

// pathFlags are accepted by every command that reads documents.
func pathFlags(extra ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:  "data-dir",
			Usage: "Directory holding the reference and template documents",
		},
		&cli.StringFlag{
			Name:  "registry",
			Usage: "YAML or JSON registry `FILE` replacing the built-in document types",
		},
	}, extra...)
}

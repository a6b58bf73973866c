package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func typesCommand() *cli.Command {
	return &cli.Command{
		Name:  "types",
		Usage: "List the document types by category",
		Flags: pathFlags(),
		Action: func(c *cli.Context) error {
			env, err := loadEnvironment(c)
			if err != nil {
				return err
			}
			types := env.docs.Registry()
			def, _ := types.Default()
			out := c.App.Writer
			for _, group := range types.Groups() {
				if group.Category != "" {
					fmt.Fprintln(out, group.Category)
				}
				for _, entry := range group.Entries {
					marker := " "
					if entry.Label == def.Label {
						marker = "*"
					}
					fmt.Fprintf(out, "  %s %s\n", marker, entry.Label)
				}
			}
			return nil
		},
	}
}

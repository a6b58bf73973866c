package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-docform/pkg/render"
	"github.com/goliatone/go-docform/pkg/renderers/tui"
)

func fillCommand(prompt ...tui.Option) *cli.Command {
	return &cli.Command{
		Name:  "fill",
		Usage: "Prompt for missing fields and write the document",
		Flags: pathFlags(
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Document type `LABEL`; prompts when omitted",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output `FILE`; defaults to the generated name in the current directory",
			},
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "Preset a field as `NAME=VALUE`; repeatable",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print the collected values instead of writing the document",
			},
		),
		Action: func(c *cli.Context) error {
			env, err := loadEnvironment(c)
			if err != nil {
				return err
			}
			presets, err := parseAssignments(c.StringSlice("set"))
			if err != nil {
				return err
			}

			options := append([]tui.Option{
				tui.WithOutput(c.App.Writer),
				tui.WithOutputFormat(tui.OutputFormatPrettyText),
			}, prompt...)
			prompter, err := tui.New(options...)
			if err != nil {
				return err
			}

			ctx := c.Context
			loc := env.localizer()
			label := c.String("type")
			if label == "" {
				def, _ := env.docs.Registry().Default()
				label, err = prompter.ChooseType(ctx, loc, env.docs.Registry().Groups(), def.Label)
				if err != nil {
					return err
				}
			}

			analysis, err := env.docs.Analyze(ctx, label)
			if err != nil {
				return err
			}
			page := env.docs.Page(loc, &analysis)
			opts := render.RenderOptions{Values: presets, Localizer: loc}

			if c.Bool("dry-run") {
				payload, err := prompter.Render(ctx, page, opts)
				if err != nil {
					return err
				}
				_, err = c.App.Writer.Write(payload)
				return err
			}

			answers, err := prompter.Collect(ctx, page, opts)
			if err != nil {
				return err
			}
			submitted := make(map[string]string, len(presets)+len(answers))
			for name, value := range presets {
				submitted[name] = value
			}
			for name, value := range answers {
				submitted[name] = value
			}

			out, err := env.docs.Generate(ctx, analysis, submitted)
			if err != nil {
				fmt.Fprintln(c.App.ErrWriter, render.GenerateError(loc, err).Message)
				return err
			}
			path := c.String("out")
			if path == "" {
				path = out.FileName
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}
			if err := os.WriteFile(path, out.Content, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintln(c.App.Writer, render.GenerateSuccess(loc).Message)
			fmt.Fprintln(c.App.Writer, path)
			return nil
		},
	}
}

// parseAssignments turns NAME=VALUE pairs into a map. Values may contain
// "=" and "\n" escapes for line breaks.
func parseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, want NAME=VALUE", pair)
		}
		out[name] = strings.ReplaceAll(value, `\n`, "\n")
	}
	return out, nil
}

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-docform/internal/server"
	"github.com/goliatone/go-docform/pkg/session"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web dashboard and JSON API",
		Flags: pathFlags(&cli.StringFlag{
			Name:  "addr",
			Usage: "Listen address, e.g. :8050",
		}),
		Action: func(c *cli.Context) error {
			env, err := loadEnvironment(c)
			if err != nil {
				return err
			}
			cfg := env.cfg

			sessions := session.NewStore(
				session.WithTTL(cfg.Session.TTL),
				session.WithSize(cfg.Session.Size),
				session.WithSecureCookie(cfg.Session.Secure),
			)
			srv := server.New(env.docs, sessions,
				server.WithLogger(env.logger),
				server.WithLocale(cfg.Server.Locale),
			)

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			env.logger.Info().
				Str("data_dir", cfg.Data.Dir).
				Int("types", env.docs.Registry().Len()).
				Msg("starting docform")
			return srv.Start(ctx, cfg.Server.Addr, cfg.Server.ShutdownGrace)
		},
	}
}

package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"notehub/internal/config"
	"notehub/internal/logging"
)

// @title Notehub API
// @version 1.0
// @description Share lecture notes, like and rate them, and browse platform statistics.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)
	defer log.Sync() //nolint:errcheck

	app := &cli.App{
		Name:  "notehub",
		Usage: "note sharing API server",
		// No command given: serve.
		Action: func(c *cli.Context) error {
			return serve(c.Context, cfg, log)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(c *cli.Context) error {
					return serve(c.Context, cfg, log)
				},
			},
			{
				Name:  "migrate",
				Usage: "apply the database schema and exit",
				Action: func(c *cli.Context) error {
					return migrate(c.Context, cfg, log)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal("notehub_exited", zap.Error(err))
	}
}

// cmd/api/main.go
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"aps-bridge/internal/app"
	"aps-bridge/internal/config"
	"aps-bridge/internal/logging"
)

var BuildVersion = "dev" // set via ldflags

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:    "aps-bridge",
		Usage:   "3D API server: CORS gate and APS STEP upload endpoint",
		Version: BuildVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Usage: "listen host (overrides APP_HOST)"},
			&cli.StringFlag{Name: "port", Aliases: []string{"p"}, Usage: "listen port (overrides APP_PORT)"},
			&cli.BoolFlag{Name: "debug", Usage: "debug logging, CORS decision logging (overrides APP_DEBUG)"},
			&cli.StringFlag{Name: "log-level", Usage: "logrus level (overrides LOG_LEVEL)"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(c, cfg); err != nil {
		return err
	}

	log := logging.New(cfg)
	log.WithField("version", BuildVersion).Info("starting " + cfg.AppName)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.New(cfg, log).Run(ctx); err != nil {
		log.WithError(err).Error("server error")
		return err
	}
	log.Info("server stopped")
	return nil
}

// applyFlags lets explicitly set flags win over the environment.
func applyFlags(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("host") {
		cfg.Host = c.String("host")
	}
	if c.IsSet("port") {
		cfg.Port = c.String("port")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg.Validate()
}

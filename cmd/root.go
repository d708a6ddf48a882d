package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func RootApp() *cli.App {
	return &cli.App{
		Name:  "notionfeed",
		Usage: "Serve a Notion database as a JSON image feed",
		Description: `Serves the rows of a Notion database as a JSON feed for image
		galleries.

		Each row needs an Image (files) property. Caption or Title, Status and
		Date are optional. Rows without an image are left out and the rest are
		sorted newest first by Date, falling back to when the row was created.

		Flags can generally be set via environment variables, e.g.:

		--notion-token => NOTION_TOKEN=secret_...
		--notion-db-id => NOTION_DB_ID=...
		--port => NOTIONFEED_PORT=8080
		`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (trace, debug, info, warn, error)",
				EnvVars: []string{"NOTIONFEED_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "text",
				Usage:   "Log format (text or json)",
				EnvVars: []string{"NOTIONFEED_LOG_FORMAT"},
			},
		},
		Before: func(ctx *cli.Context) error {
			return setupLogging(ctx.String("log-level"), ctx.String("log-format"))
		},
		Commands: []*cli.Command{
			serveCmd(),
			queryCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// Show help if no command is specified
			return ctx.App.Run([]string{"", "help"})
		},
	}
}

func setupLogging(level string, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(lvl)

	switch format {
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q", format)
	}

	// Keep stdout free for command output
	log.SetOutput(os.Stderr)
	return nil
}

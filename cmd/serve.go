package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notionfeed/server"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the feed over HTTP",
		Description: `Starts the HTTP server.

The feed is served at /api/notion. Every request queries the Notion database
once, so put the server behind a cache that honours s-maxage.`,
		Flags: append(feedFlags(),
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   3000,
				Usage:   "Port to listen on",
				EnvVars: []string{"NOTIONFEED_PORT", "PORT"},
			},
		),
		Action: func(ctx *cli.Context) error {
			builder, cfg, err := loadFeed(ctx)
			if err != nil {
				return err
			}

			log.WithFields(log.Fields{
				"filter_statuses": cfg.Feed.FilterStatuses,
				"allow_origins":   cfg.Server.AllowOrigins,
			}).Info("Feed configured")

			app := server.Server(&server.ServerConfig{
				Builder:      builder,
				AllowOrigins: cfg.Server.AllowOrigins,
			})

			// Graceful shutdown
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigChan
				log.Info("Gracefully shutting down...")
				if err := app.ShutdownWithTimeout(60 * time.Second); err != nil {
					log.Errorf("Failed to shut down server: %v", err)
				}
			}()

			addr := fmt.Sprintf(":%d", ctx.Int("port"))
			log.Infof("Starting server on %s", addr)
			if err := app.Listen(addr); err != nil {
				return fmt.Errorf("server stopped: %w", err)
			}

			log.Info("Done!")
			return nil
		},
	}
}

package cmd

import (
	"fmt"

	"notionfeed/config"
	"notionfeed/feeds"
	"notionfeed/notion"

	"github.com/urfave/cli/v2"
)

// feedFlags are shared by every command that builds the feed
func feedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "notion-token",
			Usage:   "Notion integration token",
			EnvVars: []string{"NOTION_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "notion-db-id",
			Usage:   "ID of the Notion database to read",
			EnvVars: []string{"NOTION_DB_ID"},
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to feed configuration file",
			EnvVars: []string{"NOTIONFEED_CONFIG"},
		},
		&cli.StringSliceFlag{
			Name:    "filter-status",
			Usage:   "Only show rows with this status, can be repeated. Overrides the config file",
			EnvVars: []string{"FILTER_STATUSES"},
		},
	}
}

// loadFeed reads the configuration and sets up a builder. Missing
// credentials are not rejected here; they fail on the first query.
func loadFeed(ctx *cli.Context) (*feeds.Builder, *config.TomlConfig, error) {
	cfg, err := config.LoadConfig(ctx.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if ctx.IsSet("filter-status") {
		cfg = cfg.WithFilterStatuses(ctx.StringSlice("filter-status"))
	}

	client := notion.NewClient(ctx.String("notion-token"))
	builder := feeds.NewBuilder(client, ctx.String("notion-db-id"), cfg.Feed)

	return builder, cfg, nil
}

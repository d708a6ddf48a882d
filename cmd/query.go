package cmd

import (
	"fmt"
	"io"
	"os"

	"notionfeed/models"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"
)

func queryCmd() *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "Build the feed once and print it",
		Description: `Queries the Notion database once and prints each feed item as a
JSON object on a single line. Use a tool like jq to process the output.

Useful to check that the integration can see the database before deploying.
Prints all log messages to stderr.`,
		Flags: feedFlags(),
		Action: func(ctx *cli.Context) error {
			builder, _, err := loadFeed(ctx)
			if err != nil {
				return err
			}

			items, err := builder.Build(ctx.Context)
			if err != nil {
				return err
			}

			return printItems(os.Stdout, items)
		},
	}
}

func printItems(w io.Writer, items []models.Item) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("failed to encode item %s: %w", item.Id, err)
		}
	}
	return nil
}

package feeds

import (
	"context"

	"notionfeed/config"
	"notionfeed/models"
	"notionfeed/notion"
	"notionfeed/query"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// Builder turns one database query into a filtered, sorted list of items
type Builder struct {
	client     query.Querier
	databaseID string
	filters    []query.FilterStrategy
}

func NewBuilder(client query.Querier, databaseID string, cfg config.TomlFeed) *Builder {
	return &Builder{
		client:     client,
		databaseID: databaseID,
		filters: []query.FilterStrategy{
			&ImageFilter{},
			&StatusFilter{Statuses: append([]string(nil), cfg.FilterStatuses...)},
		},
	}
}

// Build queries the database once and returns the feed. Errors from the
// query are returned as-is so their message reaches the caller.
func (b *Builder) Build(ctx context.Context) ([]models.Item, error) {
	resp, err := b.client.QueryDatabase(ctx, b.databaseID, notion.QueryRequest{
		PageSize: PageSize,
	})
	if err != nil {
		return nil, err
	}

	items := lo.Map(resp.Results, func(page notion.Page, _ int) models.Item {
		return ItemFromPage(page)
	})
	items = ApplyFilters(items, b.filters...)
	items = SortNewestFirst(items)

	if items == nil {
		items = []models.Item{}
	}

	log.WithFields(log.Fields{
		"rows":  len(resp.Results),
		"items": len(items),
	}).Debug("Built feed")

	return items, nil
}

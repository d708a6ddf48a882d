package query

import (
	"context"

	"notionfeed/models"
	"notionfeed/notion"
)

// Querier runs a database query against the upstream store
type Querier interface {
	QueryDatabase(ctx context.Context, databaseID string, req notion.QueryRequest) (*notion.QueryResponse, error)
}

// FilterStrategy decides whether an item stays in the feed
type FilterStrategy interface {
	// Keep reports whether the item should be kept
	Keep(item models.Item) bool
}

var _ Querier = (*notion.Client)(nil)

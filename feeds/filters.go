package feeds

import (
	"notionfeed/models"
	"notionfeed/query"

	"github.com/samber/lo"
)

// ImageFilter drops items without an image
type ImageFilter struct{}

func (f *ImageFilter) Keep(item models.Item) bool {
	return item.Image != ""
}

// StatusFilter keeps items whose status is in the allow-list. An empty
// allow-list keeps everything.
type StatusFilter struct {
	Statuses []string
}

func (f *StatusFilter) Keep(item models.Item) bool {
	if len(f.Statuses) == 0 {
		return true
	}
	return lo.Contains(f.Statuses, item.Status)
}

// ApplyFilters runs the filters in order and keeps the items every filter accepts
func ApplyFilters(items []models.Item, filters ...query.FilterStrategy) []models.Item {
	for _, filter := range filters {
		items = lo.Filter(items, func(item models.Item, _ int) bool {
			return filter.Keep(item)
		})
	}
	return items
}

var _ query.FilterStrategy = (*ImageFilter)(nil)
var _ query.FilterStrategy = (*StatusFilter)(nil)

package feeds

import (
	"slices"
	"time"

	"notionfeed/models"

	"github.com/araddon/dateparse"
	"github.com/samber/lo"
)

// EffectiveTime is the time an item is sorted by: its date if set,
// otherwise when the row was created. Values that cannot be parsed give
// the zero time.
func EffectiveTime(item models.Item) time.Time {
	value := item.CreatedTime
	if item.Date != nil {
		value = *item.Date
	}

	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

type datedItem struct {
	item models.Item
	at   time.Time
}

// SortNewestFirst sorts items by effective time, most recent first. Items
// with the same effective time keep their relative order.
func SortNewestFirst(items []models.Item) []models.Item {
	dated := lo.Map(items, func(item models.Item, _ int) datedItem {
		return datedItem{item: item, at: EffectiveTime(item)}
	})

	slices.SortStableFunc(dated, func(a, b datedItem) int {
		return b.at.Compare(a.at)
	})

	return lo.Map(dated, func(d datedItem, _ int) models.Item {
		return d.item
	})
}

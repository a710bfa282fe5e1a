package aggregate

import (
	"slices"

	"market-news/internal/domain/entity"
)

// SortNewestFirst orders items by PublishedAt descending, in place.
// Items with equal instants keep their relative order.
func SortNewestFirst(items []entity.NewsItem) {
	slices.SortStableFunc(items, func(a, b entity.NewsItem) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
}

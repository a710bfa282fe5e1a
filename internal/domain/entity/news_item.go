// Package entity defines the core domain entities of the news aggregator.
// It contains the raw shapes produced by feed fetching, the canonical
// NewsItem returned to API clients, and their validation rules.
package entity

import "time"

// NewsItem is the canonical unit returned by an aggregation run.
// It is created once per unique title and never modified afterwards.
type NewsItem struct {
	Title       string
	Link        string
	Description string // may contain markup, passed through verbatim
	Published   string // original date string from the feed, kept for display

	// PublishedAt is the parsed form of Published. It is only a sort key
	// and is never serialized.
	PublishedAt time.Time

	// Source is the title of the feed the item came from.
	Source string

	// Image is the URL of the first media attachment, nil when the entry had none.
	Image *string
}

package aggregate

import (
	"fmt"

	"market-news/internal/domain/entity"
)

// Normalizer maps raw feed entries onto NewsItems.
type Normalizer struct {
	dates *DateParser
}

// NewNormalizer creates a Normalizer that parses dates with dates.
func NewNormalizer(dates *DateParser) *Normalizer {
	return &Normalizer{dates: dates}
}

// Normalize converts entry into a NewsItem attributed to sourceTitle.
//
// Text fields are copied verbatim. The image is the first media URL, or nil.
// A missing required field returns an error wrapping entity.ErrMissingField.
// An unparseable date never errors; the item is dated with the current time.
func (n *Normalizer) Normalize(entry entity.RawEntry, sourceTitle string) (entity.NewsItem, error) {
	item, _, err := n.normalize(entry, sourceTitle)
	return item, err
}

func (n *Normalizer) normalize(entry entity.RawEntry, sourceTitle string) (entity.NewsItem, bool, error) {
	if err := entry.Validate(); err != nil {
		return entity.NewsItem{}, false, fmt.Errorf("normalize entry: %w", err)
	}

	publishedAt, fallback := n.dates.parse(entry.Published)

	return entity.NewsItem{
		Title:       entry.Title,
		Link:        entry.Link,
		Description: entry.Description,
		Published:   entry.Published,
		PublishedAt: publishedAt,
		Source:      sourceTitle,
		Image:       firstImage(entry.MediaURLs),
	}, fallback, nil
}

func firstImage(urls []string) *string {
	if len(urls) == 0 || urls[0] == "" {
		return nil
	}
	u := urls[0]
	return &u
}

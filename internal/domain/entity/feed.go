package entity

// FeedSource identifies a remote feed endpoint by its URL.
type FeedSource string

// String returns the feed URL.
func (s FeedSource) String() string {
	return string(s)
}

// RawFeed is the parsed result of fetching one FeedSource.
type RawFeed struct {
	Title   string
	Entries []RawEntry
}

// RawEntry is one feed item as fetched, before normalization.
type RawEntry struct {
	Title       string
	Link        string
	Description string
	Published   string

	// MediaURLs holds the URLs of the entry's media attachments.
	// Direct media:content children come first, then those inside media:group.
	MediaURLs []string
}

// Validate reports the first required field that is missing from the entry.
// Title, link, description and published date are required; media is optional.
// An empty value counts as missing, so <description></description> fails.
func (e RawEntry) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"title", e.Title},
		{"link", e.Link},
		{"description", e.Description},
		{"published", e.Published},
	}
	for _, r := range required {
		if r.value == "" {
			return &ValidationError{Field: r.field, Message: "is required", Err: ErrMissingField}
		}
	}
	return nil
}

package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEntry() RawEntry {
	return RawEntry{
		Title:       "Gold climbs",
		Link:        "https://example.com/gold",
		Description: "<p>Gold rose</p>",
		Published:   "Mon, 28 Jul 2025 08:00:00 GMT",
	}
}

func TestRawEntry_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(e *RawEntry)
		wantField string
	}{
		{name: "valid entry without media", mutate: func(e *RawEntry) {}},
		{name: "valid entry with media", mutate: func(e *RawEntry) { e.MediaURLs = []string{"https://img/1.jpg"} }},
		{name: "missing title", mutate: func(e *RawEntry) { e.Title = "" }, wantField: "title"},
		{name: "missing link", mutate: func(e *RawEntry) { e.Link = "" }, wantField: "link"},
		{name: "missing description", mutate: func(e *RawEntry) { e.Description = "" }, wantField: "description"},
		{name: "missing published", mutate: func(e *RawEntry) { e.Published = "" }, wantField: "published"},
		{name: "whitespace description is present", mutate: func(e *RawEntry) { e.Description = " " }},
		{
			name:      "first missing field is reported",
			mutate:    func(e *RawEntry) { e.Link = ""; e.Published = "" },
			wantField: "link",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := validEntry()
			tt.mutate(&entry)

			err := entry.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingField))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestFeedSource_String(t *testing.T) {
	src := FeedSource("https://example.com/rss")
	assert.Equal(t, "https://example.com/rss", src.String())
}

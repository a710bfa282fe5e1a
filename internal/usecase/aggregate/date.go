package aggregate

import (
	"log/slog"
	"strings"
	"time"

	"market-news/internal/observability/metrics"
)

// Clock supplies the current time. It is injected so the date fallback is testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Accepted forms of "Mon, 02 Jan 2006 15:04:05 GMT" without the zone token.
// The single-digit day form is what some publishers emit.
var publishedLayouts = []string{
	"Mon, 02 Jan 2006 15:04:05",
	"Mon, 2 Jan 2006 15:04:05",
}

// DateParser turns feed publication dates into instants.
type DateParser struct {
	clock Clock
}

// NewDateParser returns a DateParser using clock for fallbacks.
// A nil clock means SystemClock.
func NewDateParser(clock Clock) *DateParser {
	if clock == nil {
		clock = SystemClock{}
	}
	return &DateParser{clock: clock}
}

// Parse interprets text as an RFC 1123 date whose zone token is GMT or UTC.
// Any other zone, a numeric offset or malformed text yields the current time
// from the clock. Parse never fails.
func (p *DateParser) Parse(text string) time.Time {
	t, _ := p.parse(text)
	return t
}

// parse is Parse that also reports whether the fallback was taken.
func (p *DateParser) parse(text string) (time.Time, bool) {
	if t, ok := parseRFC1123(text); ok {
		return t, false
	}

	metrics.RecordDateParseFallback()
	slog.Debug("unparseable published date, using current time",
		slog.String("published", text))
	return p.clock.Now(), true
}

func parseRFC1123(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	idx := strings.LastIndexByte(text, ' ')
	if idx < 0 {
		return time.Time{}, false
	}

	switch text[idx+1:] {
	case "GMT", "UTC":
	default:
		return time.Time{}, false
	}

	body := text[:idx]
	for _, layout := range publishedLayouts {
		if t, err := time.ParseInLocation(layout, body, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

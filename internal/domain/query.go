package domain

import "time"

// CatalogQuery describes one catalog fetch. Zero values mean "no filter".
type CatalogQuery struct {
	ObjectType ObjectType // empty = all types
	Country    string     // empty = all countries
	ActiveOnly bool       // restrict to objects without a decay date
	Limit      int        // clamped to [1, max] before the request
}

// MaxFeedRangeDays is the widest date range the close-approach feed accepts
// per request.
const MaxFeedRangeDays = 7

// DateRange is one close-approach query window. Dates are calendar days;
// the feed has no finer granularity.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Clamp normalizes the range: a zero start becomes now, an end before the
// start becomes the start, and a span wider than MaxFeedRangeDays is cut
// to it.
func (r DateRange) Clamp(now time.Time) DateRange {
	if r.Start.IsZero() {
		r.Start = now
	}
	if r.End.Before(r.Start) {
		r.End = r.Start
	}
	if max := r.Start.AddDate(0, 0, MaxFeedRangeDays-1); r.End.After(max) {
		r.End = max
	}
	return r
}

// ClampLimit bounds a requested limit to [1, maxLimit]. Zero or negative
// requests get the full maxLimit rather than an empty page.
func ClampLimit(limit, maxLimit int) int {
	if limit <= 0 || limit > maxLimit {
		return maxLimit
	}
	return limit
}

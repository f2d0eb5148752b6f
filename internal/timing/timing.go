// internal/timing/timing.go
package timing

import "time"

// Token is a relative-time hint attached to a message draft before it is
// resolved to an absolute send time.
type Token string

const (
	TokenImmediate Token = "immediate"
	TokenOneHour   Token = "1-hour"
	TokenOneDay    Token = "1-day"
	TokenThreeDays Token = "3-days"
	TokenFiveDays  Token = "5-days"
	TokenOneWeek   Token = "1-week"
	TokenTwoWeeks  Token = "2-weeks"
)

// offsets is the single source of truth for token resolution. Adding a token
// is a data change here, not a new branch somewhere else.
var offsets = map[Token]time.Duration{
	TokenImmediate: 5 * time.Minute,
	TokenOneHour:   time.Hour,
	TokenOneDay:    24 * time.Hour,
	TokenThreeDays: 72 * time.Hour,
	TokenFiveDays:  120 * time.Hour,
	TokenOneWeek:   7 * 24 * time.Hour,
	TokenTwoWeeks:  14 * 24 * time.Hour,
}

// Resolve maps a timing token plus an anchor instant to an absolute instant.
// Unknown tokens fail open to the anchor itself; ok reports whether the token
// was recognized so the caller can log the anomaly.
func Resolve(anchor time.Time, token Token) (time.Time, bool) {
	offset, ok := offsets[token]
	if !ok {
		return anchor, false
	}
	return anchor.Add(offset), true
}

// Interval is the release cadence for drip content.
type Interval string

const (
	IntervalDaily   Interval = "daily"
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
)

// ReleaseAt computes the absolute release instant for the item at
// releaseIndex (0-based) when itemsPerInterval items unlock per interval.
// It is deterministic and non-decreasing in releaseIndex.
func ReleaseAt(anchor time.Time, releaseIndex int, unit Interval, itemsPerInterval int) time.Time {
	if itemsPerInterval < 1 {
		itemsPerInterval = 1
	}
	if releaseIndex < 0 {
		releaseIndex = 0
	}
	count := releaseIndex / itemsPerInterval

	switch unit {
	case IntervalDaily:
		return anchor.Add(time.Duration(count) * 24 * time.Hour)
	case IntervalWeekly:
		return anchor.Add(time.Duration(count) * 7 * 24 * time.Hour)
	case IntervalMonthly:
		return anchor.AddDate(0, count, 0)
	default:
		return anchor
	}
}

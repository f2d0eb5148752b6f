// internal/drip/drip.go
package drip

import (
	"time"

	"github.com/leadloop/outreach-backend/internal/timing"
)

// Schedule describes how a course's content unlocks over time: starting at
// StartAt, ItemsPerInterval chapters/lessons become available per Interval.
type Schedule struct {
	StartAt          time.Time       `json:"start_at"`
	Interval         timing.Interval `json:"interval"`
	ItemsPerInterval int             `json:"items_per_interval"`
}

// ReleaseAt returns the absolute instant the item at index unlocks.
func (s Schedule) ReleaseAt(index int) time.Time {
	return timing.ReleaseAt(s.StartAt, index, s.Interval, s.ItemsPerInterval)
}

// Available reports whether the item at index has unlocked by now.
func (s Schedule) Available(index int, now time.Time) bool {
	return !now.Before(s.ReleaseAt(index))
}

// AvailableCount returns how many of total items have unlocked by now.
// Releases are non-decreasing in index, so the scan stops at the first
// locked item.
func (s Schedule) AvailableCount(total int, now time.Time) int {
	for i := 0; i < total; i++ {
		if !s.Available(i, now) {
			return i
		}
	}
	return total
}

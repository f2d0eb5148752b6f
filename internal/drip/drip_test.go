package drip

import (
	"testing"
	"time"

	"github.com/leadloop/outreach-backend/internal/timing"
)

func TestScheduleAvailability(t *testing.T) {
	start := time.Date(2025, 2, 3, 8, 0, 0, 0, time.UTC)
	s := Schedule{StartAt: start, Interval: timing.IntervalWeekly, ItemsPerInterval: 2}

	// At the start instant only the first batch is open.
	if got := s.AvailableCount(10, start); got != 2 {
		t.Errorf("expected 2 items at start, got %d", got)
	}

	// Mid way through week two, the second batch has opened.
	midWeekTwo := start.Add(10 * 24 * time.Hour)
	if got := s.AvailableCount(10, midWeekTwo); got != 4 {
		t.Errorf("expected 4 items in week two, got %d", got)
	}

	if s.Available(4, midWeekTwo) {
		t.Error("item 4 should still be locked in week two")
	}

	// Far enough in the future everything is open.
	if got := s.AvailableCount(10, start.AddDate(1, 0, 0)); got != 10 {
		t.Errorf("expected all 10 items after a year, got %d", got)
	}
}

func TestScheduleBeforeStart(t *testing.T) {
	start := time.Date(2025, 2, 3, 8, 0, 0, 0, time.UTC)
	s := Schedule{StartAt: start, Interval: timing.IntervalDaily, ItemsPerInterval: 1}

	if got := s.AvailableCount(5, start.Add(-time.Hour)); got != 0 {
		t.Errorf("expected nothing available before start, got %d", got)
	}
}

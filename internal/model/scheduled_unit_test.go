package model

import "testing"

func TestScheduledReachesOnlyValidStates(t *testing.T) {
	valid := map[string]bool{
		UnitStatusSending:   true,
		UnitStatusSent:      true,
		UnitStatusFailed:    true,
		UnitStatusPaused:    true,
		UnitStatusCancelled: true,
	}

	all := []string{UnitStatusScheduled, UnitStatusSending, UnitStatusSent,
		UnitStatusFailed, UnitStatusPaused, UnitStatusCancelled}

	for _, to := range all {
		got := CanTransition(UnitStatusScheduled, to)
		if got != valid[to] {
			t.Errorf("scheduled -> %s: expected %v, got %v", to, valid[to], got)
		}
	}
}

func TestTerminalStatesAdmitNothing(t *testing.T) {
	all := []string{UnitStatusScheduled, UnitStatusSending, UnitStatusSent,
		UnitStatusFailed, UnitStatusPaused, UnitStatusCancelled}

	for _, from := range []string{UnitStatusSent, UnitStatusFailed, UnitStatusCancelled} {
		if !IsTerminal(from) {
			t.Errorf("%s should be terminal", from)
		}
		for _, to := range all {
			if CanTransition(from, to) {
				t.Errorf("terminal %s must not transition to %s", from, to)
			}
		}
	}
}

func TestPausedResumesToScheduledOnly(t *testing.T) {
	if !CanTransition(UnitStatusPaused, UnitStatusScheduled) {
		t.Error("paused must resume to scheduled")
	}
	if !CanTransition(UnitStatusPaused, UnitStatusCancelled) {
		t.Error("paused must be cancellable")
	}
	if CanTransition(UnitStatusPaused, UnitStatusSent) {
		t.Error("paused must not jump straight to sent")
	}
	if CanTransition(UnitStatusSent, UnitStatusPaused) {
		t.Error("sent unit cannot be paused")
	}
}

package kv

import (
	"testing"
	"time"
)

func TestSetGetDelete(t *testing.T) {
	s := NewMemoryStore()

	s.Set("event:42", "done", time.Minute)
	if v, ok := s.Get("event:42"); !ok || v != "done" {
		t.Errorf("expected done, got %q (ok=%v)", v, ok)
	}

	s.Delete("event:42")
	if _, ok := s.Get("event:42"); ok {
		t.Error("expected key to be gone after delete")
	}
}

func TestExpiredEntriesAreAbsent(t *testing.T) {
	s := NewMemoryStore()

	s.Set("gone", "x", -time.Second)
	if _, ok := s.Get("gone"); ok {
		t.Error("expired entry must not be readable")
	}
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	s := NewMemoryStore()

	s.Set("old", "x", time.Minute)
	s.Set("fresh", "y", 2*time.Hour)

	removed := s.Sweep(time.Now().Add(time.Hour))
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if _, ok := s.Get("fresh"); !ok {
		t.Error("fresh entry should survive the sweep")
	}
}

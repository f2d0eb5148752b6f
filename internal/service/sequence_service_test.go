package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/leadloop/outreach-backend/internal/generator"
	"github.com/leadloop/outreach-backend/internal/kv"
	"github.com/leadloop/outreach-backend/internal/model"
	"github.com/leadloop/outreach-backend/internal/service"
)

type fakeCoachRepo struct {
	coach *model.Coach
}

func (f *fakeCoachRepo) GetByID(id int) (*model.Coach, error) { return f.coach, nil }
func (f *fakeCoachRepo) VoiceProfile(coachID int) (*model.VoiceProfile, error) {
	return nil, nil
}

func newSequenceService(repo *fakeScheduleRepo, now time.Time) *service.SequenceService {
	return &service.SequenceService{
		ScheduleRepo: repo,
		LeadRepo: &fakeLeadRepo{leads: map[int]*model.Lead{
			1: {ID: 1, CoachID: 2, Email: "dana@example.com", FirstName: "Dana", Status: model.LeadStatusContacted},
		}},
		CoachRepo: &fakeCoachRepo{coach: &model.Coach{ID: 2, FirstName: "Sam", Specialty: "executive coaching"}},
		Generator: &generator.SequenceGenerator{}, // static templates
		Dedupe:    kv.NewMemoryStore(),
		Now:       func() time.Time { return now },
	}
}

func TestGenerateForLeadSchedulesFourUnits(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeScheduleRepo()
	svc := newSequenceService(repo, now)

	result, err := svc.GenerateForLead(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}

	if result.Sequence.StatusAtGeneration != model.LeadStatusContacted {
		t.Errorf("expected status snapshot, got %q", result.Sequence.StatusAtGeneration)
	}
	if !result.Sequence.IsActive {
		t.Error("new sequence must be active")
	}
	if len(result.Units) != 4 {
		t.Fatalf("expected 4 units, got %d", len(result.Units))
	}

	// Contacted fallback uses immediate, 3-days, 1-week, 2-weeks.
	wantTimes := []time.Time{
		now.Add(5 * time.Minute),
		now.Add(72 * time.Hour),
		now.Add(7 * 24 * time.Hour),
		now.Add(14 * 24 * time.Hour),
	}
	for i, u := range result.Units {
		if u.SequenceOrder != i {
			t.Errorf("unit %d has order %d", i, u.SequenceOrder)
		}
		if u.Status != model.UnitStatusScheduled {
			t.Errorf("unit %d created in status %s", i, u.Status)
		}
		if !u.ScheduledFor.Equal(wantTimes[i]) {
			t.Errorf("unit %d: expected %v, got %v", i, wantTimes[i], u.ScheduledFor)
		}
		if u.Subject == "" || u.Body == "" {
			t.Errorf("unit %d has empty content", i)
		}
	}
}

func TestRegenerationSupersedesOldUnits(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeScheduleRepo()
	svc := newSequenceService(repo, now)

	first, err := svc.GenerateForLead(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GenerateForLead(context.Background(), 1); err != nil {
		t.Fatal(err)
	}

	for _, old := range first.Units {
		u, _ := repo.GetUnitByID(old.ID)
		if u.Status != model.UnitStatusCancelled {
			t.Errorf("superseded unit %s should be cancelled, got %s", old.ID, u.Status)
		}
	}

	units, _ := repo.ListUnitsByLead(1)
	scheduled := 0
	for _, u := range units {
		if u.Status == model.UnitStatusScheduled {
			scheduled++
		}
	}
	if scheduled != 4 {
		t.Errorf("expected exactly the new 4 units scheduled, got %d", scheduled)
	}
}

func TestGenerateForEventDeduplicates(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeScheduleRepo()
	svc := newSequenceService(repo, now)

	first, err := svc.GenerateForEvent(context.Background(), "evt-1", 1)
	if err != nil {
		t.Fatal(err)
	}
	if first == nil {
		t.Fatal("first delivery must generate a sequence")
	}

	second, err := svc.GenerateForEvent(context.Background(), "evt-1", 1)
	if err != nil {
		t.Fatal(err)
	}
	if second != nil {
		t.Error("redelivered event must be a no-op")
	}

	units, _ := repo.ListUnitsByLead(1)
	if len(units) != 4 {
		t.Errorf("duplicate event created extra units: %d total", len(units))
	}
}

func TestGenerateForUnknownLead(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newSequenceService(newFakeScheduleRepo(), now)

	if _, err := svc.GenerateForLead(context.Background(), 999); err == nil {
		t.Error("expected an error for a missing lead")
	}
}

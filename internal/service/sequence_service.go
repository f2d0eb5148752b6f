// internal/service/sequence_service.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/leadloop/outreach-backend/internal/errors"
	"github.com/leadloop/outreach-backend/internal/generator"
	"github.com/leadloop/outreach-backend/internal/kv"
	"github.com/leadloop/outreach-backend/internal/model"
	"github.com/leadloop/outreach-backend/internal/repository"
	"github.com/leadloop/outreach-backend/internal/timing"
)

// How long a processed lead event stays deduplicated. Queue redelivery within
// this window is a no-op.
const eventDedupeTTL = 24 * time.Hour

// SequenceService materializes message sequences: it asks the generator for
// drafts, resolves their timing tokens against now, and persists the sequence
// plus its scheduled units in one transaction (superseding older sequences).
type SequenceService struct {
	ScheduleRepo repository.ScheduleRepositoryInterface
	LeadRepo     repository.LeadRepositoryInterface
	CoachRepo    repository.CoachRepositoryInterface
	Generator    *generator.SequenceGenerator
	Dedupe       kv.Store
	Now          func() time.Time
}

type GenerateResult struct {
	Sequence *model.Sequence        `json:"sequence"`
	Units    []*model.ScheduledUnit `json:"units"`
}

func (s *SequenceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GenerateForLead builds and persists a fresh sequence for the lead's current
// status. Prior scheduled/paused units are cancelled by the store in the same
// transaction.
func (s *SequenceService) GenerateForLead(ctx context.Context, leadID int) (*GenerateResult, error) {
	lead, err := s.LeadRepo.GetByID(leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, appErrors.NewLeadNotFound(leadID)
	}

	coach, err := s.CoachRepo.GetByID(lead.CoachID)
	if err != nil {
		return nil, err
	}
	if coach == nil {
		return nil, appErrors.NewCoachNotFound(lead.CoachID)
	}

	generated := s.Generator.Generate(ctx, lead, coach)
	now := s.now()

	seq := &model.Sequence{
		ID:                 uuid.NewString(),
		LeadID:             lead.ID,
		CoachID:            coach.ID,
		StatusAtGeneration: lead.Status,
		Description:        generated.Description,
		GeneratedAt:        now,
		IsActive:           true,
	}

	units := make([]*model.ScheduledUnit, 0, len(generated.Drafts))
	for i, draft := range generated.Drafts {
		scheduledFor, ok := timing.Resolve(now, timing.Token(draft.Timing))
		if !ok {
			log.Printf("⚠️ unknown timing token %q on draft %d for lead %d, scheduling immediately\n", draft.Timing, i, lead.ID)
		}
		units = append(units, &model.ScheduledUnit{
			ID:            uuid.NewString(),
			SequenceID:    seq.ID,
			LeadID:        lead.ID,
			CoachID:       coach.ID,
			Subject:       draft.Subject,
			Body:          draft.Body,
			SequenceOrder: i,
			ScheduledFor:  scheduledFor,
			Status:        model.UnitStatusScheduled,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	if err := s.ScheduleRepo.CreateSequence(seq, units); err != nil {
		return nil, err
	}

	log.Printf("✅ sequence %s created for lead %d (%d units, status %s)\n", seq.ID, lead.ID, len(units), lead.Status)
	return &GenerateResult{Sequence: seq, Units: units}, nil
}

// GenerateForEvent is the queue-facing entry point. Events carry an ID so
// redelivered messages are processed at most once per dedupe window; a
// duplicate returns (nil, nil).
func (s *SequenceService) GenerateForEvent(ctx context.Context, eventID string, leadID int) (*GenerateResult, error) {
	if eventID != "" && s.Dedupe != nil {
		if _, seen := s.Dedupe.Get("lead-event:" + eventID); seen {
			log.Println("↩️ skipping duplicate lead event:", eventID)
			return nil, nil
		}
	}

	result, err := s.GenerateForLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if eventID != "" && s.Dedupe != nil {
		s.Dedupe.Set("lead-event:"+eventID, "processed", eventDedupeTTL)
	}
	return result, nil
}

// PauseLead moves all scheduled units for the lead to paused. Idempotent:
// units in any other state are untouched.
func (s *SequenceService) PauseLead(leadID int) (int64, error) {
	return s.ScheduleRepo.PauseLead(leadID)
}

// ResumeLead moves paused units back to scheduled with their original send
// times, so overdue units go out on the next sweep.
func (s *SequenceService) ResumeLead(leadID int) (int64, error) {
	return s.ScheduleRepo.ResumeLead(leadID)
}

// CancelLead cancels every outstanding (scheduled or paused) unit.
func (s *SequenceService) CancelLead(leadID int) (int64, error) {
	return s.ScheduleRepo.CancelLead(leadID)
}

func (s *SequenceService) ListUnits(leadID int) ([]*model.ScheduledUnit, error) {
	return s.ScheduleRepo.ListUnitsByLead(leadID)
}

// Single-unit transitions. Invalid requests (wrong current state) are no-ops
// that report the unit's current state.

func (s *SequenceService) PauseUnit(id string) (*model.ScheduledUnit, error) {
	return s.ScheduleRepo.PauseUnit(id)
}

func (s *SequenceService) ResumeUnit(id string) (*model.ScheduledUnit, error) {
	return s.ScheduleRepo.ResumeUnit(id)
}

func (s *SequenceService) CancelUnit(id string) (*model.ScheduledUnit, error) {
	return s.ScheduleRepo.CancelUnit(id)
}

// internal/service/dispatcher.go
package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/leadloop/outreach-backend/internal/model"
	"github.com/leadloop/outreach-backend/internal/repository"
	"github.com/leadloop/outreach-backend/internal/scoring"
	"github.com/leadloop/outreach-backend/internal/transport"
)

// Dispatcher sweeps for due units and sends them. Each unit's send and status
// update is isolated: one failure never aborts the rest of the sweep, and no
// claimed unit is left without an outcome.
type Dispatcher struct {
	ScheduleRepo repository.ScheduleRepositoryInterface
	LeadRepo     repository.LeadRepositoryInterface
	Sender       transport.Sender
	Scorer       *scoring.Scorer // optional pre-send analytics
	BatchSize    int
	Concurrency  int
	Now          func() time.Time
}

type SweepResult struct {
	Claimed int
	Sent    int
	Failed  int
}

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Sweep claims every due unit (up to BatchSize) and dispatches them through a
// bounded worker pool. It returns an error only when the claim itself fails.
func (d *Dispatcher) Sweep(ctx context.Context) (SweepResult, error) {
	batch := d.BatchSize
	if batch <= 0 {
		batch = 50
	}
	workers := d.Concurrency
	if workers <= 0 {
		workers = 4
	}

	units, err := d.ScheduleRepo.ClaimDue(d.now(), batch)
	if err != nil {
		return SweepResult{}, err
	}

	result := SweepResult{Claimed: len(units)}
	if len(units) == 0 {
		return result, nil
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, workers)
	)

	for _, unit := range units {
		wg.Add(1)
		sem <- struct{}{}
		go func(u *model.ScheduledUnit) {
			defer wg.Done()
			defer func() { <-sem }()

			sent := d.dispatch(ctx, u)

			mu.Lock()
			if sent {
				result.Sent++
			} else {
				result.Failed++
			}
			mu.Unlock()
		}(unit)
	}
	wg.Wait()

	return result, nil
}

// dispatch sends one claimed unit and records exactly one outcome. Reports
// whether the unit reached "sent".
func (d *Dispatcher) dispatch(ctx context.Context, u *model.ScheduledUnit) bool {
	lead, err := d.LeadRepo.GetByID(u.LeadID)
	if err != nil || lead == nil {
		msg := "lead not found"
		if err != nil {
			msg = err.Error()
		}
		d.markFailed(u, msg)
		return false
	}

	if d.Scorer != nil {
		// Analytics only; a low score never blocks the send.
		quick := d.Scorer.QuickCheck(u.Subject, u.Body)
		log.Printf("📊 unit %s deliverability quick score: %d\n", u.ID, quick.Score)
	}

	if err := d.Sender.Send(ctx, lead.Email, u.Subject, u.Body); err != nil {
		d.markFailed(u, err.Error())
		return false
	}

	if err := d.ScheduleRepo.MarkSent(u.ID, d.now()); err != nil {
		log.Println("⚠️ failed to record sent status for unit", u.ID, ":", err)
		return false
	}
	return true
}

func (d *Dispatcher) markFailed(u *model.ScheduledUnit, msg string) {
	if err := d.ScheduleRepo.MarkFailed(u.ID, msg, d.now()); err != nil {
		log.Println("⚠️ failed to record failure for unit", u.ID, ":", err)
		return
	}
	log.Printf("❌ unit %s failed: %s\n", u.ID, msg)
}

// Run sweeps on a fixed interval until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Println("🧹 dispatcher sweeping every", interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("dispatcher stopped:", ctx.Err())
			return
		case <-ticker.C:
			res, err := d.Sweep(ctx)
			if err != nil {
				log.Println("⚠️ sweep failed:", err)
				continue
			}
			if res.Claimed > 0 {
				log.Printf("🧹 sweep done: %d claimed, %d sent, %d failed\n", res.Claimed, res.Sent, res.Failed)
			}
		}
	}
}

// internal/controller/sequence_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	appErrors "github.com/leadloop/outreach-backend/internal/errors"
	"github.com/leadloop/outreach-backend/internal/model"
	"github.com/leadloop/outreach-backend/internal/queue"
	"github.com/leadloop/outreach-backend/internal/service"
)

type SequenceController struct {
	SequenceService *service.SequenceService
	Queue           queue.Queue
}

// GenerateSequence materializes a fresh sequence for the lead synchronously.
func (c *SequenceController) GenerateSequence(w http.ResponseWriter, r *http.Request) {
	leadID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid lead id", http.StatusBadRequest)
		return
	}

	result, err := c.SequenceService.GenerateForLead(r.Context(), leadID)
	if err != nil {
		var notFound *appErrors.ErrLeadNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// PublishLeadEvent enqueues a lead lifecycle event; the worker picks it up
// and generates the sequence out of band.
func (c *SequenceController) PublishLeadEvent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EventID string `json:"event_id"`
		LeadID  int    `json:"lead_id"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.LeadID == 0 {
		http.Error(w, "lead_id is required", http.StatusBadRequest)
		return
	}
	if body.EventID == "" {
		body.EventID = uuid.NewString()
	}

	event := queue.LeadEvent{EventID: body.EventID, LeadID: body.LeadID, Status: body.Status}
	if err := c.Queue.Publish(queue.TopicLeadEvents, event); err != nil {
		http.Error(w, "failed to enqueue event: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"event_id": event.EventID,
		"lead_id":  event.LeadID,
		"queued":   true,
	})
}

func (c *SequenceController) PauseSequences(w http.ResponseWriter, r *http.Request) {
	c.bulkTransition(w, r, "paused", c.SequenceService.PauseLead)
}

func (c *SequenceController) ResumeSequences(w http.ResponseWriter, r *http.Request) {
	c.bulkTransition(w, r, "resumed", c.SequenceService.ResumeLead)
}

func (c *SequenceController) CancelSequences(w http.ResponseWriter, r *http.Request) {
	c.bulkTransition(w, r, "cancelled", c.SequenceService.CancelLead)
}

func (c *SequenceController) bulkTransition(w http.ResponseWriter, r *http.Request, action string, op func(int) (int64, error)) {
	leadID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid lead id", http.StatusBadRequest)
		return
	}

	updated, err := op(leadID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"lead_id": leadID,
		"action":  action,
		"updated": updated,
	})
}

func (c *SequenceController) PauseMessage(w http.ResponseWriter, r *http.Request) {
	c.unitTransition(w, r, c.SequenceService.PauseUnit)
}

func (c *SequenceController) ResumeMessage(w http.ResponseWriter, r *http.Request) {
	c.unitTransition(w, r, c.SequenceService.ResumeUnit)
}

func (c *SequenceController) CancelMessage(w http.ResponseWriter, r *http.Request) {
	c.unitTransition(w, r, c.SequenceService.CancelUnit)
}

// unitTransition applies a single-unit state change. A request that does not
// apply (resuming a sent unit, pausing a cancelled one) still returns 200
// with the unit's current state.
func (c *SequenceController) unitTransition(w http.ResponseWriter, r *http.Request, op func(string) (*model.ScheduledUnit, error)) {
	unitID := chi.URLParam(r, "unitID")

	unit, err := op(unitID)
	if err != nil {
		var notFound *appErrors.ErrUnitNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(unit)
}

// ListMessages returns every scheduled unit for the lead, newest schedule
// first is left to the client; the store orders by send time.
func (c *SequenceController) ListMessages(w http.ResponseWriter, r *http.Request) {
	leadID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid lead id", http.StatusBadRequest)
		return
	}

	units, err := c.SequenceService.ListUnits(leadID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"lead_id": leadID,
		"units":   units,
	})
}

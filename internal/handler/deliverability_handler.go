// internal/handler/deliverability_handler.go
package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/leadloop/outreach-backend/internal/drip"
	"github.com/leadloop/outreach-backend/internal/repository"
	"github.com/leadloop/outreach-backend/internal/scoring"
	"github.com/leadloop/outreach-backend/internal/timing"
)

// DeliverabilityHandler holds the dependencies for scoring and drip HTTP
// handlers.
type DeliverabilityHandler struct {
	Scorer    *scoring.Scorer
	CoachRepo repository.CoachRepositoryInterface
}

// ScoreMessage runs the full four-analyzer score. When coach_id is supplied,
// the coach's voice profile (if captured) feeds the personalization analyzer.
func (h *DeliverabilityHandler) ScoreMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Subject       string `json:"subject"`
		Body          string `json:"body"`
		RecipientType string `json:"recipient_type"`
		CoachID       int    `json:"coach_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	in := scoring.Input{
		Subject:       payload.Subject,
		Body:          payload.Body,
		RecipientType: payload.RecipientType,
	}
	if payload.CoachID != 0 {
		voice, err := h.CoachRepo.VoiceProfile(payload.CoachID)
		if err != nil {
			log.Println("⚠️ voice profile lookup failed, scoring without it:", err)
		} else {
			in.Voice = voice
		}
	}

	report := h.Scorer.Score(r.Context(), in)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// QuickCheck is the low-latency variant: trigger and structural analyzers
// only, no external calls.
func (h *DeliverabilityHandler) QuickCheck(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	result := h.Scorer.QuickCheck(payload.Subject, payload.Body)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// DripAvailability computes release instants for drip content. Query params:
// start (RFC3339), interval (daily|weekly|monthly), items_per_interval, total.
func (h *DeliverabilityHandler) DripAvailability(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		http.Error(w, "invalid start, expected RFC3339", http.StatusBadRequest)
		return
	}
	total, err := strconv.Atoi(r.URL.Query().Get("total"))
	if err != nil || total < 0 {
		http.Error(w, "invalid total", http.StatusBadRequest)
		return
	}
	perInterval, _ := strconv.Atoi(r.URL.Query().Get("items_per_interval"))

	schedule := drip.Schedule{
		StartAt:          start,
		Interval:         timing.Interval(r.URL.Query().Get("interval")),
		ItemsPerInterval: perInterval,
	}

	now := time.Now()
	releases := make([]map[string]any, 0, total)
	for i := 0; i < total; i++ {
		releases = append(releases, map[string]any{
			"index":      i,
			"release_at": schedule.ReleaseAt(i),
			"available":  schedule.Available(i, now),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"available_count": schedule.AvailableCount(total, now),
		"releases":        releases,
	})
}

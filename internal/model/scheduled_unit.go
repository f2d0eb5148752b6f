// internal/model/scheduled_unit.go
package model

import "time"

// ScheduledUnit statuses. "sending" is the in-flight claim marker set by the
// dispatcher between claiming a due unit and recording the send outcome;
// everything else follows the lifecycle: scheduled -> sent|failed|cancelled,
// scheduled <-> paused, paused -> cancelled.
const (
	UnitStatusScheduled = "scheduled"
	UnitStatusSending   = "sending"
	UnitStatusSent      = "sent"
	UnitStatusFailed    = "failed"
	UnitStatusPaused    = "paused"
	UnitStatusCancelled = "cancelled"
)

type ScheduledUnit struct {
	ID            string     `db:"id" json:"id"`
	SequenceID    string     `db:"sequence_id" json:"sequence_id"`
	LeadID        int        `db:"lead_id" json:"lead_id"`
	CoachID       int        `db:"coach_id" json:"coach_id"`
	Subject       string     `db:"subject" json:"subject"`
	Body          string     `db:"body" json:"body"`
	SequenceOrder int        `db:"sequence_order" json:"sequence_order"`
	ScheduledFor  time.Time  `db:"scheduled_for" json:"scheduled_for"`
	Status        string     `db:"status" json:"status"`
	SentAt        *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	ErrorMessage  *string    `db:"error_message" json:"error_message,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// unitTransitions lists the valid next statuses per current status. Terminal
// statuses map to an empty set; any transition not listed here is a no-op.
var unitTransitions = map[string][]string{
	UnitStatusScheduled: {UnitStatusSending, UnitStatusSent, UnitStatusFailed, UnitStatusPaused, UnitStatusCancelled},
	UnitStatusSending:   {UnitStatusSent, UnitStatusFailed},
	UnitStatusPaused:    {UnitStatusScheduled, UnitStatusCancelled},
	UnitStatusSent:      {},
	UnitStatusFailed:    {},
	UnitStatusCancelled: {},
}

// CanTransition reports whether a unit may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range unitTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(status string) bool {
	return len(unitTransitions[status]) == 0
}

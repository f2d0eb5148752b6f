// internal/model/sequence.go
package model

import "time"

// Sequence is one generation event for a lead. A new sequence supersedes the
// previous one: older scheduled/paused units are cancelled, never deleted.
type Sequence struct {
	ID                 string    `db:"id" json:"id"`
	LeadID             int       `db:"lead_id" json:"lead_id"`
	CoachID            int       `db:"coach_id" json:"coach_id"`
	StatusAtGeneration string    `db:"status_at_generation" json:"status_at_generation"`
	Description        string    `db:"description" json:"description"`
	GeneratedAt        time.Time `db:"generated_at" json:"generated_at"`
	IsActive           bool      `db:"is_active" json:"is_active"`
}

// MessageDraft is the ephemeral output of sequence generation: a message plus
// a relative timing token, before resolution to an absolute send time.
type MessageDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Timing  string `json:"timing"`
}

// internal/model/lead.go
package model

import "time"

// Lead lifecycle statuses recognized by the sequence generator. An unknown
// status is treated as "contacted".
const (
	LeadStatusContacted    = "contacted"
	LeadStatusScheduled    = "scheduled"
	LeadStatusConverted    = "converted"
	LeadStatusUnresponsive = "unresponsive"
)

type Lead struct {
	ID        int       `db:"id" json:"id"`
	CoachID   int       `db:"coach_id" json:"coach_id"`
	Email     string    `db:"email" json:"email"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Company   string    `db:"company" json:"company"`
	Goals     string    `db:"goals" json:"goals"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

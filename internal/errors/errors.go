// internal/errors/errors.go
package appErrors

import "fmt"

// ErrLeadNotFound is a sentinel error
type ErrLeadNotFound struct {
	LeadID int
}

func (e *ErrLeadNotFound) Error() string {
	return fmt.Sprintf("lead with ID %d not found", e.LeadID)
}

// Helper constructor
func NewLeadNotFound(id int) error {
	return &ErrLeadNotFound{LeadID: id}
}

type ErrCoachNotFound struct {
	CoachID int
}

func (e *ErrCoachNotFound) Error() string {
	return fmt.Sprintf("coach with ID %d not found", e.CoachID)
}

func NewCoachNotFound(id int) error {
	return &ErrCoachNotFound{CoachID: id}
}

type ErrUnitNotFound struct {
	UnitID string
}

func (e *ErrUnitNotFound) Error() string {
	return fmt.Sprintf("scheduled unit %s not found", e.UnitID)
}

func NewUnitNotFound(id string) error {
	return &ErrUnitNotFound{UnitID: id}
}

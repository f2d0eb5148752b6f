// internal/repository/schedule_repository.go
package repository

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	appErrors "github.com/leadloop/outreach-backend/internal/errors"
	"github.com/leadloop/outreach-backend/internal/model"
)

// ScheduleRepositoryInterface is the durable record of sequences and their
// scheduled units. All transitions are conditional updates so concurrent
// actors (sweep vs pause/resume) resolve in the store.
type ScheduleRepositoryInterface interface {
	// CreateSequence persists the sequence and its units in one transaction,
	// superseding prior sequences for the lead: their scheduled/paused units
	// are cancelled and the sequences deactivated.
	CreateSequence(seq *model.Sequence, units []*model.ScheduledUnit) error

	// ClaimDue atomically moves due scheduled units to the in-flight
	// "sending" status and returns them. Safe with concurrent sweepers.
	ClaimDue(now time.Time, limit int) ([]*model.ScheduledUnit, error)

	MarkSent(id string, at time.Time) error
	MarkFailed(id string, errMsg string, at time.Time) error

	// Bulk lead-level transitions; return the number of units moved.
	PauseLead(leadID int) (int64, error)
	ResumeLead(leadID int) (int64, error)
	CancelLead(leadID int) (int64, error)

	// Single-unit transitions. An invalid request (e.g. resuming a sent
	// unit) is a no-op that returns the unit's current state, so bulk
	// callers stay idempotent.
	PauseUnit(id string) (*model.ScheduledUnit, error)
	ResumeUnit(id string) (*model.ScheduledUnit, error)
	CancelUnit(id string) (*model.ScheduledUnit, error)

	GetUnitByID(id string) (*model.ScheduledUnit, error)
	ListUnitsByLead(leadID int) ([]*model.ScheduledUnit, error)
}

type ScheduleRepository struct {
	DB *sql.DB
}

const unitColumns = `id, sequence_id, lead_id, coach_id, subject, body,
        sequence_order, scheduled_for, status, sent_at, error_message, created_at, updated_at`

func (r *ScheduleRepository) CreateSequence(seq *model.Sequence, units []*model.ScheduledUnit) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Supersession: cancel outstanding units of earlier sequences, never
	// delete them.
	_, err = tx.Exec(`
        UPDATE scheduled_units
        SET status=$1, updated_at=$2
        WHERE lead_id=$3 AND status IN ($4, $5)
    `, model.UnitStatusCancelled, seq.GeneratedAt, seq.LeadID, model.UnitStatusScheduled, model.UnitStatusPaused)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`UPDATE sequences SET is_active=false WHERE lead_id=$1 AND is_active`, seq.LeadID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        INSERT INTO sequences (id, lead_id, coach_id, status_at_generation, description, generated_at, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, seq.ID, seq.LeadID, seq.CoachID, seq.StatusAtGeneration, seq.Description, seq.GeneratedAt, seq.IsActive)
	if err != nil {
		return err
	}

	for _, u := range units {
		_, err = tx.Exec(`
            INSERT INTO scheduled_units
            (id, sequence_id, lead_id, coach_id, subject, body, sequence_order, scheduled_for, status, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        `, u.ID, u.SequenceID, u.LeadID, u.CoachID, u.Subject, u.Body, u.SequenceOrder, u.ScheduledFor, u.Status, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *ScheduleRepository) ClaimDue(now time.Time, limit int) ([]*model.ScheduledUnit, error) {
	rows, err := r.DB.Query(`
        UPDATE scheduled_units
        SET status=$1, updated_at=$2
        WHERE id IN (
            SELECT id FROM scheduled_units
            WHERE status=$3 AND scheduled_for <= $2
            ORDER BY scheduled_for
            LIMIT $4
            FOR UPDATE SKIP LOCKED
        )
        RETURNING `+unitColumns,
		model.UnitStatusSending, now, model.UnitStatusScheduled, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUnits(rows)
}

func (r *ScheduleRepository) MarkSent(id string, at time.Time) error {
	res, err := r.DB.Exec(`
        UPDATE scheduled_units
        SET status=$1, sent_at=$2, updated_at=$2
        WHERE id=$3 AND status=$4
    `, model.UnitStatusSent, at, id, model.UnitStatusSending)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func (r *ScheduleRepository) MarkFailed(id string, errMsg string, at time.Time) error {
	res, err := r.DB.Exec(`
        UPDATE scheduled_units
        SET status=$1, error_message=$2, updated_at=$3
        WHERE id=$4 AND status=$5
    `, model.UnitStatusFailed, errMsg, at, id, model.UnitStatusSending)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func (r *ScheduleRepository) PauseLead(leadID int) (int64, error) {
	return r.bulkTransition(leadID, model.UnitStatusPaused, model.UnitStatusScheduled)
}

func (r *ScheduleRepository) ResumeLead(leadID int) (int64, error) {
	// scheduled_for is deliberately untouched: a resumed unit whose time has
	// passed becomes due on the next sweep.
	return r.bulkTransition(leadID, model.UnitStatusScheduled, model.UnitStatusPaused)
}

func (r *ScheduleRepository) CancelLead(leadID int) (int64, error) {
	return r.bulkTransition(leadID, model.UnitStatusCancelled, model.UnitStatusScheduled, model.UnitStatusPaused)
}

func (r *ScheduleRepository) bulkTransition(leadID int, to string, from ...string) (int64, error) {
	query := `
        UPDATE scheduled_units
        SET status=$1, updated_at=$2
        WHERE lead_id=$3 AND status = ANY($4)
    `
	res, err := r.DB.Exec(query, to, time.Now(), leadID, pq.Array(from))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ScheduleRepository) PauseUnit(id string) (*model.ScheduledUnit, error) {
	return r.unitTransition(id, model.UnitStatusPaused, model.UnitStatusScheduled)
}

func (r *ScheduleRepository) ResumeUnit(id string) (*model.ScheduledUnit, error) {
	return r.unitTransition(id, model.UnitStatusScheduled, model.UnitStatusPaused)
}

func (r *ScheduleRepository) CancelUnit(id string) (*model.ScheduledUnit, error) {
	return r.unitTransition(id, model.UnitStatusCancelled, model.UnitStatusScheduled, model.UnitStatusPaused)
}

func (r *ScheduleRepository) unitTransition(id, to string, from ...string) (*model.ScheduledUnit, error) {
	_, err := r.DB.Exec(`
        UPDATE scheduled_units
        SET status=$1, updated_at=$2
        WHERE id=$3 AND status = ANY($4)
    `, to, time.Now(), id, pq.Array(from))
	if err != nil {
		return nil, err
	}
	// Zero rows means the transition did not apply; either way the caller
	// gets the unit's current state.
	return r.GetUnitByID(id)
}

func (r *ScheduleRepository) GetUnitByID(id string) (*model.ScheduledUnit, error) {
	row := r.DB.QueryRow(`SELECT `+unitColumns+` FROM scheduled_units WHERE id=$1`, id)

	u, err := scanUnit(row)
	if err == sql.ErrNoRows {
		return nil, appErrors.NewUnitNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *ScheduleRepository) ListUnitsByLead(leadID int) ([]*model.ScheduledUnit, error) {
	rows, err := r.DB.Query(`
        SELECT `+unitColumns+`
        FROM scheduled_units
        WHERE lead_id=$1
        ORDER BY scheduled_for, sequence_order
    `, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUnits(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUnit(row rowScanner) (*model.ScheduledUnit, error) {
	var u model.ScheduledUnit
	err := row.Scan(&u.ID, &u.SequenceID, &u.LeadID, &u.CoachID, &u.Subject, &u.Body,
		&u.SequenceOrder, &u.ScheduledFor, &u.Status, &u.SentAt, &u.ErrorMessage,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanUnits(rows *sql.Rows) ([]*model.ScheduledUnit, error) {
	units := []*model.ScheduledUnit{}
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewUnitNotFound(id)
	}
	return nil
}

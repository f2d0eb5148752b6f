// internal/repository/lead_repository.go
package repository

import (
	"database/sql"
	"time"

	"github.com/leadloop/outreach-backend/internal/model"
)

// LeadRepositoryInterface defines methods used by services
type LeadRepositoryInterface interface {
	GetByID(id int) (*model.Lead, error)
	ListAll() ([]model.Lead, error)
	UpdateStatus(id int, status string) error
}

type LeadRepository struct {
	DB *sql.DB
}

func (r *LeadRepository) GetByID(id int) (*model.Lead, error) {
	query := `
        SELECT id, coach_id, email, first_name, last_name, company, goals, status, created_at
        FROM leads
        WHERE id = $1
    `
	row := r.DB.QueryRow(query, id)

	var l model.Lead
	if err := row.Scan(&l.ID, &l.CoachID, &l.Email, &l.FirstName, &l.LastName, &l.Company, &l.Goals, &l.Status, &l.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return &l, nil
}

func (r *LeadRepository) ListAll() ([]model.Lead, error) {
	query := `
        SELECT id, coach_id, email, first_name, last_name, company, goals, status, created_at
        FROM leads
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []model.Lead{}
	for rows.Next() {
		var l model.Lead
		if err := rows.Scan(&l.ID, &l.CoachID, &l.Email, &l.FirstName, &l.LastName, &l.Company, &l.Goals, &l.Status, &l.CreatedAt); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) UpdateStatus(id int, status string) error {
	query := `UPDATE leads SET status=$1 WHERE id=$2`
	_, err := r.DB.Exec(query, status, id)
	return err
}

func (r *LeadRepository) Create(l *model.Lead) error {
	l.CreatedAt = time.Now()
	if l.Status == "" {
		l.Status = model.LeadStatusContacted
	}
	query := `
        INSERT INTO leads (coach_id, email, first_name, last_name, company, goals, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
	return r.DB.QueryRow(query, l.CoachID, l.Email, l.FirstName, l.LastName, l.Company, l.Goals, l.Status, l.CreatedAt).Scan(&l.ID)
}

// internal/repository/coach_repository.go
package repository

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/leadloop/outreach-backend/internal/model"
)

// CoachRepositoryInterface also acts as the voice profile provider for the
// deliverability scorer.
type CoachRepositoryInterface interface {
	GetByID(id int) (*model.Coach, error)
	VoiceProfile(coachID int) (*model.VoiceProfile, error)
}

type CoachRepository struct {
	DB *sql.DB
}

func (r *CoachRepository) GetByID(id int) (*model.Coach, error) {
	query := `
        SELECT id, email, first_name, last_name, specialty
        FROM coaches
        WHERE id = $1
    `
	row := r.DB.QueryRow(query, id)

	var c model.Coach
	if err := row.Scan(&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.Specialty); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return &c, nil
}

// VoiceProfile returns the coach's writing profile, or nil when none has been
// captured yet.
func (r *CoachRepository) VoiceProfile(coachID int) (*model.VoiceProfile, error) {
	query := `
        SELECT coach_id, communication_style, common_phrases
        FROM coach_voice_profiles
        WHERE coach_id = $1
    `
	row := r.DB.QueryRow(query, coachID)

	var p model.VoiceProfile
	if err := row.Scan(&p.CoachID, &p.CommunicationStyle, pq.Array(&p.CommonPhrases)); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *CoachRepository) Create(c *model.Coach) error {
	query := `
        INSERT INTO coaches (email, first_name, last_name, specialty)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	return r.DB.QueryRow(query, c.Email, c.FirstName, c.LastName, c.Specialty).Scan(&c.ID)
}

func (r *CoachRepository) SaveVoiceProfile(p *model.VoiceProfile) error {
	query := `
        INSERT INTO coach_voice_profiles (coach_id, communication_style, common_phrases)
        VALUES ($1, $2, $3)
        ON CONFLICT (coach_id) DO UPDATE
        SET communication_style = EXCLUDED.communication_style,
            common_phrases = EXCLUDED.common_phrases
    `
	_, err := r.DB.Exec(query, p.CoachID, p.CommunicationStyle, pq.Array(p.CommonPhrases))
	return err
}

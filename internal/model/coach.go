// internal/model/coach.go
package model

type Coach struct {
	ID        int    `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Specialty string `db:"specialty" json:"specialty"`
}

// VoiceProfile describes how a coach writes, used by the deliverability
// scorer to check that a message sounds like its sender.
type VoiceProfile struct {
	CoachID            int      `db:"coach_id" json:"coach_id"`
	CommunicationStyle string   `db:"communication_style" json:"communication_style"`
	CommonPhrases      []string `db:"common_phrases" json:"common_phrases"`
}

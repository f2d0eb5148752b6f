// internal/scoring/semantic.go
package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/leadloop/outreach-backend/internal/textgen"
)

// semanticAnalysis is the external collaborator's opinion. Nil fields mean
// the collaborator failed or stayed silent on that dimension; the composite
// formula treats them as zero contribution.
type semanticAnalysis struct {
	SubjectScore    *float64 `json:"subject_score"`
	ContentScore    *float64 `json:"content_score"`
	SpamLikelihood  *float64 `json:"spam_likelihood"`
	Personalization *float64 `json:"personalization"`
	GmailCategory   string   `json:"gmail_category"`
}

const semanticSystemPrompt = `You are an email deliverability analyst. Respond with a single JSON object: ` +
	`{"subject_score": 0-100, "content_score": 0-100, "spam_likelihood": 0-100, ` +
	`"personalization": 0-100, "gmail_category": "primary"|"promotions"|"updates"}. No prose.`

// analyzeSemantic asks the text-generation collaborator for a structured
// opinion. Every failure path degrades to an empty analysis; this analyzer
// never aborts a score.
func analyzeSemantic(ctx context.Context, client textgen.Client, recipientType, subject, body string) semanticAnalysis {
	if client == nil {
		return semanticAnalysis{}
	}

	prompt := fmt.Sprintf("Recipient type: %s\nSubject: %s\n\nBody:\n%s", recipientType, subject, body)
	raw, err := client.Complete(ctx, semanticSystemPrompt, prompt)
	if err != nil {
		log.Println("⚠️ semantic analyzer degraded to empty contribution:", err)
		return semanticAnalysis{}
	}

	var out semanticAnalysis
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Println("⚠️ semantic analyzer returned malformed JSON:", err)
		return semanticAnalysis{}
	}
	return out
}

// internal/scoring/report.go
package scoring

import "github.com/leadloop/outreach-backend/internal/model"

const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Finding is one trigger-phrase hit (or the low-tier aggregate).
type Finding struct {
	Phrase      string `json:"phrase"`
	Severity    string `json:"severity"`
	Explanation string `json:"explanation"`
	Fix         string `json:"fix"`
}

type Recommendation struct {
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

// Report is the full deliverability verdict for one message. It is a pure
// output value; nothing in the core persists it.
type Report struct {
	OverallScore            int              `json:"overall_score"`
	PrimaryInboxProbability int              `json:"primary_inbox_probability"`
	Recommendations         []Recommendation `json:"recommendations"`
	SpamTriggers            []Finding        `json:"spam_triggers"`
	Improvements            []string         `json:"improvements"`
	Strengths               []string         `json:"strengths"`
}

// Input is one message to score. Voice is optional; when present the
// personalization analyzer checks the text against the sender's profile.
type Input struct {
	Subject       string
	Body          string
	RecipientType string
	Voice         *model.VoiceProfile
}

// QuickResult is the lightweight quickCheck output: a score and at most five
// issues, computed without any external call.
type QuickResult struct {
	Score  int      `json:"score"`
	Issues []string `json:"issues"`
}

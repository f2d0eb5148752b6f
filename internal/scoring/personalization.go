// internal/scoring/personalization.go
package scoring

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leadloop/outreach-backend/internal/model"
)

var placeholderPattern = regexp.MustCompile(`\{[a-z_]+\}`)

var genericSalutations = []string{
	"dear sir/madam",
	"dear sir or madam",
	"to whom it may concern",
	"dear valued customer",
}

var boilerplatePhrases = []string{
	"unsubscribe",
	"to opt out",
	"this email was sent to",
	"you are receiving this email because",
}

type personalizationAnalysis struct {
	Score         int
	Issues        []string
	Strengths     []string
	VoiceMismatch bool
}

// analyzePersonalization starts at 50. A supplied voice profile always moves
// the score: a matching characteristic phrase helps, no match hurts.
func analyzePersonalization(subject, body string, voice *model.VoiceProfile) personalizationAnalysis {
	a := personalizationAnalysis{Score: 50}
	text := subject + " " + body
	lower := strings.ToLower(text)

	if placeholderPattern.MatchString(text) {
		a.Score += 20
		a.Strengths = append(a.Strengths, "message uses personalization placeholders")
	}

	for _, salutation := range genericSalutations {
		if strings.Contains(lower, salutation) {
			a.Score -= 15
			a.Issues = append(a.Issues, fmt.Sprintf("generic salutation %q undoes any personalization", salutation))
			break
		}
	}

	if voice != nil {
		matched := ""
		for _, phrase := range voice.CommonPhrases {
			if phrase != "" && strings.Contains(lower, strings.ToLower(phrase)) {
				matched = phrase
				break
			}
		}
		if matched != "" {
			a.Score += 15
			a.Strengths = append(a.Strengths, fmt.Sprintf("message sounds like the sender (%q)", matched))
		} else {
			a.Score -= 10
			a.VoiceMismatch = true
			a.Issues = append(a.Issues, "message does not use any of the sender's characteristic phrases")
		}
	}

	for _, phrase := range boilerplatePhrases {
		if strings.Contains(lower, phrase) {
			a.Score -= 10
			a.Issues = append(a.Issues, "bulk-mail boilerplate phrasing detected")
			break
		}
	}

	return a
}

// internal/scoring/triggers.go
package scoring

import (
	"fmt"
	"strings"
)

// Trigger phrases in three fixed severity tiers. High and medium matches are
// reported individually; low-tier matches only surface as a single aggregate
// finding once more than lowTierThreshold distinct phrases appear.
var highTriggers = []string{
	"act now",
	"100% free",
	"risk-free",
	"guaranteed income",
	"make money fast",
	"double your",
	"urgent",
	"winner",
	"no strings attached",
}

var mediumTriggers = []string{
	"limited time",
	"exclusive deal",
	"special offer",
	"don't miss",
	"once in a lifetime",
	"free trial",
	"money back",
	"no obligation",
	"sign up now",
}

var lowTriggers = []string{
	"free",
	"save",
	"discount",
	"offer",
	"deal",
	"bonus",
	"cash",
	"cheap",
	"promo",
}

const lowTierThreshold = 3

var triggerExplanations = map[string]string{
	SeverityHigh:   "the phrase %q is a strong spam-filter trigger",
	SeverityMedium: "the phrase %q is commonly flagged by spam filters",
}

var triggerFixes = map[string]string{
	SeverityHigh:   "remove %q or restate the point in plain language",
	SeverityMedium: "consider rephrasing %q to something more specific",
}

// detectTriggers scans subject and body case-insensitively against the three
// tiers. Order of findings is fixed by the tier tables, keeping output
// deterministic.
func detectTriggers(subject, body string) []Finding {
	text := strings.ToLower(subject + " " + body)

	var findings []Finding
	for _, phrase := range highTriggers {
		if strings.Contains(text, phrase) {
			findings = append(findings, Finding{
				Phrase:      phrase,
				Severity:    SeverityHigh,
				Explanation: fmt.Sprintf(triggerExplanations[SeverityHigh], phrase),
				Fix:         fmt.Sprintf(triggerFixes[SeverityHigh], phrase),
			})
		}
	}
	for _, phrase := range mediumTriggers {
		if strings.Contains(text, phrase) {
			findings = append(findings, Finding{
				Phrase:      phrase,
				Severity:    SeverityMedium,
				Explanation: fmt.Sprintf(triggerExplanations[SeverityMedium], phrase),
				Fix:         fmt.Sprintf(triggerFixes[SeverityMedium], phrase),
			})
		}
	}

	lowMatches := 0
	for _, phrase := range lowTriggers {
		if strings.Contains(text, phrase) {
			lowMatches++
		}
	}
	if lowMatches > lowTierThreshold {
		findings = append(findings, Finding{
			Phrase:      fmt.Sprintf("%d promotional words", lowMatches),
			Severity:    SeverityLow,
			Explanation: "the message leans on many promotional words at once",
			Fix:         "cut the sales vocabulary down to one or two concrete claims",
		})
	}

	return findings
}

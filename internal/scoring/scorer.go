// internal/scoring/scorer.go
package scoring

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/leadloop/outreach-backend/internal/textgen"
)

const defaultSemanticTimeout = 10 * time.Second

// Scorer combines four independent analyzers into one composite
// deliverability score. It never returns an error: analyzer failures degrade
// to zero contribution.
type Scorer struct {
	TextGen         textgen.Client
	SemanticTimeout time.Duration
}

// Score runs all four analyzers concurrently and applies the composite
// formula. Identical inputs with a stubbed external analyzer always produce
// identical output.
func (s *Scorer) Score(ctx context.Context, in Input) Report {
	timeout := s.SemanticTimeout
	if timeout <= 0 {
		timeout = defaultSemanticTimeout
	}
	semCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		wg       sync.WaitGroup
		findings []Finding
		str      structuralAnalysis
		pers     personalizationAnalysis
		sem      semanticAnalysis
	)

	wg.Add(4)
	go func() { defer wg.Done(); findings = detectTriggers(in.Subject, in.Body) }()
	go func() { defer wg.Done(); str = analyzeStructure(in.Subject, in.Body) }()
	go func() { defer wg.Done(); pers = analyzePersonalization(in.Subject, in.Body, in.Voice) }()
	go func() { defer wg.Done(); sem = analyzeSemantic(semCtx, s.TextGen, in.RecipientType, in.Subject, in.Body) }()
	wg.Wait()

	score := 85.0
	if sem.SpamLikelihood != nil {
		score -= *sem.SpamLikelihood * 0.3
	}
	if sem.Personalization != nil {
		score += (*sem.Personalization - 50) * 0.2
	}
	for _, f := range findings {
		switch f.Severity {
		case SeverityHigh:
			score -= 25
		case SeverityMedium:
			score -= 10
		case SeverityLow:
			score -= 3
		}
	}
	score *= float64(str.Score) / 100
	score += float64(pers.Score-50) * 0.3

	overall := clamp(int(math.Round(score)), 0, 100)

	// Primary-inbox placement is strictly harder than plain deliverability.
	primaryInbox := overall - 15
	if primaryInbox < 0 {
		primaryInbox = 0
	}

	report := Report{
		OverallScore:            overall,
		PrimaryInboxProbability: primaryInbox,
		SpamTriggers:            findings,
		Improvements:            append(append([]string{}, str.Issues...), pers.Issues...),
		Strengths:               append(append([]string{}, str.Strengths...), pers.Strengths...),
	}
	report.Recommendations = buildRecommendations(findings, str, pers, sem, in.Voice != nil)

	return report
}

// QuickCheck runs only the trigger and structural analyzers, for low-latency
// interactive feedback. No external calls.
func (s *Scorer) QuickCheck(subject, body string) QuickResult {
	findings := detectTriggers(subject, body)
	str := analyzeStructure(subject, body)

	score := 85.0
	for _, f := range findings {
		switch f.Severity {
		case SeverityHigh:
			score -= 25
		case SeverityMedium:
			score -= 10
		case SeverityLow:
			score -= 3
		}
	}
	score *= float64(str.Score) / 100

	issues := make([]string, 0, len(findings)+len(str.Issues))
	for _, f := range findings {
		issues = append(issues, f.Explanation)
	}
	issues = append(issues, str.Issues...)
	if len(issues) > 5 {
		issues = issues[:5]
	}

	return QuickResult{Score: clamp(int(math.Round(score)), 0, 100), Issues: issues}
}

var priorityWeight = map[string]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

func buildRecommendations(findings []Finding, str structuralAnalysis, pers personalizationAnalysis, sem semanticAnalysis, voiceSupplied bool) []Recommendation {
	var recs []Recommendation

	for _, f := range findings {
		if f.Severity == SeverityHigh {
			recs = append(recs, Recommendation{Priority: PriorityHigh, Message: f.Fix})
		}
	}
	if sem.SubjectScore != nil && *sem.SubjectScore < 70 {
		recs = append(recs, Recommendation{
			Priority: PriorityHigh,
			Message:  fmt.Sprintf("rework the subject line; the semantic analyzer rated it %.0f/100", *sem.SubjectScore),
		})
	}
	for _, issue := range str.Issues {
		recs = append(recs, Recommendation{Priority: PriorityMedium, Message: issue})
	}
	if pers.Score < 60 {
		recs = append(recs, Recommendation{
			Priority: PriorityMedium,
			Message:  "add personal details about the recipient; the message reads as generic",
		})
	}
	if voiceSupplied && pers.VoiceMismatch {
		recs = append(recs, Recommendation{
			Priority: PriorityHigh,
			Message:  "the message does not sound like the sender; borrow phrasing from past emails",
		})
	}
	if sem.GmailCategory == "promotions" {
		recs = append(recs, Recommendation{
			Priority: PriorityHigh,
			Message:  "Gmail will likely file this under Promotions; cut the marketing framing",
		})
	}

	// Stable: within a priority, insertion order above is preserved.
	sort.SliceStable(recs, func(i, j int) bool {
		return priorityWeight[recs[i].Priority] > priorityWeight[recs[j].Priority]
	})

	return recs
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

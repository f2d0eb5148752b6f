package scoring

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/leadloop/outreach-backend/internal/model"
)

// stubTextGen lets tests pin the external analyzer's opinion.
type stubTextGen struct {
	payload string
	err     error
}

func (s *stubTextGen) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return s.payload, s.err
}

func neutralBody(words int) string {
	sentence := "I reviewed the notes from our last conversation and wrote down a few ideas worth exploring together next quarter."
	perSentence := len(strings.Fields(sentence))
	var b strings.Builder
	for written := 0; written < words-perSentence; written += perSentence {
		b.WriteString(sentence)
		b.WriteString(" ")
	}
	b.WriteString("The summary lives here: https://example.com/notes")
	return b.String()
}

func TestScoreDeterministic(t *testing.T) {
	s := &Scorer{}
	in := Input{
		Subject: "Quick thoughts on your growth plan",
		Body:    neutralBody(200),
	}

	first := s.Score(context.Background(), in)
	second := s.Score(context.Background(), in)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same input produced different reports:\n%+v\n%+v", first, second)
	}
}

func TestSpammyScoresFarBelowNeutral(t *testing.T) {
	s := &Scorer{}

	spammyBody := "Click our links " +
		"https://a.example https://b.example https://c.example " +
		"https://d.example https://e.example https://f.example " +
		"and join thousands of happy readers who changed their results this very month"
	if n := len(strings.Fields(spammyBody)); n < 20 || n >= 50 {
		t.Fatalf("test fixture drifted: spammy body has %d words", n)
	}

	spammy := s.Score(context.Background(), Input{
		Subject: "URGENT: Act now, 100% free!!!",
		Body:    spammyBody,
	})
	neutral := s.Score(context.Background(), Input{
		Subject: "Quick thoughts on your growth plan",
		Body:    neutralBody(200),
	})

	highFound := false
	for _, f := range spammy.SpamTriggers {
		if f.Severity == SeverityHigh {
			highFound = true
		}
	}
	if !highFound {
		t.Error("expected at least one high-severity trigger finding")
	}

	if neutral.OverallScore-spammy.OverallScore <= 20 {
		t.Errorf("expected a >20 point gap, neutral=%d spammy=%d",
			neutral.OverallScore, spammy.OverallScore)
	}

	if spammy.PrimaryInboxProbability != maxInt(0, spammy.OverallScore-15) {
		t.Errorf("primary inbox probability must be score-15 floored at 0, got %d for score %d",
			spammy.PrimaryInboxProbability, spammy.OverallScore)
	}
}

func TestCompositeFormulaWithSemanticOpinion(t *testing.T) {
	stub := &stubTextGen{payload: `{"subject_score": 60, "content_score": 80,
		"spam_likelihood": 50, "personalization": 80, "gmail_category": "promotions"}`}
	s := &Scorer{TextGen: stub}

	got := s.Score(context.Background(), Input{
		Subject: "Quick thoughts on your growth plan",
		Body:    neutralBody(200),
	})

	// 85 - 50*0.3 + (80-50)*0.2 = 76, structural 100, personalization 50.
	if got.OverallScore != 76 {
		t.Errorf("expected composite score 76, got %d", got.OverallScore)
	}

	var sawSubjectRec, sawPromotionsRec bool
	for _, r := range got.Recommendations {
		if strings.Contains(r.Message, "subject line") && r.Priority == PriorityHigh {
			sawSubjectRec = true
		}
		if strings.Contains(r.Message, "Promotions") && r.Priority == PriorityHigh {
			sawPromotionsRec = true
		}
	}
	if !sawSubjectRec {
		t.Error("subject_score below 70 must produce a high-priority recommendation")
	}
	if !sawPromotionsRec {
		t.Error("a promotions prediction must produce a high-priority recommendation")
	}
}

func TestSemanticFailureDegradesToLocalScore(t *testing.T) {
	broken := &Scorer{TextGen: &stubTextGen{err: fmt.Errorf("upstream down")}}
	local := &Scorer{}

	in := Input{Subject: "Quick thoughts on your growth plan", Body: neutralBody(200)}

	if got, want := broken.Score(context.Background(), in).OverallScore, local.Score(context.Background(), in).OverallScore; got != want {
		t.Errorf("semantic failure should contribute nothing: got %d, want %d", got, want)
	}
}

func TestVoiceProfileNeverNeutral(t *testing.T) {
	s := &Scorer{}
	voice := &model.VoiceProfile{
		CommunicationStyle: "direct, warm",
		CommonPhrases:      []string{"worth exploring together"},
	}

	in := Input{Subject: "Quick thoughts on your growth plan", Body: neutralBody(200)}

	without := s.Score(context.Background(), in)

	in.Voice = voice
	matching := s.Score(context.Background(), in)
	if matching.OverallScore <= without.OverallScore {
		t.Errorf("voice match should raise the score: %d vs %d", matching.OverallScore, without.OverallScore)
	}

	in.Voice = &model.VoiceProfile{CommonPhrases: []string{"as per my last email"}}
	mismatched := s.Score(context.Background(), in)
	if mismatched.OverallScore >= without.OverallScore {
		t.Errorf("voice mismatch should lower the score: %d vs %d", mismatched.OverallScore, without.OverallScore)
	}

	var sawMismatchRec bool
	for _, r := range mismatched.Recommendations {
		if strings.Contains(r.Message, "sound like the sender") && r.Priority == PriorityHigh {
			sawMismatchRec = true
		}
	}
	if !sawMismatchRec {
		t.Error("voice mismatch must produce a high-priority recommendation")
	}
}

func TestLowTierTriggersAggregateOnly(t *testing.T) {
	body := neutralBody(120) + " This free bonus deal will save you a discount on cash today."

	findings := detectTriggers("Quick thoughts on your growth plan", body)

	lowCount := 0
	for _, f := range findings {
		if f.Severity == SeverityLow {
			lowCount++
		}
	}
	if lowCount != 1 {
		t.Errorf("expected exactly one aggregate low finding, got %d", lowCount)
	}

	// Two low words do not cross the threshold.
	few := detectTriggers("Quick thoughts", neutralBody(120)+" A free bonus.")
	for _, f := range few {
		if f.Severity == SeverityLow {
			t.Error("below-threshold low matches must not be reported")
		}
	}
}

func TestRecommendationsSortedByPriority(t *testing.T) {
	s := &Scorer{}
	got := s.Score(context.Background(), Input{
		Subject: "URGENT: Act now, 100% free!!!",
		Body:    "Short. https://a https://b https://c https://d https://e https://f",
		Voice:   &model.VoiceProfile{CommonPhrases: []string{"never appears"}},
	})

	lastWeight := 4
	for _, r := range got.Recommendations {
		w := priorityWeight[r.Priority]
		if w > lastWeight {
			t.Errorf("recommendations out of order: %+v", got.Recommendations)
			break
		}
		lastWeight = w
	}
}

func TestQuickCheck(t *testing.T) {
	s := &Scorer{TextGen: &stubTextGen{err: fmt.Errorf("must never be called")}}

	res := s.QuickCheck("URGENT: Act now, 100% free!!!", "Short body. https://a.example")
	if res.Score >= 50 {
		t.Errorf("expected a heavily penalized quick score, got %d", res.Score)
	}
	if len(res.Issues) == 0 {
		t.Error("expected issues from trigger and structural analyzers")
	}
	if len(res.Issues) > 5 {
		t.Errorf("quick check must cap issues at 5, got %d", len(res.Issues))
	}

	clean := s.QuickCheck("Quick thoughts on your growth plan", neutralBody(200))
	if clean.Score != 85 {
		t.Errorf("clean quick check should land on the 85 baseline, got %d", clean.Score)
	}
}

func TestStructuralPenalties(t *testing.T) {
	a := analyzeStructure("hi there", "tiny body")
	// short subject -10, short body -10 on a base of 100
	if a.Score != 80 {
		t.Errorf("expected 80, got %d (issues: %v)", a.Score, a.Issues)
	}

	noLink := analyzeStructure("A perfectly reasonable subject", "Please click here for details. "+neutralBodyNoLink(80))
	found := false
	for _, issue := range noLink.Issues {
		if strings.Contains(issue, "click here") {
			found = true
		}
	}
	if !found {
		t.Error(`expected a "click here with no links" issue`)
	}
}

func neutralBodyNoLink(words int) string {
	sentence := "We walked through the plan and agreed on the milestones for the coming months."
	perSentence := len(strings.Fields(sentence))
	var b strings.Builder
	for written := 0; written < words; written += perSentence {
		b.WriteString(sentence)
		b.WriteString(" ")
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// internal/generator/generator.go
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/leadloop/outreach-backend/internal/model"
	"github.com/leadloop/outreach-backend/internal/textgen"
)

// DraftsPerSequence is the fixed length of every generated sequence.
const DraftsPerSequence = 4

// Generated is a full message sequence for one lead: a short description of
// the strategy and exactly DraftsPerSequence drafts with timing tokens.
type Generated struct {
	Description string
	Drafts      []model.MessageDraft
}

type SequenceGenerator struct {
	TextGen textgen.Client
}

const systemPrompt = `You are an outreach copywriter for professional coaches. ` +
	`Respond with a single JSON object of the form ` +
	`{"description": string, "sequence": [{"subject": string, "body": string, "timing": string}]} ` +
	`containing exactly 4 messages. Allowed timing values: ` +
	`immediate, 1-hour, 1-day, 3-days, 5-days, 1-week, 2-weeks. No other keys, no prose.`

// statusInstructions holds the per-status briefing embedded in the prompt.
// An unrecognized lead status falls back to the "contacted" instructions.
var statusInstructions = map[string]string{
	model.LeadStatusContacted: "The lead was just contacted. Build trust, introduce the coach's " +
		"approach, and work toward booking a discovery call. Friendly, no pressure.",
	model.LeadStatusScheduled: "The lead booked a call. Confirm it, reduce no-shows with value " +
		"reminders, and prime them with one useful insight before the call.",
	model.LeadStatusConverted: "The lead became a client. Welcome them warmly, set expectations " +
		"for the first sessions, and point them at their onboarding material.",
	model.LeadStatusUnresponsive: "The lead went quiet. Re-engage gently with fresh angles and a " +
		"low-friction ask; the last message is a polite break-up note.",
}

func instructionFor(status string) string {
	if inst, ok := statusInstructions[status]; ok {
		return inst
	}
	return statusInstructions[model.LeadStatusContacted]
}

// Generate produces a sequence for the lead. It never fails: when the text
// generation call errors or returns an unusable shape, the static per-status
// fallback is used instead.
func (g *SequenceGenerator) Generate(ctx context.Context, lead *model.Lead, coach *model.Coach) Generated {
	if g.TextGen != nil {
		out, err := g.fromTextGen(ctx, lead, coach)
		if err == nil {
			return out
		}
		log.Println("⚠️ sequence generation fell back to templates:", err)
	}
	return Fallback(lead, coach)
}

func (g *SequenceGenerator) fromTextGen(ctx context.Context, lead *model.Lead, coach *model.Coach) (Generated, error) {
	raw, err := g.TextGen.Complete(ctx, systemPrompt, buildPrompt(lead, coach))
	if err != nil {
		return Generated{}, err
	}

	var payload struct {
		Description string               `json:"description"`
		Sequence    []model.MessageDraft `json:"sequence"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Generated{}, fmt.Errorf("malformed generation payload: %w", err)
	}

	// Structural validation only: count and required fields. Tone is the
	// model's problem.
	if len(payload.Sequence) != DraftsPerSequence {
		return Generated{}, fmt.Errorf("expected %d drafts, got %d", DraftsPerSequence, len(payload.Sequence))
	}
	if strings.TrimSpace(payload.Description) == "" {
		return Generated{}, fmt.Errorf("generation payload missing description")
	}
	for i, d := range payload.Sequence {
		if strings.TrimSpace(d.Subject) == "" || strings.TrimSpace(d.Body) == "" || strings.TrimSpace(d.Timing) == "" {
			return Generated{}, fmt.Errorf("draft %d is missing required fields", i)
		}
	}

	return Generated{Description: payload.Description, Drafts: payload.Sequence}, nil
}

func buildPrompt(lead *model.Lead, coach *model.Coach) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a 4-message outreach sequence.\n\n")
	fmt.Fprintf(&b, "Lead: %s %s", lead.FirstName, lead.LastName)
	if lead.Company != "" {
		fmt.Fprintf(&b, " (%s)", lead.Company)
	}
	fmt.Fprintf(&b, "\nLead status: %s\n", lead.Status)
	if lead.Goals != "" {
		fmt.Fprintf(&b, "Lead goals: %s\n", lead.Goals)
	}
	fmt.Fprintf(&b, "Coach: %s %s, specialty: %s\n\n", coach.FirstName, coach.LastName, coach.Specialty)
	fmt.Fprintf(&b, "Situation: %s\n", instructionFor(lead.Status))

	return b.String()
}

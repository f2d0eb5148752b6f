package generator_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/leadloop/outreach-backend/internal/generator"
	"github.com/leadloop/outreach-backend/internal/model"
)

// stubTextGen returns a canned payload or an error.
type stubTextGen struct {
	payload string
	err     error
}

func (s *stubTextGen) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return s.payload, s.err
}

func testLead(status string) *model.Lead {
	return &model.Lead{ID: 7, CoachID: 3, Email: "dana@example.com",
		FirstName: "Dana", LastName: "Reyes", Company: "Acme", Status: status}
}

func testCoach() *model.Coach {
	return &model.Coach{ID: 3, FirstName: "Sam", LastName: "Okafor", Specialty: "executive coaching"}
}

func TestFallbackAlwaysComplete(t *testing.T) {
	statuses := []string{
		model.LeadStatusContacted,
		model.LeadStatusScheduled,
		model.LeadStatusConverted,
		model.LeadStatusUnresponsive,
		"made-up-status",
	}

	for _, status := range statuses {
		got := generator.Fallback(testLead(status), testCoach())

		if got.Description == "" {
			t.Errorf("status %s: empty description", status)
		}
		if len(got.Drafts) != generator.DraftsPerSequence {
			t.Fatalf("status %s: expected %d drafts, got %d", status, generator.DraftsPerSequence, len(got.Drafts))
		}
		for i, d := range got.Drafts {
			if d.Subject == "" || d.Body == "" || d.Timing == "" {
				t.Errorf("status %s draft %d: incomplete draft %+v", status, i, d)
			}
			if strings.Contains(d.Body, "{first_name}") {
				t.Errorf("status %s draft %d: unrendered placeholder in body", status, i)
			}
		}
	}
}

func TestFallbackStatusesDiffer(t *testing.T) {
	unresponsive := generator.Fallback(testLead(model.LeadStatusUnresponsive), testCoach())
	converted := generator.Fallback(testLead(model.LeadStatusConverted), testCoach())

	if unresponsive.Description == converted.Description {
		t.Error("unresponsive and converted sequences share a description")
	}
	if unresponsive.Drafts[0].Subject == converted.Drafts[0].Subject {
		t.Error("unresponsive and converted sequences share a first subject")
	}
}

func TestGenerateUsesValidPayload(t *testing.T) {
	drafts := make([]model.MessageDraft, 4)
	for i := range drafts {
		drafts[i] = model.MessageDraft{
			Subject: fmt.Sprintf("Subject %d", i),
			Body:    fmt.Sprintf("Body %d", i),
			Timing:  "3-days",
		}
	}
	payload, _ := json.Marshal(map[string]any{
		"description": "generated plan",
		"sequence":    drafts,
	})

	g := &generator.SequenceGenerator{TextGen: &stubTextGen{payload: string(payload)}}
	got := g.Generate(context.Background(), testLead(model.LeadStatusContacted), testCoach())

	if got.Description != "generated plan" {
		t.Errorf("expected generated description, got %q", got.Description)
	}
	if got.Drafts[2].Subject != "Subject 2" {
		t.Errorf("expected generated drafts, got %+v", got.Drafts)
	}
}

func TestGenerateFallsBack(t *testing.T) {
	cases := map[string]*stubTextGen{
		"transport error": {err: fmt.Errorf("connection refused")},
		"malformed json":  {payload: "not json at all"},
		"wrong count":     {payload: `{"description":"d","sequence":[{"subject":"s","body":"b","timing":"1-day"}]}`},
		"missing fields":  {payload: `{"description":"d","sequence":[{"subject":"s"},{"subject":"s"},{"subject":"s"},{"subject":"s"}]}`},
		"no description":  {payload: `{"sequence":[{"subject":"s","body":"b","timing":"1-day"},{"subject":"s","body":"b","timing":"1-day"},{"subject":"s","body":"b","timing":"1-day"},{"subject":"s","body":"b","timing":"1-day"}]}`},
	}

	want := generator.Fallback(testLead(model.LeadStatusContacted), testCoach())

	for name, stub := range cases {
		g := &generator.SequenceGenerator{TextGen: stub}
		got := g.Generate(context.Background(), testLead(model.LeadStatusContacted), testCoach())

		if got.Description != want.Description {
			t.Errorf("%s: expected fallback description %q, got %q", name, want.Description, got.Description)
		}
		if len(got.Drafts) != generator.DraftsPerSequence {
			t.Errorf("%s: expected %d drafts, got %d", name, generator.DraftsPerSequence, len(got.Drafts))
		}
	}
}

func TestGenerateWithoutClientUsesFallback(t *testing.T) {
	g := &generator.SequenceGenerator{}
	got := g.Generate(context.Background(), testLead(model.LeadStatusScheduled), testCoach())

	if len(got.Drafts) != generator.DraftsPerSequence {
		t.Fatalf("expected %d drafts, got %d", generator.DraftsPerSequence, len(got.Drafts))
	}
}

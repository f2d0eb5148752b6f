// internal/generator/fallback.go
package generator

import (
	"github.com/leadloop/outreach-backend/internal/model"
	"github.com/leadloop/outreach-backend/internal/timing"
)

type fallbackSequence struct {
	description string
	drafts      [DraftsPerSequence]model.MessageDraft
}

// fallbackTable is the static sequence used whenever generation fails. It is
// also the reference for the per-status count/field contract, so every entry
// must have exactly four complete drafts.
var fallbackTable = map[string]fallbackSequence{
	model.LeadStatusContacted: {
		description: "Introductory follow-up sequence for a newly contacted lead",
		drafts: [DraftsPerSequence]model.MessageDraft{
			{
				Subject: "Great connecting, {first_name}",
				Body: "Hi {first_name},\n\nThanks for taking a moment to connect. I work with clients on {specialty} " +
					"and thought a few of the things we discussed might be worth digging into.\n\nWould a quick 20-minute " +
					"call next week be useful? No slides, just a conversation about where you want to go.\n\nBest,\n{coach_first_name}",
				Timing: string(timing.TokenImmediate),
			},
			{
				Subject: "A resource you might find useful",
				Body: "Hi {first_name},\n\nI put together a short guide on the first steps most of my clients take. " +
					"It covers the mistakes that cost people the most time early on.\n\nHappy to send it over if you'd like. " +
					"And if you want to talk through any of it, my calendar link is below.\n\nBest,\n{coach_first_name}",
				Timing: string(timing.TokenThreeDays),
			},
			{
				Subject: "Quick question, {first_name}",
				Body: "Hi {first_name},\n\nWhen we connected you mentioned wanting to make progress this quarter. " +
					"What is the biggest thing standing in the way right now?\n\nIf it helps, I can share how other clients " +
					"in a similar spot approached it.\n\nBest,\n{coach_first_name}",
				Timing: string(timing.TokenOneWeek),
			},
			{
				Subject: "Still happy to help",
				Body: "Hi {first_name},\n\nI know things get busy, so this is my last note for now. If the timing is ever " +
					"right, you can always book a slot directly with me.\n\nWishing you the best either way.\n\n{coach_first_name}",
				Timing: string(timing.TokenTwoWeeks),
			},
		},
	},
	model.LeadStatusScheduled: {
		description: "Call preparation sequence for a lead with a booked discovery call",
		drafts: [DraftsPerSequence]model.MessageDraft{
			{
				Subject: "You're booked, {first_name}",
				Body: "Hi {first_name},\n\nGreat news, your call is confirmed. You'll get a calendar invite separately.\n\n" +
					"Before we talk, jot down the one outcome that would make the next three months a win for you. " +
					"We'll start there.\n\nSee you soon,\n{coach_first_name}",
				Timing: string(timing.TokenImmediate),
			},
			{
				Subject: "One thing to think about before our call",
				Body: "Hi {first_name},\n\nA quick thought ahead of our call: most people overestimate what they can do " +
					"in a month and underestimate what they can do in a year.\n\nCome with the year in mind and we'll work " +
					"backwards together.\n\nBest,\n{coach_first_name}",
				Timing: string(timing.TokenOneDay),
			},
			{
				Subject: "Looking forward to our conversation",
				Body: "Hi {first_name},\n\nJust a friendly note that I'm looking forward to our conversation. If anything " +
					"has come up and you need to move the time, the reschedule link is in your invite.\n\nBest,\n{coach_first_name}",
				Timing: string(timing.TokenThreeDays),
			},
			{
				Subject: "See you on the call",
				Body: "Hi {first_name},\n\nLast note before we talk. Bring any numbers or notes you have handy; the more " +
					"concrete we get, the more useful the call will be.\n\nTalk soon,\n{coach_first_name}",
				Timing: string(timing.TokenFiveDays),
			},
		},
	},
	model.LeadStatusConverted: {
		description: "Onboarding welcome sequence for a newly converted client",
		drafts: [DraftsPerSequence]model.MessageDraft{
			{
				Subject: "Welcome aboard, {first_name}!",
				Body: "Hi {first_name},\n\nI'm really glad you decided to work together. Over the next week you'll get " +
					"access to your client portal and our first session invite.\n\nIf you have questions before then, just " +
					"reply here.\n\nWelcome,\n{coach_first_name}",
				Timing: string(timing.TokenImmediate),
			},
			{
				Subject: "Your first week, mapped out",
				Body: "Hi {first_name},\n\nHere's what the first week looks like: a kickoff session, a short intake form, " +
					"and your starting plan. None of it takes more than an hour.\n\nThe intake form matters most, it shapes " +
					"everything after.\n\nBest,\n{coach_first_name}",
				Timing: string(timing.TokenOneDay),
			},
			{
				Subject: "How the first session works",
				Body: "Hi {first_name},\n\nBefore our kickoff: there's nothing to prepare. We'll review where you are, " +
					"agree on the first milestone, and set a rhythm for check-ins.\n\nSee you there,\n{coach_first_name}",
				Timing: string(timing.TokenThreeDays),
			},
			{
				Subject: "Checking in on your first week",
				Body: "Hi {first_name},\n\nOne week in. How is it landing so far? If anything feels unclear or too fast, " +
					"tell me now and we adjust. That's what the first month is for.\n\nBest,\n{coach_first_name}",
				Timing: string(timing.TokenOneWeek),
			},
		},
	},
	model.LeadStatusUnresponsive: {
		description: "Re-engagement sequence for a lead who has gone quiet",
		drafts: [DraftsPerSequence]model.MessageDraft{
			{
				Subject: "Did this get buried, {first_name}?",
				Body: "Hi {first_name},\n\nI know inboxes swallow things whole, so floating this back up. " +
					"You were exploring {specialty} support a little while ago.\n\nStill on your radar, or has the picture " +
					"changed?\n\nBest,\n{coach_first_name}",
				Timing: string(timing.TokenImmediate),
			},
			{
				Subject: "A different angle",
				Body: "Hi {first_name},\n\nMaybe the earlier framing didn't fit. Instead of a call, would a short written " +
					"review of your current situation be more useful? You send me three sentences, I send back three ideas.\n\n" +
					"Best,\n{coach_first_name}",
				Timing: string(timing.TokenThreeDays),
			},
			{
				Subject: "No agenda, one question",
				Body: "Hi {first_name},\n\nOne honest question, no pitch attached: what would need to change for this to " +
					"become a priority?\n\nEven a one-line reply helps me point you somewhere useful.\n\nBest,\n{coach_first_name}",
				Timing: string(timing.TokenOneWeek),
			},
			{
				Subject: "Closing the loop",
				Body: "Hi {first_name},\n\nI'll stop nudging after this one. If the timing turns, my door stays open and " +
					"you can book directly anytime.\n\nAll the best,\n{coach_first_name}",
				Timing: string(timing.TokenTwoWeeks),
			},
		},
	},
}

// Fallback returns the static sequence for the lead's status with templates
// rendered. It cannot fail; unknown statuses use the contacted sequence.
func Fallback(lead *model.Lead, coach *model.Coach) Generated {
	seq, ok := fallbackTable[lead.Status]
	if !ok {
		seq = fallbackTable[model.LeadStatusContacted]
	}

	data := templateData(lead, coach)
	drafts := make([]model.MessageDraft, 0, DraftsPerSequence)
	for _, d := range seq.drafts {
		drafts = append(drafts, model.MessageDraft{
			Subject: RenderTemplate(d.Subject, data),
			Body:    RenderTemplate(d.Body, data),
			Timing:  d.Timing,
		})
	}

	return Generated{Description: seq.description, Drafts: drafts}
}

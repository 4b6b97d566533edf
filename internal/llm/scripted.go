package llm

import (
	"context"
	"fmt"
	"strings"
)

// Persona is one advisor on the scripted team.
type Persona struct {
	Name         string
	Role         string
	SystemPrompt string

	// Focus keywords route member messages to this persona.
	Focus []string

	// Replies are rotated by day so runs stay deterministic.
	Replies []string
}

// AdvisorTeam is the offline Responder: keyword routing over six advisor
// personas with canned, recommendation-bearing replies.
type AdvisorTeam struct {
	personas []Persona
}

// NewAdvisorTeam builds the scripted advisor roster.
func NewAdvisorTeam() *AdvisorTeam {
	return &AdvisorTeam{personas: []Persona{
		{
			Name:         "Dr. Warren",
			Role:         "Medical Strategist",
			SystemPrompt: "You are Dr. Warren, the team physician and final clinical authority. Interpret labs and medical records, approve diagnostics, set medical direction. Voice: authoritative, precise, scientific. Give 1-3 prioritized actions with brief clinical rationale.",
			Focus:        []string{"blood", "pressure", "cholesterol", "lab", "test results", "medication", "doctor", "diagnosis", "symptom", "pain", "a1c", "diabetes"},
			Replies: []string{
				"Your readings warrant a closer look, though nothing here is acute. I recommend: 1. Schedule a follow-up consultation this week so we can review the full panel together. 2. Measure your blood pressure each morning and log the three readings. 3. Track any symptoms alongside the numbers so we can separate acute stress from a trend.",
				"The pattern you describe is consistent with an acute stress response rather than a structural problem. Next steps: 1. Continue the current plan for 48 hours and monitor how the readings settle. 2. Book the quarterly diagnostic panel so we have fresh markers. 3. Let me know immediately if anything changes urgently.",
			},
		},
		{
			Name:         "Advik",
			Role:         "Performance Scientist",
			SystemPrompt: "You are Advik, the performance scientist. Own wearable data, sleep, recovery, HRV and stress trends. Voice: analytical, curious, pattern-oriented. Frame hypotheses and small experiments against the data.",
			Focus:        []string{"whoop", "hrv", "recovery", "sleep", "strain", "heart rate", "wearable", "garmin", "data"},
			Replies: []string{
				"Interesting pattern in your recovery data. Here's what I'd like to try: 1. Keep track of your HRV each morning before coffee for the next 7 days. 2. Adjust your wind-down routine to start 30 min earlier and monitor sleep latency. 3. Check in with me on Friday and we'll review the trend together.",
				"The correlation you spotted is real - the data backs it up. Action plan: 1. Log bedtime and caffeine timing daily this week. 2. Measure resting heart rate at the same hour each morning. 3. Review the week's data with me next Monday so we can isolate the driver.",
			},
		},
		{
			Name:         "Carla",
			Role:         "Nutritionist",
			SystemPrompt: "You are Carla, the nutritionist. Own meal design, CGM response, supplements and the fuel pillar. Voice: practical, educational, behavior-focused. Explain the why behind every change.",
			Focus:        []string{"glucose", "cgm", "meal", "diet", "nutrition", "food", "supplement", "protein", "sugar", "eat"},
			Replies: []string{
				"Your glucose response tells us a lot here. What to do: 1. Try the protein-first ordering at lunch and track the post-meal peak. 2. Eat your last full meal 3 hours before bed this week. 3. Add 400mg magnesium in the evening and monitor how the overnight curve changes.",
				"That spike pattern is very fixable. My recommendations: 1. Swap the late snack for a protein option and log the CGM reading 90 min after. 2. Plan this week's dinners around the low-glycemic list I'm sending over. 3. Keep track of time-in-range daily and report back Sunday.",
			},
		},
		{
			Name:         "Rachel",
			Role:         "Physiotherapist",
			SystemPrompt: "You are Rachel, the physiotherapist. Own movement quality, strength programming and injury prevention. Voice: direct, encouraging, form-focused.",
			Focus:        []string{"back", "injury", "mattress", "exercise", "workout", "training", "mobility", "strength", "leg", "posture"},
			Replies: []string{
				"Let's protect the recovery first and rebuild from there. Plan: 1. Rest the affected area for 48 hours - walking only, no loaded training. 2. Start the mobility sequence I'm sending twice daily. 3. Check in with me after two days so we can progress the loading safely.",
				"Good instinct flagging this early. Here's the approach: 1. Adjust your workout split to take pressure off the sore region this week. 2. Add the 10-minute activation routine before every morning session. 3. Track pain on a 1-10 scale daily and let me know if it climbs above a 4.",
			},
		},
		{
			Name:         "Neel",
			Role:         "Concierge Lead",
			SystemPrompt: "You are Neel, the concierge lead. Own strategic reviews, escalations and the big picture. Voice: strategic, reassuring, context-providing.",
			Focus:        []string{"progress", "plan review", "goals", "frustrated", "value", "overall", "quarterly review"},
			Replies: []string{
				"Stepping back, the trajectory is strong even when single weeks feel noisy. Next steps: 1. Review the quarter's trend data with me in a 30 min call. 2. Plan the next quarter's focus areas before your travel block. 3. Let me know which outcomes matter most right now so the team can re-weight priorities.",
			},
		},
		{
			Name:         "Ruby",
			Role:         "Concierge",
			SystemPrompt: "You are Ruby, the concierge and primary contact for all logistics. Own scheduling, coordination, reminders and follow-ups. Voice: empathetic, organized, proactive. Confirm every action with concrete times.",
			Focus:        []string{"schedule", "appointment", "calendar", "travel", "flight", "booking", "arrange", "coordinate", "restaurant"},
			Replies: []string{
				"Happy to take this off your plate. Here's what I'll set up: 1. Schedule the session for Thursday 9am Singapore time and confirm with Sarah. 2. Book the follow-up slot before your travel week. 3. Check in tomorrow morning to confirm everything landed on your calendar.",
				"Consider it handled. Action plan: 1. Arrange the logistics and send calendar invites by end of day. 2. Confirm the appointment details with the clinic tomorrow. 3. Keep track of anything that shifts with your travel and adjust the bookings.",
			},
		},
	}}
}

// Route picks the persona whose focus vocabulary best matches the message.
// Ruby is the fallback when nothing matches (she is the primary contact).
func (t *AdvisorTeam) Route(message string) Persona {
	text := strings.ToLower(message)

	best := -1
	bestScore := 0
	for i, p := range t.personas {
		score := 0
		for _, kw := range p.Focus {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return t.personas[len(t.personas)-1] // Ruby
	}
	return t.personas[best]
}

// Respond deterministically answers with the routed persona's reply for the
// day, noting any journey events in the reply preamble.
func (t *AdvisorTeam) Respond(_ context.Context, _ string, message string, tc TurnContext) (string, string, error) {
	persona := t.Route(message)
	reply := persona.Replies[tc.Day%len(persona.Replies)]

	if len(tc.Events) > 0 {
		reply = fmt.Sprintf("Noted - today also brings %s. %s",
			strings.Join(tc.Events, " and "), reply)
	}
	return persona.Name, reply, nil
}

// Personas exposes the roster, primarily for tests and report output.
func (t *AdvisorTeam) Personas() []Persona {
	return t.personas
}

package sim

// Journey event names.
const (
	EventOnboardingComplete  = "onboarding_complete"
	EventInitialBloodTest    = "initial_blood_test_high_sugar"
	EventQuarterlyDiagnostic = "quarterly_diagnostic_test"
	EventLegInjury           = "leg_injury_reported"
	EventBusinessTravel      = "business_travel"
	EventExercisePlanUpdate  = "exercise_plan_update"
)

// EventsForDay returns the deterministic journey events for a day. Events
// fire on the first day of their week; quarterly diagnostics land in weeks
// 12, 24 and 34 of the eight-month journey.
func EventsForDay(day int) []string {
	if day < 1 || (day-1)%7 != 0 {
		return nil
	}
	week := (day-1)/7 + 1

	var events []string
	switch {
	case week == 1:
		events = append(events, EventOnboardingComplete, EventInitialBloodTest)
	case week == 12 || week == 24 || week == 34:
		events = append(events, EventQuarterlyDiagnostic)
	case week == 10:
		events = append(events, EventLegInjury)
	case week%4 == 0:
		events = append(events, EventBusinessTravel)
	case week%2 == 0:
		events = append(events, EventExercisePlanUpdate)
	}
	return events
}

// Package classify holds the heuristic vocabularies and classifiers used to
// decide whether agent turns warrant follow-ups and what they are about.
//
// The vocabularies are fixed configuration tables. Matching is substring
// based and case-insensitive throughout; control flow never hard-codes a
// keyword literal.
package classify

// ActionKeywords are verbs whose presence in a recommendation marks it as
// actionable.
var ActionKeywords = []string{
	"schedule", "book", "order", "call", "email", "confirm", "arrange",
	"test", "measure", "track", "monitor", "adjust", "change", "try",
	"implement", "start", "begin", "continue", "follow up", "follow-up",
	"review", "check", "log", "consult", "complete", "prepare",
}

// TimeReferences are tokens that tie a recommendation to a concrete time.
var TimeReferences = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
	"sunday", "am", "pm", "tomorrow", "tonight", "next week", "this week",
	"morning", "evening", "daily", "weekly", "monthly",
}

// ActionPatterns are multi-word phrases signaling an expected member action.
var ActionPatterns = []string{
	"let me know", "check in", "keep track", "get back to", "reach out",
	"touch base", "send over", "report back",
}

// QuantityUnits are unit tokens that, adjacent to a digit, signal a concrete
// actionable quantity ("400mg", "30 min", "2h").
var QuantityUnits = []string{
	"mg", "mcg", "g", "kg", "ml", "min", "mins", "h", "hr", "hrs",
	"kcal", "km", "bpm", "am", "pm",
}

// ExtractionVerbs is the vocabulary the extractor uses to pull
// recommendation sentences out of raw message text. A sentence is kept once
// the first verb matches.
var ExtractionVerbs = []string{
	"schedule", "check", "measure", "hydrate", "log", "track", "monitor",
	"add", "remove", "snack", "eat", "sleep", "rest", "walk", "exercise",
	"consult", "appointment", "follow up", "follow-up",
}

// RecommendationCues are phrases marking a line as an explicit
// recommendation block in message text.
var RecommendationCues = []string{
	"recommend", "next steps", "action plan", "what to do",
}

// Urgency vocabularies, checked in strict priority order.
var (
	UrgentKeywords     = []string{"immediate", "urgent", "emergency", "critical", "now", "asap"}
	SchedulingKeywords = []string{"schedule", "appointment", "consultation", "test", "measure"}
	PlanningKeywords   = []string{"consider", "plan", "prepare", "adjust", "modify"}
)

// Urgency levels.
const (
	HighUrgency     = "High Urgency"
	MediumUrgency   = "Medium Urgency"
	LowUrgency      = "Low Urgency"
	InformationOnly = "Information Only"
)

// Complexity levels.
const (
	ComplexitySimple   = "Simple"
	ComplexityModerate = "Moderate"
	ComplexityComplex  = "Complex"
)

// DomainGeneral is the catch-all bucket when no domain keyword matches.
const DomainGeneral = "General Health Management"

// DomainBucket maps health-domain keywords to a path label. Buckets are
// evaluated in order; the first match wins for a given recommendation.
type DomainBucket struct {
	Label    string
	Keywords []string
}

// DomainBuckets is the ordered health-domain vocabulary.
var DomainBuckets = []DomainBucket{
	{"Sleep & Recovery", []string{"sleep", "rest", "bed", "hrv", "recovery"}},
	{"Mental Health & Stress Management", []string{"meditate", "meditation", "mindfulness", "breathing", "stress"}},
	{"Cognitive Health & Learning", []string{"read", "book", "study", "cognitive"}},
	{"Physical Activity & Exercise", []string{"exercise", "workout", "training", "cardio"}},
	{"Nutrition & Diet Management", []string{"diet", "nutrition", "meal", "glucose", "protein"}},
	{"Medical Consultation & Care", []string{"schedule", "appointment", "consultation", "doctor"}},
	{"Health Monitoring & Tracking", []string{"monitor", "track", "measure", "data"}},
	{"Lifestyle & Routine Adjustment", []string{"travel", "jetlag", "adjust", "routine"}},
}

// MetricTerms are monitored-metric names; their presence in a message is a
// data-driven decision signal.
var MetricTerms = []string{
	"hrv", "glucose", "cgm", "sleep", "heart rate", "blood sugar", "blood pressure",
}

// GuidancePhrases mark prior agent messages as guidance a later decision may
// be following up on.
var GuidancePhrases = []string{
	"recommend", "next steps", "plan", "consider", "should", "aim",
	"schedule", "appointment",
}

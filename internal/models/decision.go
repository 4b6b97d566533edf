package models

// DecisionPoint is a turn flagged by the extractor as a decision, enriched
// with domain, urgency, complexity and the reasons it was flagged. Decision
// points are recomputed on every analysis pass and carry no persistent
// identity across runs.
type DecisionPoint struct {
	ID              int      `json:"id"`
	Day             int      `json:"day"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	UserMessage     string   `json:"user_message"`
	AgentName       string   `json:"agent_name"`
	Recommendations []string `json:"recommendations"`
	PossiblePaths   []string `json:"possible_paths"`
	HealthDomain    string   `json:"health_domain"`
	UrgencyLevel    string   `json:"urgency_level"`
	Complexity      string   `json:"complexity"`
	Reasons         []string `json:"reasons"`
}

// BranchingPattern records the transition between two adjacent decision
// points in discovery order.
type BranchingPattern struct {
	FromDecision     int    `json:"from_decision"`
	ToDecision       int    `json:"to_decision"`
	DaysBetween      int    `json:"days_between"`
	DomainTransition string `json:"domain_transition"`
	UrgencyChange    string `json:"urgency_change"`
	ComplexityChange string `json:"complexity_change"`
}

// Flow entry kinds in DecisionTree.ConversationFlow.
const (
	FlowConversation  = "conversation"
	FlowDecisionPoint = "decision_point"
)

// FlowEntry is one element of the conversation-flow view: either a plain
// turn preview or a decision point, in original order.
type FlowEntry struct {
	Type     string           `json:"type"`
	Turn     *ConversationTurn `json:"turn,omitempty"`
	Decision *DecisionPoint    `json:"decision,omitempty"`
}

// DomainAnalysis aggregates decision points by health domain.
type DomainAnalysis struct {
	Distribution    map[string]int      `json:"domain_distribution"`
	UrgencyPatterns map[string][]string `json:"domain_urgency_patterns"`
}

// AgentAnalysis aggregates decision points by responding agent.
type AgentAnalysis struct {
	Frequency       map[string]int      `json:"agent_frequency"`
	Specializations map[string][]string `json:"agent_specializations"`
}

// TemporalAnalysis summarizes day gaps between consecutive decision points.
type TemporalAnalysis struct {
	AverageIntervalDays float64        `json:"average_interval_days"`
	IntervalBuckets     map[string]int `json:"interval_distribution"`
	WeeklyFrequency     map[int]int    `json:"weekly_decision_frequency"`
}

// DecisionTree is the full reconstruction over one turn sequence.
type DecisionTree struct {
	TotalDecisionPoints int                `json:"total_decision_points"`
	DecisionPoints      []DecisionPoint    `json:"decision_points"`
	BranchingPaths      []BranchingPattern `json:"branching_paths"`
	ConversationFlow    []FlowEntry        `json:"conversation_flow"`
	HealthDomains       DomainAnalysis     `json:"health_domains"`
	AgentInteractions   AgentAnalysis      `json:"agent_interactions"`
	TemporalPatterns    TemporalAnalysis   `json:"temporal_patterns"`
	JourneyMonths       int                `json:"journey_months"`
}

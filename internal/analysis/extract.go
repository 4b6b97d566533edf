// Package analysis reconstructs the decision tree from a conversation log:
// it flags turns as decision points, derives branching patterns between
// them, and aggregates domain, agent and temporal statistics.
package analysis

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/elyxlabs/journeytree/internal/classify"
	"github.com/elyxlabs/journeytree/internal/models"
)

// questionPattern marks a message as interrogative or help-seeking.
var questionPattern = regexp.MustCompile(`(?i)\?|\bhelp\b|\bshould\b|\bwhen\b|\bhow\b|\badvise\b|\bneed\b`)

// guidanceScanDepth bounds the backward scan over the conversation flow
// when looking for prior advisor guidance.
const guidanceScanDepth = 6

// flowPreviewLen truncates turn text in the conversation-flow view.
const flowPreviewLen = 100

// Extractor scans a turn sequence and flags decision points.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates an extractor. logger may be nil.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract walks the turn sequence in order and returns the decision points
// plus the parallel conversation-flow view. Decision point ids are dense
// and ascending in discovery order.
func (e *Extractor) Extract(turns []models.ConversationTurn) ([]models.DecisionPoint, []models.FlowEntry) {
	var (
		points []models.DecisionPoint
		flow   []models.FlowEntry
	)

	for i := range turns {
		turn := turns[i]
		text := decisionText(turn)

		recs := turn.Recommendations
		if len(recs) == 0 {
			recs = classify.ExtractRecommendations(text)
		}
		if recs == nil {
			recs = []string{}
		}

		replyNeeded := questionPattern.MatchString(text) || len(recs) > 0
		if turn.ReplyNeeded != nil {
			// An explicit flag wins over inference in both directions.
			replyNeeded = *turn.ReplyNeeded
		}

		if !replyNeeded || len(recs) == 0 {
			preview := turn
			preview.Message = models.Preview(turn.Message, flowPreviewLen)
			flow = append(flow, models.FlowEntry{Type: models.FlowConversation, Turn: &preview})
			continue
		}

		point := models.DecisionPoint{
			ID:              len(points) + 1,
			Day:             turn.Day,
			Date:            turn.Date,
			Time:            turn.Time,
			UserMessage:     turn.Message,
			AgentName:       agentName(turn),
			Recommendations: recs,
		}
		point.PossiblePaths = PossiblePaths(recs)
		point.HealthDomain = HealthDomain(point.PossiblePaths)
		point.UrgencyLevel = Urgency(recs)
		point.Complexity = Complexity(len(recs))
		point.Reasons = e.reasons(turn, text, recs, flow)

		points = append(points, point)
		entry := point
		flow = append(flow, models.FlowEntry{Type: models.FlowDecisionPoint, Decision: &entry})
	}

	e.logger.Debug("decision extraction complete",
		"turns", len(turns), "decision_points", len(points))
	return points, flow
}

// decisionText is the text the heuristics run over: the advisor response
// when the turn carries one, the member message otherwise (re-ingested
// documents store a single message field).
func decisionText(turn models.ConversationTurn) string {
	if turn.AgentResponse != "" {
		return turn.AgentResponse
	}
	return turn.Message
}

// agentName resolves the advisor a decision point is attributed to.
func agentName(turn models.ConversationTurn) string {
	if turn.AgentName != "" {
		return turn.AgentName
	}
	if turn.Sender != "" && turn.Sender != "User" {
		return turn.Sender
	}
	return "Unknown"
}

// PossiblePaths buckets each recommendation into its health domain, first
// match wins, order preserved, duplicates dropped.
func PossiblePaths(recommendations []string) []string {
	var paths []string
	seen := map[string]bool{}

	for _, rec := range recommendations {
		label := domainFor(rec)
		if !seen[label] {
			seen[label] = true
			paths = append(paths, label)
		}
	}
	return paths
}

func domainFor(recommendation string) string {
	lower := strings.ToLower(recommendation)
	for _, bucket := range classify.DomainBuckets {
		for _, keyword := range bucket.Keywords {
			if strings.Contains(lower, keyword) {
				return bucket.Label
			}
		}
	}
	return classify.DomainGeneral
}

// HealthDomain collapses the path set into a single domain label.
func HealthDomain(paths []string) string {
	switch {
	case len(paths) == 1:
		return paths[0]
	case len(paths) <= 3:
		return "Multi-Domain"
	default:
		return "Complex Multi-Domain"
	}
}

// Urgency classifies the recommendations, checked in strict priority
// order: urgent wording beats scheduling, scheduling beats planning.
func Urgency(recommendations []string) string {
	text := strings.ToLower(strings.Join(recommendations, " "))

	for _, keyword := range classify.UrgentKeywords {
		if strings.Contains(text, keyword) {
			return classify.HighUrgency
		}
	}
	for _, keyword := range classify.SchedulingKeywords {
		if strings.Contains(text, keyword) {
			return classify.MediumUrgency
		}
	}
	for _, keyword := range classify.PlanningKeywords {
		if strings.Contains(text, keyword) {
			return classify.LowUrgency
		}
	}
	return classify.InformationOnly
}

// Complexity grades a decision point by recommendation count.
func Complexity(count int) string {
	switch {
	case count <= 2:
		return classify.ComplexitySimple
	case count <= 4:
		return classify.ComplexityModerate
	default:
		return classify.ComplexityComplex
	}
}

// reasons assembles the ordered, de-duplicated explanation list for a
// flagged decision point. The list is never empty.
func (e *Extractor) reasons(turn models.ConversationTurn, text string, recs []string, flow []models.FlowEntry) []string {
	var reasons []string
	seen := map[string]bool{}
	add := func(r string) {
		if r == "" || seen[r] {
			return
		}
		seen[r] = true
		reasons = append(reasons, r)
	}

	if turn.ReplyNeeded != nil && *turn.ReplyNeeded {
		add("explicitly flagged as needing a reply")
	}
	if n := len(recs); n > 0 {
		add(fmt.Sprintf("carries %d recommendation(s): %s", n, previewRecs(recs)))
	}
	if questionPattern.MatchString(text) {
		add("message asks a question or seeks guidance")
	}

	lower := strings.ToLower(text)
	for _, keyword := range classify.UrgentKeywords {
		if strings.Contains(lower, keyword) {
			add("urgent language in the message")
			break
		}
	}

	add(priorGuidance(flow))

	for _, term := range classify.MetricTerms {
		if strings.Contains(lower, term) {
			add("references monitored health metrics")
			break
		}
	}

	if len(reasons) == 0 {
		add("heuristic pattern match on conversational context")
	}
	return reasons
}

// previewRecs shows the first recommendations, at most three.
func previewRecs(recs []string) string {
	shown := recs
	if len(shown) > 3 {
		shown = shown[:3]
	}
	previews := make([]string, len(shown))
	for i, r := range shown {
		previews[i] = models.Preview(r, 60)
	}
	return strings.Join(previews, "; ")
}

// priorGuidance scans backwards over the most recent flow entries for an
// advisor turn whose text reads like guidance the current decision may be
// following up on. Returns "" when none is found.
func priorGuidance(flow []models.FlowEntry) string {
	start := len(flow) - guidanceScanDepth
	if start < 0 {
		start = 0
	}

	for i := len(flow) - 1; i >= start; i-- {
		var text string
		switch flow[i].Type {
		case models.FlowDecisionPoint:
			text = strings.Join(flow[i].Decision.Recommendations, " ")
		case models.FlowConversation:
			turn := flow[i].Turn
			if turn.AgentResponse != "" {
				text = turn.AgentResponse
			} else {
				text = turn.Message
			}
		}

		lower := strings.ToLower(text)
		for _, phrase := range classify.GuidancePhrases {
			if strings.Contains(lower, phrase) {
				return "follows prior guidance: " + models.Preview(text, 140)
			}
		}
	}
	return ""
}

package analysis

import (
	"fmt"
	"log/slog"

	"github.com/elyxlabs/journeytree/internal/models"
)

// Analyzer computes the decision tree over one conversation log.
type Analyzer struct {
	extractor *Extractor
	logger    *slog.Logger
}

// NewAnalyzer creates an analyzer. logger may be nil.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		extractor: NewExtractor(logger),
		logger:    logger,
	}
}

// BuildTree runs extraction and every aggregation over the turn sequence.
// All aggregations are read-only over the extracted decision points.
func (a *Analyzer) BuildTree(turns []models.ConversationTurn) models.DecisionTree {
	points, flow := a.extractor.Extract(turns)

	tree := models.DecisionTree{
		TotalDecisionPoints: len(points),
		DecisionPoints:      points,
		BranchingPaths:      BranchingPaths(points),
		ConversationFlow:    flow,
		HealthDomains:       DomainBreakdown(points),
		AgentInteractions:   AgentBreakdown(points),
		TemporalPatterns:    TemporalBreakdown(points),
		JourneyMonths:       journeyMonths(turns),
	}

	a.logger.Info("decision tree built",
		"turns", len(turns),
		"decision_points", tree.TotalDecisionPoints,
		"branching_paths", len(tree.BranchingPaths))
	return tree
}

// BranchingPaths emits one pattern per adjacent pair of decision points.
// Pairing follows the sequence order the extractor produced; callers
// needing day-sorted pairing sort the points first.
func BranchingPaths(points []models.DecisionPoint) []models.BranchingPattern {
	if len(points) < 2 {
		return nil
	}

	patterns := make([]models.BranchingPattern, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		from, to := points[i-1], points[i]
		patterns = append(patterns, models.BranchingPattern{
			FromDecision:     from.ID,
			ToDecision:       to.ID,
			DaysBetween:      to.Day - from.Day,
			DomainTransition: transition(from.HealthDomain, to.HealthDomain),
			UrgencyChange:    transition(from.UrgencyLevel, to.UrgencyLevel),
			ComplexityChange: transition(from.Complexity, to.Complexity),
		})
	}
	return patterns
}

func transition(from, to string) string {
	return fmt.Sprintf("%s → %s", from, to)
}

// DomainBreakdown counts decision points per health domain and records the
// urgency levels observed in each, in order.
func DomainBreakdown(points []models.DecisionPoint) models.DomainAnalysis {
	analysis := models.DomainAnalysis{
		Distribution:    map[string]int{},
		UrgencyPatterns: map[string][]string{},
	}
	for _, p := range points {
		analysis.Distribution[p.HealthDomain]++
		analysis.UrgencyPatterns[p.HealthDomain] = append(analysis.UrgencyPatterns[p.HealthDomain], p.UrgencyLevel)
	}
	return analysis
}

// AgentBreakdown counts decision points per advisor and records the
// distinct domains each advisor handled, in first-seen order.
func AgentBreakdown(points []models.DecisionPoint) models.AgentAnalysis {
	analysis := models.AgentAnalysis{
		Frequency:       map[string]int{},
		Specializations: map[string][]string{},
	}
	for _, p := range points {
		analysis.Frequency[p.AgentName]++

		handled := false
		for _, domain := range analysis.Specializations[p.AgentName] {
			if domain == p.HealthDomain {
				handled = true
				break
			}
		}
		if !handled {
			analysis.Specializations[p.AgentName] = append(analysis.Specializations[p.AgentName], p.HealthDomain)
		}
	}
	return analysis
}

// Temporal histogram buckets for day gaps between consecutive decisions.
const (
	BucketShort  = "1-3 days"
	BucketMedium = "4-7 days"
	BucketLong   = "8+ days"
)

// TemporalBreakdown summarizes the day gaps between consecutive decision
// points and the weekly decision frequency. A lone point anchors no gap, so
// fewer than two points yield the empty analysis; the first point likewise
// stays out of the weekly counts.
func TemporalBreakdown(points []models.DecisionPoint) models.TemporalAnalysis {
	analysis := models.TemporalAnalysis{
		IntervalBuckets: map[string]int{},
		WeeklyFrequency: map[int]int{},
	}
	if len(points) < 2 {
		return analysis
	}

	total := 0
	for i := 1; i < len(points); i++ {
		gap := points[i].Day - points[i-1].Day
		total += gap
		switch {
		case gap <= 3:
			analysis.IntervalBuckets[BucketShort]++
		case gap <= 7:
			analysis.IntervalBuckets[BucketMedium]++
		default:
			analysis.IntervalBuckets[BucketLong]++
		}
		analysis.WeeklyFrequency[points[i].Day/7]++
	}
	analysis.AverageIntervalDays = float64(total) / float64(len(points)-1)
	return analysis
}

// journeyMonths estimates the journey span from the highest scheduled day,
// at thirty days per month.
func journeyMonths(turns []models.ConversationTurn) int {
	maxDay := 0
	for _, t := range turns {
		if t.Day > maxDay {
			maxDay = t.Day
		}
	}
	if maxDay == 0 {
		return 0
	}
	return (maxDay + 29) / 30
}

package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/elyxlabs/journeytree/internal/models"
)

// Summary renders the decision tree as a plain-text report. Output is
// deterministic: map-backed sections are sorted by count, then name.
func Summary(tree models.DecisionTree) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Journey span: %d month(s)\n", tree.JourneyMonths)
	fmt.Fprintf(&b, "Decision points: %d\n", tree.TotalDecisionPoints)
	fmt.Fprintf(&b, "Branching transitions: %d\n", len(tree.BranchingPaths))

	if len(tree.HealthDomains.Distribution) > 0 {
		b.WriteString("\nHealth domains:\n")
		for _, entry := range sortedCounts(tree.HealthDomains.Distribution) {
			fmt.Fprintf(&b, "  %-35s %d\n", entry.name, entry.count)
		}
	}

	if len(tree.AgentInteractions.Frequency) > 0 {
		b.WriteString("\nAdvisor involvement:\n")
		for _, entry := range sortedCounts(tree.AgentInteractions.Frequency) {
			domains := strings.Join(tree.AgentInteractions.Specializations[entry.name], ", ")
			fmt.Fprintf(&b, "  %-15s %d  (%s)\n", entry.name, entry.count, domains)
		}
	}

	temporal := tree.TemporalPatterns
	if len(tree.DecisionPoints) >= 2 {
		b.WriteString("\nDecision cadence:\n")
		fmt.Fprintf(&b, "  average interval: %.1f day(s)\n", temporal.AverageIntervalDays)
		for _, bucket := range []string{BucketShort, BucketMedium, BucketLong} {
			if n := temporal.IntervalBuckets[bucket]; n > 0 {
				fmt.Fprintf(&b, "  %-10s %d\n", bucket, n)
			}
		}
	}

	return b.String()
}

type countEntry struct {
	name  string
	count int
}

func sortedCounts(m map[string]int) []countEntry {
	entries := make([]countEntry, 0, len(m))
	for name, count := range m {
		entries = append(entries, countEntry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	return entries
}

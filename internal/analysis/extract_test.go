package analysis

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/elyxlabs/journeytree/internal/classify"
	"github.com/elyxlabs/journeytree/internal/models"
)

func testExtractor() *Extractor {
	return NewExtractor(slog.New(slog.DiscardHandler))
}

func TestPossiblePaths(t *testing.T) {
	tests := []struct {
		name string
		recs []string
		want []string
	}{
		{
			name: "order preserving across domains",
			recs: []string{"go to sleep early", "try meditation"},
			want: []string{"Sleep & Recovery", "Mental Health & Stress Management"},
		},
		{
			name: "duplicates collapse",
			recs: []string{"go to sleep early", "rest before noon", "try meditation"},
			want: []string{"Sleep & Recovery", "Mental Health & Stress Management"},
		},
		{
			name: "unmatched falls back to the general bucket",
			recs: []string{"keep doing what works"},
			want: []string{classify.DomainGeneral},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PossiblePaths(tt.recs)
			if len(got) != len(tt.want) {
				t.Fatalf("PossiblePaths(%v) = %v, want %v", tt.recs, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("path %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestHealthDomain(t *testing.T) {
	tests := []struct {
		paths []string
		want  string
	}{
		{[]string{"Sleep & Recovery"}, "Sleep & Recovery"},
		{[]string{"Sleep & Recovery", "Nutrition & Diet Management"}, "Multi-Domain"},
		{[]string{"a", "b", "c"}, "Multi-Domain"},
		{[]string{"a", "b", "c", "d"}, "Complex Multi-Domain"},
	}
	for _, tt := range tests {
		if got := HealthDomain(tt.paths); got != tt.want {
			t.Errorf("HealthDomain(%d paths) = %q, want %q", len(tt.paths), got, tt.want)
		}
	}
}

func TestUrgency(t *testing.T) {
	tests := []struct {
		name string
		recs []string
		want string
	}{
		{"urgent wording wins", []string{"call the doctor now"}, classify.HighUrgency},
		{"urgent beats scheduling", []string{"schedule an urgent consultation"}, classify.HighUrgency},
		{"scheduling keyword", []string{"Schedule appointment Monday 9am", "Take 400mg magnesium"}, classify.MediumUrgency},
		{"planning keyword", []string{"consider a lighter dinner"}, classify.LowUrgency},
		{"no signal", []string{"great progress this week"}, classify.InformationOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Urgency(tt.recs); got != tt.want {
				t.Errorf("Urgency(%v) = %q, want %q", tt.recs, got, tt.want)
			}
		})
	}
}

func TestComplexity(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, classify.ComplexitySimple},
		{2, classify.ComplexitySimple},
		{3, classify.ComplexityModerate},
		{4, classify.ComplexityModerate},
		{5, classify.ComplexityComplex},
	}
	for _, tt := range tests {
		if got := Complexity(tt.count); got != tt.want {
			t.Errorf("Complexity(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestExtractDecisionMembership(t *testing.T) {
	turns := []models.ConversationTurn{
		{
			SeqNo:   1,
			Sender:  "Rohan Patel",
			Message: "Thanks for the update.",
			Day:     1,
		},
		{
			// Flagged but without recommendations: never a decision point.
			SeqNo:       2,
			Sender:      "Rohan Patel",
			Message:     "Sounds fine to me.",
			Day:         2,
			ReplyNeeded: models.BoolPtr(true),
		},
		{
			SeqNo:           3,
			Sender:          "Ruby",
			Message:         "Two things for this week.",
			Day:             3,
			ReplyNeeded:     models.BoolPtr(true),
			Recommendations: []string{"Schedule appointment Monday 9am", "Take 400mg magnesium"},
		},
	}

	points, flow := testExtractor().Extract(turns)

	if len(points) != 1 {
		t.Fatalf("decision points = %d, want 1", len(points))
	}
	point := points[0]
	if point.ID != 1 {
		t.Errorf("ID = %d, want 1", point.ID)
	}
	if point.Day != 3 {
		t.Errorf("Day = %d, want 3", point.Day)
	}
	if point.UrgencyLevel != classify.MediumUrgency {
		t.Errorf("UrgencyLevel = %q, want %q", point.UrgencyLevel, classify.MediumUrgency)
	}
	if point.Complexity != classify.ComplexitySimple {
		t.Errorf("Complexity = %q, want %q", point.Complexity, classify.ComplexitySimple)
	}
	if len(point.Reasons) == 0 {
		t.Error("Reasons is empty, must always carry at least one entry")
	}

	wantTypes := []string{models.FlowConversation, models.FlowConversation, models.FlowDecisionPoint}
	if len(flow) != len(wantTypes) {
		t.Fatalf("flow length = %d, want %d", len(flow), len(wantTypes))
	}
	for i, want := range wantTypes {
		if flow[i].Type != want {
			t.Errorf("flow[%d].Type = %q, want %q", i, flow[i].Type, want)
		}
	}
}

func TestExtractExplicitFlagBlocksInference(t *testing.T) {
	turns := []models.ConversationTurn{
		{
			SeqNo:           1,
			Sender:          "Rohan Patel",
			Message:         "Heading to the cabin for the long weekend.",
			Day:             4,
			ReplyNeeded:     models.BoolPtr(false),
			Recommendations: []string{"Rest and relax at the cabin"},
		},
		{
			SeqNo:           2,
			Sender:          "Rohan Patel",
			Message:         "Back home and settling in.",
			Day:             5,
			Recommendations: []string{"Rest and relax at the cabin"},
		},
	}

	points, flow := testExtractor().Extract(turns)

	if len(points) != 1 {
		t.Fatalf("decision points = %d, want 1: explicit false must block membership", len(points))
	}
	if points[0].Day != 5 {
		t.Errorf("decision day = %d, want 5: inference applies only to the unflagged turn", points[0].Day)
	}
	if flow[0].Type != models.FlowConversation {
		t.Errorf("flow[0].Type = %q, want %q for the flagged-false turn", flow[0].Type, models.FlowConversation)
	}
}

func TestExtractDerivesRecommendationsFromText(t *testing.T) {
	turns := []models.ConversationTurn{{
		SeqNo:   1,
		Sender:  "Carla",
		Message: "Track your glucose after lunch this week. Add more protein at breakfast.",
		Day:     4,
	}}

	points, _ := testExtractor().Extract(turns)
	if len(points) != 1 {
		t.Fatalf("decision points = %d, want 1", len(points))
	}
	if len(points[0].Recommendations) != 2 {
		t.Fatalf("derived recommendations = %v, want 2 entries", points[0].Recommendations)
	}
	if points[0].AgentName != "Carla" {
		t.Errorf("AgentName = %q, want %q", points[0].AgentName, "Carla")
	}
}

func TestExtractReasonsIncludePriorGuidance(t *testing.T) {
	turns := []models.ConversationTurn{
		{
			SeqNo:         1,
			Sender:        "Rohan Patel",
			Message:       "Feeling okay overall.",
			Day:           1,
			AgentName:     "Advik",
			AgentResponse: "Looking at the numbers, you might consider keeping your current bedtime.",
		},
		{
			SeqNo:           2,
			Sender:          "Rohan Patel",
			Message:         "Should I change anything before the trip?",
			Day:             2,
			ReplyNeeded:     models.BoolPtr(true),
			Recommendations: []string{"Schedule a travel consultation"},
		},
	}

	points, _ := testExtractor().Extract(turns)
	if len(points) != 1 {
		t.Fatalf("decision points = %d, want 1", len(points))
	}

	var found bool
	for _, reason := range points[0].Reasons {
		if strings.HasPrefix(reason, "follows prior guidance") {
			found = true
		}
	}
	if !found {
		t.Errorf("Reasons = %v, want a prior-guidance entry", points[0].Reasons)
	}
}

func TestExtractFlowPreviewTruncation(t *testing.T) {
	long := strings.Repeat("every morning I log the readings and ", 10)
	turns := []models.ConversationTurn{{
		SeqNo:   1,
		Sender:  "Rohan Patel",
		Message: long,
		Day:     1,
	}}

	_, flow := testExtractor().Extract(turns)
	if len(flow) != 1 || flow[0].Type != models.FlowConversation {
		t.Fatalf("flow = %v, want one conversation entry", flow)
	}
	preview := flow[0].Turn.Message
	if !strings.HasSuffix(preview, "...") {
		t.Errorf("preview %q not truncated with ellipsis", preview)
	}
	if len(preview) > flowPreviewLen+3 {
		t.Errorf("preview length = %d, want at most %d", len(preview), flowPreviewLen+3)
	}
}

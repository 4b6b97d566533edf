package classify

import (
	"reflect"
	"testing"
)

func TestExtractRecommendations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty text",
			text: "   ",
			want: nil,
		},
		{
			name: "numbered lines",
			text: "Here is the plan:\n1. Schedule the blood panel\n2. Track your HRV daily",
			want: []string{"Schedule the blood panel", "Track your HRV daily"},
		},
		{
			name: "cue phrase line",
			text: "I recommend the protein-first approach at lunch",
			want: []string{"I recommend the protein-first approach at lunch"},
		},
		{
			name: "action verb sentences",
			text: "The data looks fine overall. Monitor your glucose after dinner. Nothing else stands out.",
			want: []string{"Monitor your glucose after dinner"},
		},
		{
			name: "sentence captured once despite multiple verbs",
			text: "Please track and log your sleep each night.",
			want: []string{"Please track and log your sleep each night"},
		},
		{
			name: "no actionable content",
			text: "Glad you are feeling better today!",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractRecommendations(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractRecommendations(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractRecommendationsInlineEnumeration(t *testing.T) {
	text := "Next steps: 1. Measure your blood pressure each morning. 2. Log the readings for a week."
	got := ExtractRecommendations(text)
	if len(got) < 2 {
		t.Fatalf("got %d recommendations, want at least 2: %v", len(got), got)
	}
}

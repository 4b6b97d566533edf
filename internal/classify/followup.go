package classify

import "strings"

// FollowUpCategory pairs a trigger vocabulary with the canned member
// utterance for it.
type FollowUpCategory struct {
	Name     string
	Keywords []string
	Reply    string
}

// FollowUpCategories is evaluated in order; the first category whose
// vocabulary matches the recommendations wins. The final entry has no
// keywords and always applies, so generation is total.
var FollowUpCategories = []FollowUpCategory{
	{
		Name:     "scheduling",
		Keywords: []string{"schedule", "appointment", "book", "consultation", "calendar"},
		Reply:    "Yes, please go ahead and schedule that. Sarah can coordinate with my calendar - mornings before 10 AM work best.",
	},
	{
		Name:     "nutrition",
		Keywords: []string{"meal", "diet", "nutrition", "food", "protein", "glucose"},
		Reply:    "Thanks - can you send over the specific meal plan? I'll follow it this week and watch the CGM response.",
	},
	{
		Name:     "exercise",
		Keywords: []string{"exercise", "workout", "training", "recovery", "strength"},
		Reply:    "Got it. I'll work that into my training schedule and report back on the recovery scores.",
	},
	{
		Name:     "travel",
		Keywords: []string{"travel", "jetlag", "flight", "timezone", "time zone"},
		Reply:    "That fits my travel schedule. I'll follow the protocol on the trip and log how I feel each day.",
	},
	{
		Name:     "monitoring",
		Keywords: []string{"monitor", "track", "measure", "log", "data"},
		Reply:    "Will do. I'll keep tracking the numbers and share the data with you in a few days.",
	},
	{
		Name:     "cadence",
		Keywords: []string{"daily", "weekly", "monthly", "morning", "evening", "routine"},
		Reply:    "Understood - I'll stick to that cadence and flag anything that looks off.",
	},
	{
		Name:  "default",
		Reply: "Thanks, that makes sense. I'll act on it and let you know how it goes.",
	},
}

// FollowUp picks the member follow-up utterance for the triggering
// recommendations. The mapping is total: the default acknowledgment applies
// when no category vocabulary matches.
func FollowUp(recommendations []string) string {
	text := strings.ToLower(strings.Join(recommendations, " "))

	for _, cat := range FollowUpCategories {
		if len(cat.Keywords) == 0 {
			return cat.Reply
		}
		for _, keyword := range cat.Keywords {
			if strings.Contains(text, keyword) {
				return cat.Reply
			}
		}
	}
	// Unreachable: the table ends with the keywordless default.
	return FollowUpCategories[len(FollowUpCategories)-1].Reply
}

package classify

import (
	"regexp"
	"strings"
)

// quantityPattern matches a digit adjacent to a unit token ("400mg",
// "30 min", "9pm"). Built once from QuantityUnits.
var quantityPattern = regexp.MustCompile(
	`\d\s*(` + strings.Join(QuantityUnits, "|") + `)\b`)

// ReplyNeeded reports whether an agent turn warrants a member follow-up.
//
// The decision runs over the concatenated recommendation text only: a turn
// with no recommendations is informational and never needs a reply,
// regardless of its raw text. The checks are disjunctive and short-circuit.
func ReplyNeeded(recommendations []string) bool {
	if len(recommendations) == 0 {
		return false
	}

	text := strings.ToLower(strings.Join(recommendations, " "))

	for _, keyword := range ActionKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	for _, ref := range TimeReferences {
		if containsToken(text, ref) {
			return true
		}
	}
	for _, pattern := range ActionPatterns {
		if strings.Contains(text, pattern) {
			return true
		}
	}
	return quantityPattern.MatchString(text)
}

// containsToken reports whether text contains word on token boundaries.
// Short time tokens ("am", "pm") would otherwise match inside ordinary
// words.
func containsToken(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordByte(text[start-1])
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
